package convert

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLToText converts markup into plain text with blocks separated by
// blank lines, the shape the chunker splits on. <pre> content (rendered
// markdown tables) is kept verbatim, including its newlines; all other
// text has whitespace collapsed per block. Script, style, and page-chrome
// elements are skipped.
func HTMLToText(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		body = doc
	}
	blocks := BlockText(body)
	return strings.Join(blocks, "\n\n"), nil
}

// BlockText walks a subtree and returns its text as an ordered list of
// blocks. Exported for the section classifier, which needs the same
// block-preserving extraction for section content.
func BlockText(root *html.Node) []string {
	var blocks []string
	var inline strings.Builder

	flush := func() {
		text := strings.Join(strings.Fields(inline.String()), " ")
		inline.Reset()
		if text != "" {
			blocks = append(blocks, text)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			inline.WriteString(n.Data)
			inline.WriteString(" ")
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Nav, atom.Footer, atom.Header:
				return
			case atom.Pre:
				flush()
				if text := strings.TrimRight(rawText(n), "\n"); text != "" {
					blocks = append(blocks, text)
				}
				return
			case atom.P, atom.Div, atom.Li, atom.Blockquote, atom.Ul, atom.Ol, atom.Tr, atom.Table,
				atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				flush()
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				flush()
				return
			case atom.Br:
				inline.WriteString(" ")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	flush()
	return blocks
}

// rawText returns the text content of a subtree without any whitespace
// normalization.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return sb.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
