package convert

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NormalizeTables rewrites every <table> block in the markup into a
// pipe-delimited markdown block (one row per line, a row of "---" cells
// under the header row), wrapped in <pre> so the literal newlines survive
// the later HTML-to-text conversion. Runs before section classification so
// markdown tables flow through as ordinary text content.
func NormalizeTables(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}

	var tables []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, tbl := range tables {
		md := tableMarkdown(tbl)
		pre := &html.Node{Type: html.ElementNode, Data: "pre", DataAtom: atom.Pre}
		pre.AppendChild(&html.Node{Type: html.TextNode, Data: md})
		parent := tbl.Parent
		parent.InsertBefore(pre, tbl)
		parent.RemoveChild(tbl)
	}

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", fmt.Errorf("render markup: %w", err)
	}
	return sb.String(), nil
}

// tableMarkdown flattens one <table> node into pipe-delimited rows.
func tableMarkdown(tbl *html.Node) string {
	var rows [][]string
	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
					cells = append(cells, inlineText(c))
				}
			}
			rows = append(rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(tbl)

	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, cells := range rows {
		sb.WriteString("| ")
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString(" |\n")
		if i == 0 {
			seps := make([]string, len(cells))
			for j := range seps {
				seps[j] = "---"
			}
			sb.WriteString("| ")
			sb.WriteString(strings.Join(seps, " | "))
			sb.WriteString(" |\n")
		}
	}
	return sb.String()
}

// inlineText collects the text content of a node with whitespace collapsed
// to single spaces. Pipes inside cells would corrupt the row syntax, so
// they are replaced.
func inlineText(n *html.Node) string {
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	text := strings.Join(strings.Fields(sb.String()), " ")
	return strings.ReplaceAll(text, "|", "/")
}
