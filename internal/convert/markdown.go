package convert

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownSection is one heading-delimited region of a markdown document.
// Marker holds the leading numeric code ("3.0") when the heading carries
// one.
type MarkdownSection struct {
	Title   string
	Marker  string
	Content string
}

var mdNumberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.+)$`)

// MarkdownToSections parses markdown and splits it at headings. The first
// heading becomes the document title. Content before the first heading is
// returned as a section with an empty title; a document with no headings
// yields exactly that one section.
func MarkdownToSections(src []byte) (string, []MarkdownSection) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		title    string
		sections []MarkdownSection
		current  MarkdownSection
		body     []string
	)

	flush := func() {
		current.Content = strings.Join(body, "\n\n")
		body = nil
		if current.Title != "" || current.Content != "" {
			sections = append(sections, current)
		}
		current = MarkdownSection{}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			flush()
			headingText := string(h.Text(src))
			if title == "" {
				title = headingText
			}
			current.Title = headingText
			if m := mdNumberedHeading.FindStringSubmatch(headingText); m != nil {
				current.Marker = m[1]
				current.Title = m[2]
			}
			continue
		}
		if t := markdownBlockText(n, src); t != "" {
			body = append(body, t)
		}
	}
	flush()

	return title, sections
}

// markdownBlockText extracts the text of one goldmark block node. Blocks
// that carry source lines (paragraphs, code blocks) yield them directly;
// container blocks (lists, quotes) recurse.
func markdownBlockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := markdownBlockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
