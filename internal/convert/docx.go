// Package convert turns raw document bytes into the markup and plain text
// the chunking engine consumes. The Word path produces HTML (tables as
// <table> blocks, later rewritten to markdown); the PDF path produces
// plain text with page markers.
package convert

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/fumiama/go-docx"
)

// DocxToHTML decodes the body of a .docx file into HTML. Headings map to
// <h1>..<h6> from paragraph styles, list paragraphs to <ul><li>, bold runs
// to <strong>, and tables to <table> markup. Output is deterministic for
// identical input bytes.
func DocxToHTML(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var sb strings.Builder
	inList := false
	closeList := func() {
		if inList {
			sb.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			inner := paragraphHTML(it)
			if strings.TrimSpace(inner) == "" {
				continue
			}
			style := paragraphStyle(it)
			if level := headingLevel(style); level > 0 {
				closeList()
				fmt.Fprintf(&sb, "<h%d>%s</h%d>\n", level, inner, level)
			} else if isListStyle(style) {
				if !inList {
					sb.WriteString("<ul>\n")
					inList = true
				}
				fmt.Fprintf(&sb, "<li>%s</li>\n", inner)
			} else {
				closeList()
				fmt.Fprintf(&sb, "<p>%s</p>\n", inner)
			}

		case *docx.Table:
			closeList()
			sb.WriteString(tableHTML(it))
		}
	}
	closeList()

	return sb.String(), nil
}

// paragraphHTML renders the runs of a paragraph, wrapping bold runs in
// <strong> and escaping text content.
func paragraphHTML(para *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		text := runText(run)
		if text == "" {
			continue
		}
		if runBold(run) {
			sb.WriteString("<strong>")
			sb.WriteString(html.EscapeString(text))
			sb.WriteString("</strong>")
		} else {
			sb.WriteString(html.EscapeString(text))
		}
	}
	return sb.String()
}

func runText(run *docx.Run) string {
	var sb strings.Builder
	for _, rc := range run.Children {
		if t, ok := rc.(*docx.Text); ok {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

func runBold(run *docx.Run) bool {
	return run.RunProperties != nil && run.RunProperties.Bold != nil
}

func paragraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func headingLevel(style string) int {
	switch {
	case strings.EqualFold(style, "Heading1") || strings.EqualFold(style, "heading 1"):
		return 1
	case strings.EqualFold(style, "Heading2") || strings.EqualFold(style, "heading 2"):
		return 2
	case strings.EqualFold(style, "Heading3") || strings.EqualFold(style, "heading 3"):
		return 3
	case strings.EqualFold(style, "Heading4") || strings.EqualFold(style, "heading 4"):
		return 4
	case strings.EqualFold(style, "Heading5") || strings.EqualFold(style, "heading 5"):
		return 5
	case strings.EqualFold(style, "Heading6") || strings.EqualFold(style, "heading 6"):
		return 6
	}
	return 0
}

func isListStyle(style string) bool {
	return strings.EqualFold(style, "ListParagraph")
}

// tableHTML renders a docx table as <table><tr><td> markup. Cell content
// is the concatenated paragraph text.
func tableHTML(tbl *docx.Table) string {
	var sb strings.Builder
	sb.WriteString("<table>\n")
	for _, row := range tbl.TableRows {
		sb.WriteString("<tr>")
		for _, cell := range row.TableCells {
			sb.WriteString("<td>")
			for i, para := range cell.Paragraphs {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(html.EscapeString(plainParagraphText(para)))
			}
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>\n")
	return sb.String()
}

func plainParagraphText(para *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range para.Children {
		if run, ok := child.(*docx.Run); ok {
			sb.WriteString(runText(run))
		}
	}
	return strings.TrimSpace(sb.String())
}
