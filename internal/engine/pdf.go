package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/prochunk/internal/chunker"
	"github.com/dgallion1/prochunk/internal/convert"
	"github.com/dgallion1/prochunk/internal/header"
)

// PDFDocument chunks a PDF. PDFs carry no parseable header table, so the
// document control labels are scanned from the leading lines of the
// extracted text; missing labels degrade to empty fields.
type PDFDocument struct {
	data []byte
	cfg  chunker.Config
}

func (d *PDFDocument) Chunk() ([]chunker.Chunk, error) {
	text, err := convert.PDFToText(d.data)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return flatChunks(scanMetadata(text), text, d.cfg), nil
}

// metadataScanLines bounds the label scan to the first page worth of
// lines.
const metadataScanLines = 40

var scanLabels = map[string]*regexp.Regexp{
	"title":     regexp.MustCompile(`(?i)^Procedure Title:\s*(.+)$`),
	"number":    regexp.MustCompile(`(?i)^Number:\s*(.+)$`),
	"effective": regexp.MustCompile(`(?i)^Effective:\s*(.+)$`),
	"revision":  regexp.MustCompile(`(?i)^Revision:\s*(.+)$`),
}

// scanMetadata pulls document control fields from the leading lines of
// extracted text. The first non-empty line stands in for the title when
// no label carries one.
func scanMetadata(text string) header.Metadata {
	var meta header.Metadata
	lines := strings.Split(text, "\n")
	if len(lines) > metadataScanLines {
		lines = lines[:metadataScanLines]
	}

	firstLine := ""
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if firstLine == "" {
			firstLine = line
		}
		for field, re := range scanLabels {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			value := strings.TrimSpace(m[1])
			switch field {
			case "title":
				if meta.DocumentTitle == "" {
					meta.DocumentTitle = value
				}
			case "number":
				if meta.DocumentNumber == "" {
					meta.DocumentNumber = value
				}
			case "effective":
				if meta.EffectiveDate == "" {
					meta.EffectiveDate = value
				}
			case "revision":
				if meta.Revision == "" {
					meta.Revision = value
				}
			}
		}
	}

	if meta.DocumentTitle == "" {
		meta.DocumentTitle = firstLine
	}
	return meta
}
