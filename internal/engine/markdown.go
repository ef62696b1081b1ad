package engine

import (
	"strings"

	"github.com/dgallion1/prochunk/internal/chunker"
	"github.com/dgallion1/prochunk/internal/convert"
	"github.com/dgallion1/prochunk/internal/header"
	"github.com/dgallion1/prochunk/internal/section"
)

// MarkdownDocument chunks a markdown file. Headings provide the section
// structure directly; a headingless document chunks flat.
type MarkdownDocument struct {
	data []byte
	cfg  chunker.Config
}

func (d *MarkdownDocument) Chunk() ([]chunker.Chunk, error) {
	title, mdSections := convert.MarkdownToSections(d.data)
	if len(mdSections) == 0 {
		return nil, nil
	}
	meta := header.Metadata{DocumentTitle: title}

	var titled []section.Section
	for _, ms := range mdSections {
		if ms.Title == "" {
			continue
		}
		headingType := section.StrategyHeading
		if ms.Marker != "" {
			headingType = section.StrategyNumbered
		}
		titled = append(titled, section.Section{
			Title:   ms.Title,
			Content: ms.Content,
			Heading: section.Heading{Type: headingType, Marker: ms.Marker},
		})
	}
	if len(titled) > 0 {
		return sectionedChunks(meta, titled, d.cfg), nil
	}

	var body []string
	for _, ms := range mdSections {
		if ms.Content != "" {
			body = append(body, ms.Content)
		}
	}
	return flatChunks(meta, strings.Join(body, "\n\n"), d.cfg), nil
}
