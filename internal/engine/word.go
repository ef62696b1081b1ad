package engine

import (
	"fmt"
	"strings"

	"github.com/dgallion1/prochunk/internal/chunker"
	"github.com/dgallion1/prochunk/internal/convert"
	"github.com/dgallion1/prochunk/internal/header"
	"github.com/dgallion1/prochunk/internal/section"
)

// WordDocument chunks a .docx file. Metadata comes from the header table;
// the body is converted to HTML, tables are rewritten to markdown blocks,
// and the section classifier runs over the markup before chunking.
type WordDocument struct {
	data []byte
	cfg  chunker.Config
}

func (d *WordDocument) Chunk() ([]chunker.Chunk, error) {
	tbl, err := header.Read(d.data)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	meta := header.ExtractMetadata(tbl)

	markup, err := convert.DocxToHTML(d.data)
	if err != nil {
		return nil, fmt.Errorf("convert body: %w", err)
	}
	if strings.TrimSpace(markup) == "" {
		// An empty document legitimately has zero chunks.
		return nil, nil
	}

	markup, err = convert.NormalizeTables(markup)
	if err != nil {
		return nil, fmt.Errorf("render tables: %w", err)
	}

	if result := section.Classify(markup); result.Confidence > 0 {
		return sectionedChunks(meta, result.Sections, d.cfg), nil
	}

	text, err := convert.HTMLToText(markup)
	if err != nil {
		return nil, fmt.Errorf("flatten body: %w", err)
	}
	return flatChunks(meta, text, d.cfg), nil
}
