// Package engine is the document segmentation and chunking engine: it
// takes raw document bytes, extracts provenance metadata, infers section
// structure where one exists, and partitions the cleansed body into
// bounded, overlapping chunks ready for embedding.
package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgallion1/prochunk/internal/chunker"
	"github.com/dgallion1/prochunk/internal/cleanse"
	"github.com/dgallion1/prochunk/internal/header"
	"github.com/dgallion1/prochunk/internal/section"
)

// ErrMissingHeader mirrors header.ErrMissingHeader for callers that only
// import the engine.
var ErrMissingHeader = header.ErrMissingHeader

// ErrUnsupportedFormat indicates the file extension has no document
// variant.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document is one decoded document ready for chunking. Each source format
// implements metadata extraction and cleansing appropriate to it; all
// variants share the table-aware chunker.
type Document interface {
	Chunk() ([]chunker.Chunk, error)
}

// SupportedExtensions lists the file extensions the engine can handle.
var SupportedExtensions = map[string]bool{
	".docx":     true,
	".pdf":      true,
	".md":       true,
	".markdown": true,
}

// Open returns the document variant for a filename. The bytes are not
// decoded until Chunk is called.
func Open(filename string, data []byte, cfg chunker.Config) (Document, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".docx":
		return &WordDocument{data: data, cfg: cfg}, nil
	case ".pdf":
		return &PDFDocument{data: data, cfg: cfg}, nil
	case ".md", ".markdown":
		return &MarkdownDocument{data: data, cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a filename maps to a document variant.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// flatChunks cleanses text and partitions it without section structure.
func flatChunks(meta header.Metadata, text string, cfg chunker.Config) []chunker.Chunk {
	pieces := chunker.Split(cleanse.Clean(text), cfg)
	chunks := make([]chunker.Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, chunker.Build(p, i, meta))
	}
	return chunks
}

// sectionedChunks cleanses and partitions each detected section in order,
// keeping the chunk index strictly increasing across the whole document.
func sectionedChunks(meta header.Metadata, sections []section.Section, cfg chunker.Config) []chunker.Chunk {
	var chunks []chunker.Chunk
	index := 0
	for _, sec := range sections {
		pieces := chunker.Split(cleanse.Clean(sec.Content), cfg)
		for _, p := range pieces {
			chunks = append(chunks, chunker.BuildSectioned(p, index, meta, sec, len(pieces)))
			index++
		}
	}
	return chunks
}
