package chunker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/prochunk/internal/header"
	"github.com/dgallion1/prochunk/internal/section"
)

// ContentType distinguishes ordinary text chunks from atomic table chunks.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentTable ContentType = "table"
)

// Chunk is the output unit: a bounded slice of document text plus the
// provenance metadata an embedding store needs. Chunks are immutable
// value objects; CreatedAt is set at construction.
type Chunk struct {
	ID             string      `json:"id"`
	Text           string      `json:"text"`
	DocumentTitle  string      `json:"document_title"`
	DocumentNumber string      `json:"document_number"`
	Revision       string      `json:"revision"`
	EffectiveDate  string      `json:"effective_date"`
	ChunkIndex     int         `json:"chunk_index"`
	WordCount      int         `json:"word_count"`
	ContentType    ContentType `json:"content_type"`
	CreatedAt      time.Time   `json:"created_at"`

	// Section provenance, present only for section-aware chunking.
	SectionTitle         string `json:"section_title,omitempty"`
	HeadingType          string `json:"heading_type,omitempty"`
	HeadingMarker        string `json:"heading_marker,omitempty"`
	TotalChunksInSection int    `json:"total_chunks_in_section,omitempty"`
}

// Build assembles a chunk from a produced piece, its document-wide index,
// and the document metadata. The id is stable per document
// ("{number}_chunk_{index}"); when the document number is unknown a
// random unique token is used instead. Missing metadata fields stay empty
// strings; assembly never fails.
func Build(piece Piece, index int, meta header.Metadata) Chunk {
	id := uuid.NewString()
	if meta.DocumentNumber != "" {
		id = fmt.Sprintf("%s_chunk_%d", meta.DocumentNumber, index)
	}

	contentType := ContentText
	if piece.Table {
		contentType = ContentTable
	}

	return Chunk{
		ID:             id,
		Text:           piece.Text,
		DocumentTitle:  meta.DocumentTitle,
		DocumentNumber: meta.DocumentNumber,
		Revision:       meta.Revision,
		EffectiveDate:  meta.EffectiveDate,
		ChunkIndex:     index,
		WordCount:      piece.WordCount,
		ContentType:    contentType,
		CreatedAt:      time.Now().UTC(),
	}
}

// BuildSectioned assembles a chunk that carries section provenance.
func BuildSectioned(piece Piece, index int, meta header.Metadata, sec section.Section, totalInSection int) Chunk {
	c := Build(piece, index, meta)
	c.SectionTitle = sec.Title
	c.HeadingType = string(sec.Heading.Type)
	c.HeadingMarker = sec.Heading.Marker
	c.TotalChunksInSection = totalInSection
	return c
}
