package header

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

// buildDocx assembles an in-memory zip with the given named parts.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const headerXML = `<?xml version="1.0"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:tbl>
    <w:tr>
      <w:tc><w:p><w:r><w:t>Logo</w:t></w:r></w:p></w:tc>
      <w:tc><w:p><w:r><w:t>Procedure Title:</w:t></w:r><w:r><w:t xml:space="preserve"> Software Change Control</w:t></w:r></w:p></w:tc>
    </w:tr>
    <w:tr>
      <w:tc><w:p><w:r><w:t>Page</w:t></w:r></w:p></w:tc>
      <w:tc><w:p><w:r><w:t>Number: ENG-104</w:t></w:r></w:p></w:tc>
      <w:tc><w:p><w:r><w:t>Effective: 2024-03-01</w:t></w:r></w:p></w:tc>
      <w:tc><w:p><w:r><w:t>Revision: C</w:t></w:r></w:p></w:tc>
    </w:tr>
  </w:tbl>
</w:hdr>`

func TestRead_HeaderTable(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml": `<w:document/>`,
		"word/header1.xml":  headerXML,
	})

	tbl, err := Read(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if len(tbl.Rows[1].Cells) != 4 {
		t.Fatalf("expected 4 cells in row 1, got %d", len(tbl.Rows[1].Cells))
	}
	if got := tbl.Cell(0, 1).Text(); got != "Procedure Title: Software Change Control" {
		t.Errorf("cell(0,1): got %q", got)
	}
}

func TestRead_NoHeaderPart(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml": `<w:document/>`,
	})
	_, err := Read(data)
	if !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("expected ErrMissingHeader, got %v", err)
	}
}

func TestRead_HeaderWithoutTable(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/header1.xml": `<w:hdr><w:p><w:r><w:t>just text</w:t></w:r></w:p></w:hdr>`,
	})
	_, err := Read(data)
	if !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("expected ErrMissingHeader, got %v", err)
	}
}

func TestRead_NotAZip(t *testing.T) {
	_, err := Read([]byte("plain text, not an archive"))
	if err == nil {
		t.Fatal("expected error for non-zip input")
	}
}

func TestCellText_SkipsFieldRuns(t *testing.T) {
	c := Cell{Runs: []Run{
		{Text: "Rev "},
		{Field: true},
		{Text: "A"},
	}}
	if got := c.Text(); got != "Rev A" {
		t.Errorf("expected %q, got %q", "Rev A", got)
	}
}

func TestExtractMetadata_FullHeader(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/header2.xml": headerXML})
	tbl, err := Read(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := ExtractMetadata(tbl)
	if meta.DocumentTitle != "Software Change Control" {
		t.Errorf("title: got %q", meta.DocumentTitle)
	}
	if meta.DocumentNumber != "ENG-104" {
		t.Errorf("number: got %q", meta.DocumentNumber)
	}
	if meta.EffectiveDate != "2024-03-01" {
		t.Errorf("effective: got %q", meta.EffectiveDate)
	}
	if meta.Revision != "C" {
		t.Errorf("revision: got %q", meta.Revision)
	}
}

func TestExtractMetadata_MissingCellsDegrade(t *testing.T) {
	tbl := &Table{Rows: []Row{
		{Cells: []Cell{
			{},
			{Runs: []Run{{Text: "procedure title:  Calibration of Scales "}}},
		}},
		// Row 1 has only the number cell; effective and revision are absent.
		{Cells: []Cell{
			{},
			{Runs: []Run{{Text: "NUMBER: QA-007"}}},
		}},
	}}

	meta := ExtractMetadata(tbl)
	if meta.DocumentTitle != "Calibration of Scales" {
		t.Errorf("title: got %q", meta.DocumentTitle)
	}
	if meta.DocumentNumber != "QA-007" {
		t.Errorf("number: got %q", meta.DocumentNumber)
	}
	if meta.EffectiveDate != "" || meta.Revision != "" {
		t.Errorf("expected empty effective/revision, got %q / %q", meta.EffectiveDate, meta.Revision)
	}
}

func TestExtractMetadata_EmptyTable(t *testing.T) {
	meta := ExtractMetadata(&Table{})
	if meta != (Metadata{}) {
		t.Errorf("expected zero metadata, got %+v", meta)
	}
}

func TestExtractMetadata_ValueWithoutLabel(t *testing.T) {
	tbl := &Table{Rows: []Row{
		{Cells: []Cell{{}, {Runs: []Run{{Text: "Unlabeled Title"}}}}},
	}}
	meta := ExtractMetadata(tbl)
	if meta.DocumentTitle != "Unlabeled Title" {
		t.Errorf("title: got %q", meta.DocumentTitle)
	}
}
