// Package header reads the header part of a Word document and extracts
// the document control metadata (title, number, effective date, revision)
// from the label/value table it contains.
package header

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingHeader indicates the document carries no header part (or the
// header part carries no table). Chunking can proceed without metadata,
// but callers that require provenance should abort on it.
var ErrMissingHeader = errors.New("document header not found")

// Run is a single text run inside a header cell paragraph. Field runs
// (page numbers, references) carry no literal text payload.
type Run struct {
	Text  string
	Field bool
}

// Cell is one table cell: the runs of its paragraphs, in document order.
type Cell struct {
	Runs []Run
}

// Text concatenates the literal text runs of the cell. Field runs and
// formatting-only runs contribute nothing.
func (c Cell) Text() string {
	var sb strings.Builder
	for _, r := range c.Runs {
		if r.Field {
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Table is the parsed header table.
type Table struct {
	Rows []Row
}

// Cell returns the cell at (row, col), or an empty cell when the table is
// missing that position. Malformed headers degrade rather than fail.
func (t *Table) Cell(row, col int) Cell {
	if t == nil || row >= len(t.Rows) || col >= len(t.Rows[row].Cells) {
		return Cell{}
	}
	return t.Rows[row].Cells[col]
}

// Read extracts the first header table from raw .docx bytes. A .docx file
// is a zip archive; header parts live at word/header<n>.xml. Returns
// ErrMissingHeader when no header part exists or none contains a table.
func Read(data []byte) (*Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "word/header") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		tbl, err := parseHeaderXML(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name, err)
		}
		if tbl != nil {
			return tbl, nil
		}
	}
	return nil, ErrMissingHeader
}

// parseHeaderXML streams the WordprocessingML of one header part and
// collects the first table's rows, cells, and runs. Returns nil when the
// part has no table.
func parseHeaderXML(r io.Reader) (*Table, error) {
	dec := xml.NewDecoder(r)

	var (
		tbl      *Table
		inTable  bool
		inRun    bool
		inText   bool
		curRow   *Row
		curCell  *Cell
		curField bool
		text     strings.Builder
	)

	flushRun := func() {
		if curCell == nil || (!curField && text.Len() == 0) {
			text.Reset()
			curField = false
			return
		}
		curCell.Runs = append(curCell.Runs, Run{Text: text.String(), Field: curField})
		text.Reset()
		curField = false
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				if tbl == nil {
					tbl = &Table{}
					inTable = true
				}
			case "tr":
				if inTable {
					curRow = &Row{}
				}
			case "tc":
				if curRow != nil {
					curCell = &Cell{}
				}
			case "r":
				if curCell != nil {
					inRun = true
				}
			case "t":
				if inRun {
					inText = true
				}
			case "fldChar", "fldSimple", "instrText":
				if inRun {
					curField = true
				}
			}

		case xml.CharData:
			if inText {
				text.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "r":
				if inRun {
					flushRun()
					inRun = false
				}
			case "tc":
				if curRow != nil && curCell != nil {
					curRow.Cells = append(curRow.Cells, *curCell)
					curCell = nil
				}
			case "tr":
				if inTable && curRow != nil {
					tbl.Rows = append(tbl.Rows, *curRow)
					curRow = nil
				}
			case "tbl":
				inTable = false
			}
		}
	}

	if tbl == nil || len(tbl.Rows) == 0 {
		return nil, nil
	}
	return tbl, nil
}
