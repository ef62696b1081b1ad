package header

import (
	"regexp"
	"strings"
)

// Metadata is the document control block extracted from the header table.
// Fields missing from the source are empty strings, never errors.
type Metadata struct {
	DocumentTitle  string `json:"document_title"`
	DocumentNumber string `json:"document_number"`
	Revision       string `json:"revision"`
	EffectiveDate  string `json:"effective_date"`
}

// labelPrefix matches the label echoed inside a header cell, e.g.
// "Procedure Title: Software Change Control".
var labelPrefix = regexp.MustCompile(`(?i)^\s*(procedure title|number|effective|revision)\s*:`)

// ExtractMetadata reads the four canonical fields from the header table.
// Layout contract: row 0 cell 1 holds the title; row 1 cells 1..3 hold
// number, effective date, and revision. Missing rows or cells yield empty
// fields rather than an error.
func ExtractMetadata(tbl *Table) Metadata {
	return Metadata{
		DocumentTitle:  fieldText(tbl, 0, 1),
		DocumentNumber: fieldText(tbl, 1, 1),
		EffectiveDate:  fieldText(tbl, 1, 2),
		Revision:       fieldText(tbl, 1, 3),
	}
}

func fieldText(tbl *Table, row, col int) string {
	text := tbl.Cell(row, col).Text()
	text = labelPrefix.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
