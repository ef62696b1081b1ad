package convert

import (
	"bytes"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFToText extracts plain text from PDF bytes. A marker line of the form
// "-- <n> of <m> --" is appended after each page so downstream cleansing
// can strip page boundaries uniformly. Pages that fail text extraction are
// skipped rather than failing the document.
func PDFToText(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		fmt.Fprintf(&sb, "\n-- %d of %d --\n", i, numPages)
	}
	return sb.String(), nil
}
