// Package cleanse normalizes decoded document body text before chunking.
// All rules are pure string rewrites applied in a fixed order; input that
// matches nothing passes through unchanged.
package cleanse

import (
	"regexp"
	"strings"
)

// rule rewrites every match of pattern with replacement. Rules run in
// slice order, each over the output of the previous one.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var imageRules = []rule{
	// Embedded base64 image payloads, with or without a data: URI wrapper.
	{regexp.MustCompile(`data:image/[a-zA-Z+.-]+;base64,[A-Za-z0-9+/=]+`), "[IMAGE]"},
	{regexp.MustCompile(`\b[A-Za-z0-9+/]{400,}={0,2}\b`), "[IMAGE]"},
}

// signatureRules normalize approval-block placeholder lines. Word forms
// render signature slots as long underscore runs after a label; each label
// gets a descriptive placeholder so the slot survives as searchable text.
// Order matters: specific labels first, then the generic catch-all, then
// bare underscore runs.
var signatureRules = []rule{
	{regexp.MustCompile(`(?i)(Date:)\s*_{5,}`), "$1 [SIGNATURE DATE REQUIRED]"},
	{regexp.MustCompile(`(?i)(Name:)\s*_{5,}`), "$1 [SIGNATORY NAME REQUIRED]"},
	{regexp.MustCompile(`(?i)(Title:)\s*_{5,}`), "$1 [SIGNATORY TITLE REQUIRED]"},
	{regexp.MustCompile(`(?i)(Signature:)\s*_{5,}`), "$1 [SIGNATURE REQUIRED]"},
	{regexp.MustCompile(`(?i)(Comments?:)\s*_{5,}`), "$1 [COMMENTS REQUIRED]"},
	{regexp.MustCompile(`(?i)((?:\w+ )*\w*Approval:)\s*_{5,}`), "$1 [APPROVAL SIGNATURE REQUIRED]"},
	{regexp.MustCompile(`([A-Za-z][A-Za-z ]*:)\s*_{5,}`), "$1 [INPUT REQUIRED]"},
	{regexp.MustCompile(`_{10,}`), "[SIGNATURE LINE]"},
}

// pageMarker matches the page delimiters the PDF converter inserts,
// e.g. "-- 3 of 12 --".
var pageMarker = regexp.MustCompile(`(?m)^\s*-- \d+ of \d+ --\s*$`)

// headerEcho matches document-control lines that leak from the page header
// into the body text on the PDF path.
var headerEcho = regexp.MustCompile(`(?im)^(?:Procedure Title|Number|Effective|Revision):[^\n]*$`)

// Clean applies the full rule set: image stripping, signature-line
// normalization, page-marker removal, then header-echo removal.
// Clean is idempotent: running it on its own output is a no-op.
func Clean(text string) string {
	for _, r := range imageRules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	for _, r := range signatureRules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	text = pageMarker.ReplaceAllString(text, "")
	text = headerEcho.ReplaceAllString(text, "")
	return collapseBlankLines(text)
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// collapseBlankLines squeezes runs of 3+ newlines (left behind by removed
// lines) down to one blank line and trims the edges.
func collapseBlankLines(text string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(text, "\n\n"))
}
