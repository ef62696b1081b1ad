// Package section infers the internal structure of a document body from
// markup, using competing heuristic strategies with confidence scoring.
// Procedural documents rarely share a schema; the only reliable signals
// are list markers, numbered headings, and bold lead runs.
package section

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy names one section-detection heuristic.
type Strategy string

const (
	StrategyLettered Strategy = "lettered"
	StrategyNumbered Strategy = "numbered"
	StrategyHeading  Strategy = "heading"
	StrategyFallback Strategy = "fallback"
)

// Heading records how a section's boundary was detected.
type Heading struct {
	Type   Strategy `json:"type"`
	Marker string   `json:"marker,omitempty"`
}

// Section is one inferred structural unit of the document body.
type Section struct {
	Title   string  `json:"section_title"`
	Content string  `json:"content"`
	Heading Heading `json:"heading"`
}

// Result is the outcome of one strategy, or the winner after comparison.
// Confidence is in [0,1]; zero means the strategy found nothing usable.
type Result struct {
	Strategy   Strategy  `json:"strategy"`
	Sections   []Section `json:"sections"`
	Confidence float64   `json:"confidence"`
}

// strategies is the fixed evaluation order; it doubles as the tie-break
// priority when two strategies score the same confidence.
var strategies = []func(*goquery.Document) Result{
	detectLettered,
	detectNumbered,
}

// Classify runs every strategy over the body markup and returns the
// highest-confidence result. Ties go to the earlier strategy. When no
// strategy scores above zero, the fallback result (no sections,
// confidence 0) is returned and callers should chunk the body flat.
func Classify(markup string) Result {
	if strings.TrimSpace(markup) == "" {
		return fallback()
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return fallback()
	}

	best := fallback()
	for _, detect := range strategies {
		if r := detect(doc); r.Confidence > best.Confidence {
			best = r
		}
	}
	return best
}

func fallback() Result {
	return Result{Strategy: StrategyFallback, Confidence: 0}
}
