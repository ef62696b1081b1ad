package section

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dgallion1/prochunk/internal/convert"
)

// numberedHeading matches "3 Scope" or "3.0 Scope" style headings.
var numberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.+)$`)

var headingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// detectNumbered looks for headings carrying a leading numeric marker at a
// single heading level. It probes each level and keeps the one with the
// most matching headings; a section's content is everything between its
// heading and the next matching heading.
func detectNumbered(doc *goquery.Document) Result {
	bestLevel := ""
	bestCount := 0
	for _, level := range headingLevels {
		count := 0
		doc.Find(level).Each(func(_ int, s *goquery.Selection) {
			if numberedHeading.MatchString(strings.TrimSpace(s.Text())) {
				count++
			}
		})
		if count > bestCount {
			bestCount = count
			bestLevel = level
		}
	}
	if bestCount == 0 {
		return Result{Strategy: StrategyNumbered, Confidence: 0}
	}

	matched := doc.Find(bestLevel).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return numberedHeading.MatchString(strings.TrimSpace(s.Text()))
	})
	boundaries := make(map[*html.Node]bool, matched.Length())
	matched.Each(func(_ int, s *goquery.Selection) {
		boundaries[s.Nodes[0]] = true
	})

	var sections []Section
	matched.Each(func(_ int, s *goquery.Selection) {
		m := numberedHeading.FindStringSubmatch(strings.TrimSpace(s.Text()))
		if m == nil {
			return
		}
		// Content runs to the next matching heading. A same-level heading
		// without a numeric marker is not a boundary: it and everything
		// under it stay in the current section.
		var blocks []string
		for n := s.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
			if boundaries[n] {
				break
			}
			blocks = append(blocks, convert.BlockText(n)...)
		}
		sections = append(sections, Section{
			Title:   strings.TrimSpace(m[2]),
			Content: strings.Join(blocks, "\n\n"),
			Heading: Heading{Type: StrategyNumbered, Marker: m[1]},
		})
	})

	var confidence float64
	switch s := len(sections); {
	case s >= 5:
		confidence = 0.9
	case s >= 3:
		confidence = 0.7
	case s >= 1:
		confidence = 0.4
	}
	return Result{Strategy: StrategyNumbered, Sections: sections, Confidence: confidence}
}
