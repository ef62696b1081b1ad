package section

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dgallion1/prochunk/internal/convert"
)

// numericLead disqualifies the lettered strategy: titles like "1.0 Scope"
// belong to the numbered strategy.
var numericLead = regexp.MustCompile(`^\d+(\.\d+)?\s`)

// detectLettered looks for list items that open with a bold run holding
// the section title. Markers are positional: the Nth qualifying item is
// lettered chr('A'+N). Confidence scales with both the section count and
// the fraction of list items that qualify.
func detectLettered(doc *goquery.Document) Result {
	items := doc.Find("ul li, ol li")
	total := items.Length()
	if total == 0 {
		return Result{Strategy: StrategyLettered, Confidence: 0}
	}

	var sections []Section
	disqualified := false

	items.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		bold := leadingBold(s.Nodes[0])
		if bold == nil {
			return true
		}
		title := strings.TrimSpace(nodeText(bold))
		if title == "" {
			return true
		}
		if numericLead.MatchString(title) {
			disqualified = true
			return false
		}
		title = strings.TrimSuffix(title, ".")

		marker := string(rune('A' + len(sections)))
		sections = append(sections, Section{
			Title:   title,
			Content: itemContent(s.Nodes[0], bold),
			Heading: Heading{Type: StrategyLettered, Marker: marker},
		})
		return true
	})

	if disqualified {
		return Result{Strategy: StrategyLettered, Confidence: 0}
	}

	s := len(sections)
	r := float64(s) / float64(total)
	var confidence float64
	switch {
	case s >= 5 && r > 0.8:
		confidence = 0.9
	case s >= 3 && r > 0.7:
		confidence = 0.7
	case s >= 2 && r > 0.6:
		confidence = 0.5
	case s >= 1:
		confidence = 0.3
	}
	return Result{Strategy: StrategyLettered, Sections: sections, Confidence: confidence}
}

// leadingBold returns the bold element that opens the item, or nil when
// the item starts with anything else. Bold lead runs may sit inside a
// wrapping paragraph.
func leadingBold(li *html.Node) *html.Node {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		case html.ElementNode:
			switch c.Data {
			case "strong", "b":
				return c
			case "p", "span":
				return leadingBold(c)
			default:
				return nil
			}
		}
	}
	return nil
}

// itemContent is the item's text with the bold lead removed.
func itemContent(li, bold *html.Node) string {
	full := strings.Join(convert.BlockText(li), "\n\n")
	lead := strings.Join(strings.Fields(nodeText(bold)), " ")
	content := strings.TrimPrefix(full, lead)
	return strings.TrimSpace(content)
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return sb.String()
}
