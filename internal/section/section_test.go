package section

import (
	"fmt"
	"strings"
	"testing"
)

func TestClassify_LetteredSixItems(t *testing.T) {
	titles := []string{"Purpose.", "Scope.", "Definitions.", "Responsibilities.", "Procedure.", "Records."}
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, title := range titles {
		fmt.Fprintf(&sb, "<li><strong>%s</strong> Body text for %s</li>", title, title)
	}
	sb.WriteString("</ul>")

	result := Classify(sb.String())
	if result.Strategy != StrategyLettered {
		t.Fatalf("expected lettered, got %s", result.Strategy)
	}
	if result.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", result.Confidence)
	}
	if len(result.Sections) != 6 {
		t.Fatalf("expected 6 sections, got %d", len(result.Sections))
	}
	wantMarkers := []string{"A", "B", "C", "D", "E", "F"}
	for i, sec := range result.Sections {
		if sec.Heading.Marker != wantMarkers[i] {
			t.Errorf("section %d: expected marker %q, got %q", i, wantMarkers[i], sec.Heading.Marker)
		}
		if sec.Heading.Type != StrategyLettered {
			t.Errorf("section %d: expected lettered heading, got %s", i, sec.Heading.Type)
		}
	}
	if result.Sections[0].Title != "Purpose" {
		t.Errorf("expected trailing period stripped, got %q", result.Sections[0].Title)
	}
	if !strings.Contains(result.Sections[0].Content, "Body text for Purpose.") {
		t.Errorf("section content lost: %q", result.Sections[0].Content)
	}
}

func TestClassify_LetteredNumericTitleDisqualifies(t *testing.T) {
	markup := `<ul>
		<li><strong>1.0 Purpose</strong> text</li>
		<li><strong>2.0 Scope</strong> text</li>
	</ul>`
	result := Classify(markup)
	if result.Strategy == StrategyLettered {
		t.Fatalf("lettered should be disqualified by numeric titles, got %+v", result)
	}
}

func TestClassify_LetteredConfidenceLadder(t *testing.T) {
	// n qualifying items out of n total (ratio 1.0).
	tests := []struct {
		count int
		want  float64
	}{
		{6, 0.9},
		{5, 0.9},
		{4, 0.7},
		{3, 0.7},
		{2, 0.5},
		{1, 0.3},
	}
	for _, tt := range tests {
		var sb strings.Builder
		sb.WriteString("<ul>")
		for i := 0; i < tt.count; i++ {
			fmt.Fprintf(&sb, "<li><strong>Item %c.</strong> text</li>", 'a'+i)
		}
		sb.WriteString("</ul>")
		result := Classify(sb.String())
		if result.Confidence != tt.want {
			t.Errorf("%d items: expected confidence %v, got %v", tt.count, tt.want, result.Confidence)
		}
	}
}

func TestClassify_LetteredRatioMatters(t *testing.T) {
	// 5 qualifying plus 3 plain items: ratio 0.625, so the top two tiers
	// are out and section count >= 2 lands at 0.5... but ratio must
	// exceed 0.6, which 0.625 does.
	var sb strings.Builder
	sb.WriteString("<ul>")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&sb, "<li><strong>Section %c.</strong> text</li>", 'a'+i)
	}
	for i := 0; i < 3; i++ {
		sb.WriteString("<li>plain item with no bold lead</li>")
	}
	sb.WriteString("</ul>")

	result := Classify(sb.String())
	if result.Strategy != StrategyLettered {
		t.Fatalf("expected lettered, got %s", result.Strategy)
	}
	if result.Confidence != 0.5 {
		t.Errorf("5/8 qualifying: expected confidence 0.5, got %v", result.Confidence)
	}
}

func TestClassify_NumberedHeadings(t *testing.T) {
	markup := `
		<h1>1.0 Purpose</h1><p>Defines change control.</p>
		<h1>2.0 Scope</h1><p>All software systems.</p><p>And firmware.</p>
		<h1>3.0 Procedure</h1><p>Steps follow.</p>
		<h1>4.0 Records</h1><p>Retain five years.</p>
		<h1>5.0 References</h1><p>See QA-001.</p>`

	result := Classify(markup)
	if result.Strategy != StrategyNumbered {
		t.Fatalf("expected numbered, got %s", result.Strategy)
	}
	if result.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", result.Confidence)
	}
	if len(result.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(result.Sections))
	}
	if result.Sections[1].Heading.Marker != "2.0" || result.Sections[1].Title != "Scope" {
		t.Errorf("section 1: %+v", result.Sections[1])
	}
	if !strings.Contains(result.Sections[1].Content, "All software systems.") ||
		!strings.Contains(result.Sections[1].Content, "And firmware.") {
		t.Errorf("section 1 content: %q", result.Sections[1].Content)
	}
	if strings.Contains(result.Sections[1].Content, "Steps follow.") {
		t.Errorf("section 1 content bleeds into section 2: %q", result.Sections[1].Content)
	}
}

func TestClassify_NumberedConfidenceLadder(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{5, 0.9},
		{3, 0.7},
		{2, 0.4},
		{1, 0.4},
	}
	for _, tt := range tests {
		var sb strings.Builder
		for i := 1; i <= tt.count; i++ {
			fmt.Fprintf(&sb, "<h2>%d.0 Section</h2><p>text</p>", i)
		}
		result := Classify(sb.String())
		if result.Strategy != StrategyNumbered {
			t.Fatalf("%d headings: expected numbered, got %s", tt.count, result.Strategy)
		}
		if result.Confidence != tt.want {
			t.Errorf("%d headings: expected confidence %v, got %v", tt.count, tt.want, result.Confidence)
		}
	}
}

func TestClassify_NumberedKeepsUnmarkedHeadingContent(t *testing.T) {
	// A same-level heading without a numeric marker is not a section
	// boundary: it and the content under it belong to the preceding
	// section rather than falling out of the document.
	markup := `
		<h1>1.0 Purpose</h1><p>alpha</p>
		<h1>Appendix</h1><p>beta</p>
		<h1>2.0 Scope</h1><p>gamma</p>
		<h1>3.0 Records</h1><p>delta</p>`

	result := Classify(markup)
	if result.Strategy != StrategyNumbered {
		t.Fatalf("expected numbered, got %s", result.Strategy)
	}
	if len(result.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(result.Sections))
	}
	first := result.Sections[0].Content
	for _, want := range []string{"alpha", "Appendix", "beta"} {
		if !strings.Contains(first, want) {
			t.Errorf("section 0 lost %q: %q", want, first)
		}
	}
	if strings.Contains(first, "gamma") {
		t.Errorf("section 0 bleeds past the next marker: %q", first)
	}
	joined := ""
	for _, sec := range result.Sections {
		joined += sec.Content + "\n"
	}
	if !strings.Contains(joined, "beta") {
		t.Errorf("content dropped from all sections: %q", joined)
	}
}

func TestClassify_LetteredWinsTieByPriority(t *testing.T) {
	// Three lettered items (0.7) vs three numbered headings (0.7): the
	// declared order puts lettered first.
	markup := `
		<ul>
			<li><strong>Purpose.</strong> a</li>
			<li><strong>Scope.</strong> b</li>
			<li><strong>Records.</strong> c</li>
		</ul>
		<h1>1.0 Alpha</h1><p>x</p>
		<h1>2.0 Beta</h1><p>y</p>
		<h1>3.0 Gamma</h1><p>z</p>`

	result := Classify(markup)
	if result.Strategy != StrategyLettered {
		t.Errorf("expected lettered on tie, got %s (confidence %v)", result.Strategy, result.Confidence)
	}
}

func TestClassify_FallbackWhenNothingMatches(t *testing.T) {
	result := Classify(`<p>Just prose. No lists, no numbered headings.</p>`)
	if result.Strategy != StrategyFallback {
		t.Errorf("expected fallback, got %s", result.Strategy)
	}
	if result.Confidence != 0 || len(result.Sections) != 0 {
		t.Errorf("fallback should be empty, got %+v", result)
	}
}

func TestClassify_EmptyMarkup(t *testing.T) {
	result := Classify("   ")
	if result.Strategy != StrategyFallback || result.Confidence != 0 {
		t.Errorf("expected empty fallback, got %+v", result)
	}
}
