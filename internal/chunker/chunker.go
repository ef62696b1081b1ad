// Package chunker partitions cleansed document text into word-bounded,
// overlapping chunks for embedding. Rendered markdown tables are atomic:
// a table is never split, never merged with surrounding paragraphs, and
// never repeated by overlap.
package chunker

import "strings"

// Config controls chunking behavior.
type Config struct {
	TargetWords  int     // Target chunk size in words.
	OverlapWords int     // Approximate trailing words repeated into the next chunk.
	MaxFactor    float64 // Hard cap as a multiple of TargetWords.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TargetWords:  400,
		OverlapWords: 50,
		MaxFactor:    1.2,
	}
}

func (c *Config) defaults() {
	if c.TargetWords <= 0 {
		c.TargetWords = 400
	}
	if c.OverlapWords < 0 {
		c.OverlapWords = 50
	}
	if c.MaxFactor <= 1 {
		c.MaxFactor = 1.2
	}
}

// Piece is one produced chunk of text before metadata assembly.
type Piece struct {
	Text      string
	WordCount int
	Table     bool
}

// Split partitions cleansed text into pieces. The text is divided at
// blank-line boundaries into sections; sections accumulate greedily until
// the running word count reaches TargetWords, with a hard cap of
// TargetWords*MaxFactor. A section whose trimmed content begins with "|"
// is a table block: it always forms a chunk of its own. After a non-table
// chunk, whole trailing sections totalling about OverlapWords are repeated
// at the start of the next chunk; a table chunk produces no overlap.
//
// Split is total: empty input yields no pieces, and a single oversized
// section is emitted whole rather than split mid-paragraph.
func Split(text string, cfg Config) []Piece {
	cfg.defaults()

	sections := splitSections(text)
	if len(sections) == 0 {
		return nil
	}

	hardCap := int(float64(cfg.TargetWords) * cfg.MaxFactor)
	var pieces []Piece

	for i := 0; i < len(sections); {
		current := []string{sections[i]}
		words := countWords(sections[i])
		startIsTable := isTable(sections[i])
		i++

		if !startIsTable {
			for i < len(sections) {
				next := sections[i]
				if isTable(next) {
					break
				}
				if words >= cfg.TargetWords {
					break
				}
				w := countWords(next)
				if words+w > hardCap {
					break
				}
				current = append(current, next)
				words += w
				i++
			}
		}

		pieces = append(pieces, Piece{
			Text:      strings.Join(current, "\n\n"),
			WordCount: words,
			Table:     startIsTable,
		})

		// Rewind the cursor so trailing sections repeat in the next
		// chunk. The chunk's first section never re-enters, which
		// guarantees forward progress.
		if !startIsTable && i < len(sections) {
			back, overlap := 0, 0
			for back < len(current)-1 && overlap < cfg.OverlapWords {
				overlap += countWords(current[len(current)-1-back])
				back++
			}
			i -= back
		}
	}

	return pieces
}

// splitSections divides text at blank-line boundaries, dropping empty
// sections.
func splitSections(text string) []string {
	var sections []string
	for _, part := range strings.Split(text, "\n\n") {
		part = strings.TrimSpace(part)
		if part != "" {
			sections = append(sections, part)
		}
	}
	return sections
}

func isTable(section string) bool {
	return strings.HasPrefix(strings.TrimSpace(section), "|")
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
