package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dgallion1/prochunk/internal/chunker"
	"github.com/dgallion1/prochunk/internal/engine"
)

var (
	flagJSON         bool
	flagTargetWords  int
	flagOverlapWords int
)

var chunkCmd = &cobra.Command{
	Use:   "chunk <file>...",
	Short: "Chunk one or more documents and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChunk,
}

func init() {
	chunkCmd.Flags().BoolVar(&flagJSON, "json", false, "emit chunks as JSON")
	chunkCmd.Flags().IntVar(&flagTargetWords, "target-words", 400, "target words per chunk")
	chunkCmd.Flags().IntVar(&flagOverlapWords, "overlap-words", 50, "overlap words between chunks")
}

func runChunk(cmd *cobra.Command, args []string) error {
	cfg := chunker.Config{
		TargetWords:  flagTargetWords,
		OverlapWords: flagOverlapWords,
	}

	var bar *progressbar.ProgressBar
	if len(args) > 1 && !flagJSON {
		bar = progressbar.Default(int64(len(args)), "chunking")
	}

	type fileResult struct {
		Filename string          `json:"filename"`
		Chunks   []chunker.Chunk `json:"chunks"`
		Err      string          `json:"error,omitempty"`
	}
	var results []fileResult

	for _, path := range args {
		res := fileResult{Filename: filepath.Base(path)}
		data, err := os.ReadFile(path)
		if err != nil {
			res.Err = err.Error()
		} else {
			doc, err := engine.Open(filepath.Base(path), data, cfg)
			if err != nil {
				res.Err = err.Error()
			} else if chunks, err := doc.Chunk(); err != nil {
				res.Err = err.Error()
			} else {
				res.Chunks = chunks
			}
		}
		results = append(results, res)
		if bar != nil {
			bar.Add(1)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	failed := 0
	for _, res := range results {
		if res.Err != "" {
			failed++
			color.Red("%s: %s", res.Filename, res.Err)
			continue
		}
		color.Green("%s: %d chunks", res.Filename, len(res.Chunks))
		for _, c := range res.Chunks {
			title := c.SectionTitle
			if title == "" {
				title = "-"
			}
			fmt.Printf("  [%d] %-30s %4d words  %s\n", c.ChunkIndex, title, c.WordCount, c.ContentType)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
