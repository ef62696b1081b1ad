package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prochunk",
	Short: "Split procedural documents into retrieval-ready chunks",
	Long: `prochunk extracts metadata from procedural documents (Word, PDF,
Markdown), classifies their section structure, and splits them into
word-bounded chunks with overlap, suitable for embedding and retrieval.`,
}

func main() {
	rootCmd.AddCommand(chunkCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
