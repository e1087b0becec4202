// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsOutputDir string

// docsCmd self-documents h6xserial-idl's own flags and usage, distinct
// from the --export_docs branch, which documents the protocol's
// messages instead of the tool's command-line surface.
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate CLI documentation for h6xserial-idl",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(docsOutputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		rootCmd.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(rootCmd, docsOutputDir); err != nil {
			return fmt.Errorf("generate markdown: %w", err)
		}
		fmt.Printf("Generated CLI docs in %s\n", docsOutputDir)
		return nil
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsOutputDir, "output", "o", "./docs/cli", "Output directory for generated docs")
}
