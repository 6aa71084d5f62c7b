// Package cli contains the reportctl commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is the reportctl version.
var Version = "0.1.0"

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "reportctl",
		Short: "Operator tool for the cursito report compiler",
		Long: `reportctl compiles the same documents the API serves, straight to a file.

Examples:
  reportctl render attendance --course 9e8d7c6b-... --format csv -o lista.csv
  reportctl render opinion-survey --worker 0b6f... --course 9e8d... -o opinion.pdf
  reportctl batch attendance --course 9e8d...,41c2... --format csv
  reportctl prune --older-than 72h
  reportctl catalog followup --output json
  reportctl hash-password
  reportctl cache flush`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRenderCommand(),
		newBatchCommand(),
		newPruneCommand(),
		newCatalogCommand(),
		newHashPasswordCommand(),
		newCacheCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure. Called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func writeOut(cmd *cobra.Command, path string, content []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", len(content), path)
	return nil
}

func readAllTrimmed(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s := string(data)
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s, nil
}
