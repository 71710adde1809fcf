// Package cli provides the Cobra command structure for gomdrender.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdrender/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdrender command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdrender",
		Short: "Render Markdown to HTML, LaTeX and the terminal",
		Long: `gomdrender renders Markdown documents to HTML, LaTeX, styled terminal
output or a debug tree.

It reads CommonMark or GitHub Flavored Markdown (GFM), collects YAML front
matter as document metadata, and can produce standalone documents with a
head or preamble built from that metadata.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newMetaCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout, nil)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
