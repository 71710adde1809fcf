package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/parser/goldmark"
	"github.com/yaklabco/gomdrender/pkg/reporter"
	"github.com/yaklabco/gomdrender/pkg/runner"
)

// ErrBatchFailures is returned when at least one file of a batch failed.
var ErrBatchFailures = errors.New("some files failed to render")

type batchFlags struct {
	flavor     string
	outDir     string
	jobs       int
	ignore     []string
	include    []string
	extensions []string
	symlinks   bool
	format     string
	compact    bool
}

func newBatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Render many Markdown files",
		Long: `Render every Markdown file under the given files and directories.

Files render concurrently. Each output is written next to its input with
the extension of the output type (.html, .tex, .txt or .tree), or under
--out-dir mirroring the input layout. Outputs whose content is unchanged
are left untouched. Hidden files and directories are skipped.

Examples:
  gomdrender batch                             # Every .md file below .
  gomdrender batch docs -o site -s             # Standalone HTML into site/
  gomdrender batch -t latex --ignore "drafts/**"
  gomdrender batch --format json               # Machine-readable report`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, &cfg, flags)
		},
	}

	addConfigFlags(cmd, &cfg, &flags.flavor)
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "directory for outputs (default: next to inputs)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel renders (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns to restrict rendering to")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", runner.DefaultExtensions(), "Markdown file extensions")
	cmd.Flags().BoolVar(&flags.symlinks, "follow-symlinks", false, "walk directory symlinks")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, json")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *batchFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}
	// Files get plain text unless colour is forced.
	if colorMode(cmd) != "always" {
		cfg.Term.NoColour = true
	}

	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	parserOpts, err := cfg.ParserOptions()
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	batch := runner.New(goldmark.New(parserOpts), renderOpts, nil)
	result, err := batch.Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     flags.extensions,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   flags.ignore,
		FollowSymlinks: flags.symlinks,
		Jobs:           flags.jobs,
		OutDir:         flags.outDir,
	})
	if err != nil {
		return errors.Join(errors.New("batch render failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	failed, err := rep.Report(ctx, result)
	if err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailures, failed, result.Stats.FilesDiscovered)
	}
	return nil
}
