package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdrender/internal/configloader"
	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/parser/goldmark"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// rendered is the outcome of one pass through parse and render.
type rendered struct {
	Input  *fsutil.FileInfo
	Output []byte
	Meta   *meta.Queue
	Type   render.OutputType
}

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the configuration for cmd, with cliCfg holding
// only the values set by flags. Warnings go to the command's stderr.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	if len(loadResult.Warnings) > 0 {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatWarnings("", loadResult.Warnings))
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldType, cfg.Type,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldStandalone, cfg.Standalone,
	)
	return cfg, nil
}

// renderInput reads path (stdin when empty or "-"), parses it and renders
// it with cfg.
func renderInput(ctx context.Context, cfg *config.Config, path string, stdin io.Reader) (*rendered, error) {
	logger := logging.FromContext(ctx)

	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	parserOpts, err := cfg.ParserOptions()
	if err != nil {
		return nil, err
	}

	content, info, err := fsutil.ReadInput(ctx, path, stdin)
	if err != nil {
		return nil, err
	}

	logger.Debug("parsing input",
		logging.FieldInput, info.Path,
		logging.FieldInputBytes, info.Size,
		logging.FieldFlavor, parserOpts.Flavor,
	)

	tree, err := goldmark.New(parserOpts).Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", info.Path, err)
	}

	mq := meta.NewQueue()
	output, err := render.Document(ctx, renderOpts, tree, mq)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", info.Path, err)
	}

	return &rendered{
		Input:  info,
		Output: output,
		Meta:   mq,
		Type:   renderOpts.Type,
	}, nil
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return fsutil.StdioPath
	}
	return args[0]
}
