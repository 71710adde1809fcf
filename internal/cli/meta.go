package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// metaFlags holds the flags for the meta command.
type metaFlags struct {
	format string
}

func newMetaCommand() *cobra.Command {
	var cfg config.Config
	flags := &metaFlags{}

	cmd := &cobra.Command{
		Use:   "meta [file]",
		Short: "Show the metadata collected from a document",
		Long: `Render a document and print the metadata the renderer collected: front
matter merged with --meta defaults and --metaovr overrides, followed by
the resolved header fields (title, author, date and so on).

Examples:
  gomdrender meta doc.md                          Table of metadata
  gomdrender meta --format yaml doc.md            Metadata as YAML
  gomdrender meta --metaovr "title: Draft" doc.md  Preview an override`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeta(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table or yaml")
	cmd.Flags().StringArrayVar(&cfg.Meta, "meta", nil, `default metadata "key: value" (repeatable)`)
	cmd.Flags().StringArrayVar(&cfg.MetaOverride, "metaovr", nil, `override metadata "key: value" (repeatable)`)

	return cmd
}

func runMeta(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *metaFlags) error {
	if flags.format != "table" && flags.format != "yaml" {
		return fmt.Errorf("invalid format %q: must be table or yaml", flags.format)
	}

	ctx := commandContext(cmd)

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	// The tree backend collects no metadata.
	if outputType, err := render.ParseOutputType(cfg.Type); err == nil && outputType == render.TypeTree {
		cfg.Type = string(render.TypeHTML)
	}

	result, err := renderInput(ctx, cfg, inputArg(args), cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	entries := result.Meta.Entries()

	if flags.format == "yaml" {
		node := yaml.Node{Kind: yaml.MappingNode}
		for _, entry := range entries {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: entry.Key},
				&yaml.Node{Kind: yaml.ScalarNode, Value: entry.Value},
			)
		}
		data, err := yaml.Marshal(&node)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no metadata in %s\n", result.Input.Path)
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	table := pretty.NewTableFormatter(styles, terminalWidth(out))
	fmt.Fprint(out, table.FormatMetaTable(entries, result.Meta.Header()))
	return nil
}
