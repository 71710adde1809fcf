package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// renderFlags holds flags that do not map one-to-one onto config fields.
type renderFlags struct {
	output  string
	flavor  string
	summary bool
}

func newRenderCommand() *cobra.Command {
	var cfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a Markdown document",
		Long:  renderLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &cfg, flags)
		},
	}

	addRenderFlags(cmd, &cfg, flags)

	return cmd
}

const renderLongDescription = `Render a Markdown document to HTML, LaTeX, the terminal or a debug tree.

Reads from standard input when no file is given or the file is "-".
Output goes to standard output unless --output names a file, which is
replaced atomically and left untouched when the content is unchanged.

Examples:
  gomdrender render README.md                  # HTML fragment to stdout
  gomdrender render -s -o doc.html doc.md      # Standalone HTML document
  gomdrender render -t latex -s doc.md         # Standalone LaTeX document
  gomdrender render -t term README.md          # Styled terminal output
  cat doc.md | gomdrender render -t tree       # Debug tree of stdin
  gomdrender render --meta "title: Notes" a.md # Default title`

func runRender(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)
	start := time.Now()

	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	toStdout := fsutil.IsStdio(flags.output)
	if toStdout {
		adaptToTerminal(cmd, cfg)
	} else if !pretty.IsColorEnabled(colorMode(cmd), nil) {
		cfg.Term.NoColour = true
	}

	result, err := renderInput(ctx, cfg, inputArg(args), cmd.InOrStdin())
	if err != nil {
		return err
	}

	written := true
	if toStdout {
		if _, err := cmd.OutOrStdout().Write(result.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		if err := fsutil.CheckOutput(result.Input, flags.output); err != nil {
			return err
		}
		written, err = fsutil.WriteAtomicIfChanged(ctx, flags.output, result.Output, 0)
		if err != nil {
			return fmt.Errorf("write %s: %w", flags.output, err)
		}
		logger.Debug("wrote output",
			logging.FieldOutput, flags.output,
			logging.FieldBytes, len(result.Output),
		)
	}

	if flags.summary {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
		fmt.Fprintln(cmd.ErrOrStderr(), styles.FormatRenderSummary(pretty.RenderStats{
			Input:    result.Input.Path,
			Output:   flags.output,
			Type:     result.Type.String(),
			Bytes:    len(result.Output),
			Meta:     result.Meta.Len(),
			Written:  written,
			Duration: time.Since(start),
		}))
	}

	return nil
}

// adaptToTerminal fills in the terminal width and drops colour when
// stdout is not a colour-capable terminal. Explicit settings win.
func adaptToTerminal(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	if !pretty.IsColorEnabled(colorMode(cmd), out) {
		cfg.Term.NoColour = true
	}
	if cfg.Term.Columns == 0 {
		cfg.Term.Columns = terminalWidth(out)
	}
}

// terminalWidth returns the width of w if it is a terminal, or
// render.DefaultColumns.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return render.DefaultColumns
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return render.DefaultColumns
	}
	return width
}

func addRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a render summary to stderr")
	addConfigFlags(cmd, cfg, &flags.flavor)
}

// addConfigFlags registers the flags that map onto config fields. Only
// flags the user sets reach the merged configuration.
func addConfigFlags(cmd *cobra.Command, cfg *config.Config, flavor *string) {
	cmd.Flags().StringVarP(&cfg.Type, "type", "t", "", "output type: html, latex, term, tree (default html)")
	cmd.Flags().StringVar(flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVarP(&cfg.Standalone, "standalone", "s", false, "emit a complete document with head or preamble")
	cmd.Flags().StringVar(&cfg.Locale, "locale", "", "BCP 47 locale for localised placeholders")
	cmd.Flags().IntVar(&cfg.MaxBytes, "max-bytes", 0, "fail when output exceeds this size (0 = unlimited)")

	// Parser flags.
	cmd.Flags().StringSliceVar(&cfg.Parser.Features, "features", nil,
		"input features to enable (default: "+strings.Join(config.FeatureNames(), ",")+")")
	cmd.Flags().BoolVar(&cfg.Parser.DetectLanguage, "detect-language", false,
		"detect the language of code blocks without one")
	cmd.Flags().StringArrayVar(&cfg.Meta, "meta", nil, `default metadata "key: value" (repeatable)`)
	cmd.Flags().StringArrayVar(&cfg.MetaOverride, "metaovr", nil, `override metadata "key: value" (repeatable)`)

	// HTML flags.
	cmd.Flags().BoolVar(&cfg.HTML.SkipHTML, "skip-html", false, "drop raw HTML from output")
	cmd.Flags().BoolVar(&cfg.HTML.Escape, "escape", false, "escape raw HTML instead of passing it through")
	cmd.Flags().BoolVar(&cfg.HTML.HardWrap, "hard-wrap", false, "turn soft line breaks into <br>")
	cmd.Flags().BoolVar(&cfg.HTML.HeadIDs, "head-ids", false, "give headings slug IDs")
	cmd.Flags().BoolVar(&cfg.HTML.NumEnt, "num-ent", false, "convert named entities to numeric references")
	cmd.Flags().BoolVar(&cfg.HTML.OWASP, "owasp", false, "escape text with the OWASP rule set")

	// LaTeX flags.
	cmd.Flags().BoolVar(&cfg.LaTeX.Numbered, "numbered", false, "number LaTeX sections")
	cmd.Flags().BoolVar(&cfg.LaTeX.SkipHTML, "latex-skip-html", false, "drop raw HTML from LaTeX output")

	// Terminal flags.
	cmd.Flags().IntVar(&cfg.Term.Columns, "columns", 0, "terminal width (default: detected)")
	cmd.Flags().BoolVar(&cfg.Term.NoColour, "no-colour", false, "disable terminal styles")
	cmd.Flags().BoolVar(&cfg.Term.NoLink, "no-link", false, "omit link targets in terminal output")
	cmd.Flags().BoolVar(&cfg.Term.ShortLink, "short-link", false, "abbreviate link targets in terminal output")
}
