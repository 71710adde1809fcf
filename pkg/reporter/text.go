package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/runner"
)

// TextReporter writes one styled line per file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to render."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		input := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(input), r.styles.FormatError(file.Error))
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatRenderSummary(pretty.RenderStats{
			Input:   input,
			Output:  displayPath(file.Output, r.opts.WorkingDir),
			Type:    result.Type.String(),
			Bytes:   file.Bytes,
			Meta:    file.Meta,
			Written: file.Written,
		}))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.styles.FormatBatchSummary(result.Stats))
	}

	return result.Stats.FilesErrored, nil
}
