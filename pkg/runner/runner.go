package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/parser/goldmark"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// outputDirMode is the mode of directories created under OutDir.
const outputDirMode = 0o755

// Runner renders files with one parser and one set of backend options.
type Runner struct {
	parser   *goldmark.Parser
	render   render.Options
	registry *render.Registry
}

// New creates a Runner. A nil registry selects render.DefaultRegistry.
func New(parser *goldmark.Parser, opts render.Options, registry *render.Registry) *Runner {
	if registry == nil {
		registry = render.DefaultRegistry
	}
	return &Runner{parser: parser, render: opts, registry: registry}
}

// Run discovers the files selected by opts and renders them concurrently.
// Per-file failures are recorded in the result; only discovery errors
// and cancellation fail the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Type: r.render.Type, Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	outDir := opts.OutDir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	logger.Debug("starting batch render",
		logging.FieldWorkingDir, workDir,
		logging.FieldType, r.render.Type,
		"files", len(files),
		"jobs", jobs,
	)

	// Each file owns one slot, so workers never share state.
	outcomes := make([]FileOutcome, len(files))
	var group errgroup.Group
	group.SetLimit(jobs)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			output := outputPath(path, workDir, outDir, OutputExtension(r.render.Type))
			outcomes[i] = r.renderFile(ctx, path, output)
			return nil
		})
	}
	_ = group.Wait() //nolint:errcheck // workers record failures in their outcome

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) renderFile(ctx context.Context, path, output string) FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldInput, path)
	outcome := FileOutcome{Path: path, Output: output}

	content, info, err := fsutil.ReadInput(ctx, path, nil)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	tree, err := r.parser.Parse(ctx, content)
	if err != nil {
		outcome.Error = fmt.Errorf("parse: %w", err)
		return outcome
	}

	mq := meta.NewQueue()
	rendered, err := r.registry.Document(ctx, r.render, tree, mq)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Bytes = len(rendered)
	outcome.Meta = mq.Len()

	if err := fsutil.CheckOutput(info, output); err != nil {
		outcome.Error = err
		return outcome
	}
	if err := os.MkdirAll(filepath.Dir(output), outputDirMode); err != nil {
		outcome.Error = fmt.Errorf("create output directory: %w", err)
		return outcome
	}

	outcome.Written, err = fsutil.WriteAtomicIfChanged(ctx, output, rendered, 0)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	logging.FromContext(ctx).Debug("rendered file",
		logging.FieldOutput, output,
		logging.FieldBytes, outcome.Bytes,
		"written", outcome.Written,
	)
	return outcome
}

// outputPath maps an input file to its output. Without outDir the output
// sits next to the input; with it, the input's path relative to workDir
// is mirrored under outDir. Inputs outside workDir keep only their base name.
func outputPath(path, workDir, outDir, ext string) string {
	name := strings.TrimSuffix(path, filepath.Ext(path)) + ext
	if outDir == "" {
		return name
	}

	relPath, err := filepath.Rel(workDir, name)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		relPath = filepath.Base(name)
	}
	return filepath.Join(outDir, relPath)
}
