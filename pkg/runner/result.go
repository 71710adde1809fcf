package runner

import "github.com/yaklabco/gomdrender/pkg/render"

// FileOutcome is the result of rendering one file.
type FileOutcome struct {
	// Path is the input file.
	Path string

	// Output is the file the rendering was written to.
	Output string

	// Bytes is the size of the rendered output.
	Bytes int

	// Meta is the number of metadata entries the renderer collected.
	Meta int

	// Written is false when the output already held identical content.
	Written bool

	// Error is set if the file could not be rendered or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesWritten    int
	FilesUnchanged  int
	FilesErrored    int
	BytesRendered   int
}

// Result is the overall runner result.
type Result struct {
	// Type is the output type every file was rendered to.
	Type render.OutputType

	// Files holds one outcome per rendered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.BytesRendered += outcome.Bytes
	if outcome.Written {
		r.Stats.FilesWritten++
	} else {
		r.Stats.FilesUnchanged++
	}
}
