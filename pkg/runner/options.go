// Package runner renders many Markdown files concurrently.
package runner

import "github.com/yaklabco/gomdrender/pkg/render"

// Options controls a batch render.
type Options struct {
	// Paths are the files or directories to render.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths
	// and to mirror the input layout under OutDir.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty means every file with a Markdown extension.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs caps the number of files rendered at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutDir receives the outputs, mirroring each input's path relative
	// to WorkingDir. Empty writes each output next to its input.
	OutDir string
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// OutputExtension returns the file extension used for outputs of t.
func OutputExtension(t render.OutputType) string {
	switch t {
	case render.TypeLaTeX:
		return ".tex"
	case render.TypeTerm:
		return ".txt"
	case render.TypeTree:
		return ".tree"
	default:
		return ".html"
	}
}
