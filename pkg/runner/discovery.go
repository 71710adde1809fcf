package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ErrBadPattern is returned for include or exclude globs that do not compile.
var ErrBadPattern = errors.New("invalid glob pattern")

// matcher decides which discovered paths are rendered.
type matcher struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(opts.effectiveExtensions()))
	for _, ext := range opts.effectiveExtensions() {
		extensions = append(extensions, strings.ToLower(ext))
	}

	return &matcher{
		workDir:    workDir,
		extensions: extensions,
		include:    include,
		exclude:    exclude,
	}, nil
}

// compileGlobs compiles patterns with '/' as the separator, so "*"
// stays within one path segment and "**" crosses segments.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, pattern, err)
		}
		globs = append(globs, compiled)
	}
	return globs, nil
}

// rel returns path relative to the working directory, slash-separated.
func (m *matcher) rel(path string) string {
	relPath, err := filepath.Rel(m.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// anyMatch reports whether relPath, or its base name, matches a glob.
// "vendor" and "vendor/**" both exclude a vendor directory.
func anyMatch(globs []glob.Glob, relPath string) bool {
	base := relPath[strings.LastIndex(relPath, "/")+1:]
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

func (m *matcher) skipDir(path string) bool {
	relPath := m.rel(path)
	return anyMatch(m.exclude, relPath) || anyMatch(m.exclude, relPath+"/x")
}

func (m *matcher) matchFile(path string) bool {
	if !slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}

	relPath := m.rel(path)
	if anyMatch(m.exclude, relPath) {
		return false
	}
	return len(m.include) == 0 || anyMatch(m.include, relPath)
}

// Discover finds the Markdown files selected by opts. Paths are absolute,
// deduplicated and sorted. Hidden files and directories are skipped
// unless named directly.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	match, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if match.matchFile(absPath) {
				add(absPath)
			}
			continue
		}

		found, err := walk(ctx, absPath, match, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// walk collects matching files under root. Directory symlinks are walked
// through their target when follow is set.
func walk(ctx context.Context, root string, match *matcher, follow bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && match.skipDir(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !follow {
					return nil
				}
				sub, err := walk(ctx, target, match, follow)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if match.matchFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
