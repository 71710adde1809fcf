// Package fsutil reads render inputs and writes render outputs.
// Outputs are replaced atomically so a failed render never leaves a
// truncated file behind.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// StdioPath names standard input or output on the command line.
const StdioPath = "-"

// stdinName is the FileInfo path reported for standard input.
const stdinName = "<stdin>"

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrSameFile indicates the output path names the input file.
	ErrSameFile = errors.New("output would overwrite input")
)

// FileInfo describes an input as it was read.
type FileInfo struct {
	// Path is the path given by the caller, or "<stdin>".
	Path string

	// Mode is the file's permission and mode bits. Zero for stdin.
	Mode os.FileMode

	// Size is the content size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the content.
	Hash [32]byte
}

// IsStdin reports whether the input came from standard input.
func (i *FileInfo) IsStdin() bool {
	return i.Path == stdinName
}

// IsStdio reports whether path names standard input or output.
func IsStdio(path string) bool {
	return path == "" || path == StdioPath
}

// ReadInput reads path, or stdin when path is empty or "-", and returns
// the content along with metadata.
func ReadInput(ctx context.Context, path string, stdin io.Reader) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read input: %w", ctx.Err())
	default:
	}

	if IsStdio(path) {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, newFileInfo(stdinName, 0, content), nil
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, "stat", err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, "read", err)
	}

	return content, newFileInfo(path, stat.Mode(), content), nil
}

func newFileInfo(path string, mode os.FileMode, content []byte) *FileInfo {
	return &FileInfo{
		Path: path,
		Mode: mode,
		Size: int64(len(content)),
		Hash: sha256.Sum256(content),
	}
}

func classify(path, op string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckOutput rejects an output path that names the input file. Stdio
// on either side never conflicts, nor does an output that does not exist yet.
func CheckOutput(input *FileInfo, output string) error {
	if input == nil || input.IsStdin() || IsStdio(output) {
		return nil
	}

	inStat, err := os.Stat(input.Path)
	if err != nil {
		return nil //nolint:nilerr // A vanished input cannot be overwritten.
	}
	outStat, err := os.Stat(output)
	if err != nil {
		return nil //nolint:nilerr // The output does not exist yet.
	}

	if os.SameFile(inStat, outStat) {
		return fmt.Errorf("%w: %s", ErrSameFile, output)
	}
	return nil
}
