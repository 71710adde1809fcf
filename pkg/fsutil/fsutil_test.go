package fsutil_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/fsutil"
)

func TestReadInput_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n"), 0o644))

	content, info, err := fsutil.ReadInput(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, sha256.Sum256(content), info.Hash)
	assert.False(t, info.IsStdin())
}

func TestReadInput_Stdin(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"", "-"} {
		content, info, err := fsutil.ReadInput(context.Background(), path, strings.NewReader("*hi*"))
		require.NoError(t, err)
		assert.Equal(t, "*hi*", string(content))
		assert.True(t, info.IsStdin())
		assert.Equal(t, os.FileMode(0), info.Mode)
	}
}

func TestReadInput_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing", filepath.Join(dir, "missing.md"), fsutil.ErrNotFound},
		{"directory", dir, fsutil.ErrIsDirectory},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := fsutil.ReadInput(context.Background(), testCase.path, nil)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestReadInput_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fsutil.ReadInput(ctx, "-", strings.NewReader("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	other := filepath.Join(dir, "doc.html")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("y"), 0o644))

	_, info, err := fsutil.ReadInput(context.Background(), input, nil)
	require.NoError(t, err)

	require.ErrorIs(t, fsutil.CheckOutput(info, input), fsutil.ErrSameFile)
	require.ErrorIs(t, fsutil.CheckOutput(info, filepath.Join(dir, ".", "doc.md")), fsutil.ErrSameFile)
	require.NoError(t, fsutil.CheckOutput(info, other))
	require.NoError(t, fsutil.CheckOutput(info, filepath.Join(dir, "new.html")))
	require.NoError(t, fsutil.CheckOutput(info, "-"))
	require.NoError(t, fsutil.CheckOutput(nil, input))
}

func TestIsStdio(t *testing.T) {
	t.Parallel()

	assert.True(t, fsutil.IsStdio(""))
	assert.True(t, fsutil.IsStdio("-"))
	assert.False(t, fsutil.IsStdio("out.html"))
}
