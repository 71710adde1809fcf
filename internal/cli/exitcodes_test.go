package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdrender/internal/cli"
	"github.com/yaklabco/gomdrender/internal/configloader"
	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/runner"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"config", errors.Join(cli.ErrConfig, errors.New("bad yaml")), cli.ExitConfigError},
		{"validation", &configloader.ValidationError{Field: "type", Message: "unknown"}, cli.ExitConfigError},
		{"unknown type", fmt.Errorf("type: %w", render.ErrUnknownType), cli.ExitInvalidUsage},
		{"unknown feature", fmt.Errorf("x: %w", config.ErrUnknownFeature), cli.ExitInvalidUsage},
		{"invalid meta", config.ErrInvalidMeta, cli.ExitInvalidUsage},
		{"missing input", fmt.Errorf("%w: a.md", fsutil.ErrNotFound), cli.ExitNoInput},
		{"same file", fsutil.ErrSameFile, cli.ExitCantCreate},
		{"config exists", configloader.ErrConfigExists, cli.ExitCantCreate},
		{"permission", fsutil.ErrPermissionDenied, cli.ExitIOError},
		{"directory", fsutil.ErrIsDirectory, cli.ExitIOError},
		{"too large", fmt.Errorf("render html: %w", hbuf.ErrNoSpace), cli.ExitDataError},
		{"nil tree", render.ErrNilTree, cli.ExitInternalError},
		{"bad glob", fmt.Errorf("x: %w", runner.ErrBadPattern), cli.ExitInvalidUsage},
		{"batch failures", fmt.Errorf("%w: 1 of 2", cli.ErrBatchFailures), cli.ExitFailure},
		{"other", errors.New("boom"), cli.ExitFailure},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, cli.ExitCode(testCase.err))
		})
	}
}
