package cli

import (
	"errors"

	"github.com/yaklabco/gomdrender/internal/configloader"
	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/runner"
)

// Exit codes for gomdrender, following sysexits.h.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates an error with no more specific code.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates input that cannot be rendered, such as
	// output exceeding max_bytes.
	ExitDataError = 65

	// ExitNoInput indicates a missing input file.
	ExitNoInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitCantCreate indicates an output file that may not be written.
	ExitCantCreate = 73

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

// ErrConfig marks errors raised while loading configuration.
var ErrConfig = errors.New("failed to load configuration")

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, render.ErrUnknownType),
		errors.Is(err, config.ErrUnknownFeature),
		errors.Is(err, config.ErrInvalidMeta),
		errors.Is(err, runner.ErrBadPattern):
		return ExitInvalidUsage
	case errors.Is(err, fsutil.ErrNotFound):
		return ExitNoInput
	case errors.Is(err, fsutil.ErrSameFile), errors.Is(err, configloader.ErrConfigExists):
		return ExitCantCreate
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	case errors.Is(err, hbuf.ErrNoSpace):
		return ExitDataError
	case errors.Is(err, render.ErrNilTree), errors.Is(err, hbuf.ErrReadOnly):
		return ExitInternalError
	default:
		// Includes ErrBatchFailures.
		return ExitFailure
	}
}
