// Package main is the entry point for the gomdrender CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gomdrender/internal/cli"
	"github.com/yaklabco/gomdrender/internal/logging"

	// Register the html, latex, term and tree backends.
	_ "github.com/yaklabco/gomdrender/pkg/render/backends"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// The batch report already lists failed files.
		if !errors.Is(err, cli.ErrBatchFailures) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
