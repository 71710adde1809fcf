package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdrender/internal/logging"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // nil context is part of the contract
	if logging.FromContext(nil) == nil {
		t.Fatal("FromContext(nil) returned nil")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Fatal("FromContext without logger returned nil")
	}
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	logger := log.New(&bytes.Buffer{})
	ctx := logging.WithLogger(context.Background(), logger)

	if got := logging.FromContext(ctx); got != logger {
		t.Errorf("expected attached logger, got %p", got)
	}
}

func TestWithFields(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := log.New(&out)
	ctx := logging.WithLogger(context.Background(), logger)
	ctx = logging.WithFields(ctx, logging.FieldInput, "docs/a.md")

	logging.FromContext(ctx).Info("rendered file")

	for _, want := range []string{"rendered file", "input=docs/a.md"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected log output to contain %q, got %q", want, out.String())
		}
	}
}
