package pretty

import (
	"fmt"
	"time"

	"github.com/yaklabco/gomdrender/pkg/runner"
)

// RenderStats describes one completed render.
type RenderStats struct {
	Input    string
	Output   string
	Type     string
	Bytes    int
	Meta     int
	Written  bool
	Duration time.Duration
}

// FormatRenderSummary formats a one-line summary of a render, e.g.
// "rendered doc.md -> doc.html  html  1.2 KiB  3 meta  (4ms)".
func (s *Styles) FormatRenderSummary(stats RenderStats) string {
	output := stats.Output
	if output == "" {
		output = "stdout"
	}

	status := s.Success.Render("rendered")
	if !stats.Written {
		status = s.Dim.Render("unchanged")
	}

	line := fmt.Sprintf("%s %s -> %s  %s  %s  %d meta",
		status,
		s.FilePath.Render(stats.Input),
		s.FilePath.Render(output),
		s.Type.Render(stats.Type),
		FormatBytes(stats.Bytes),
		stats.Meta,
	)
	if stats.Duration > 0 {
		line += "  " + s.Dim.Render("("+stats.Duration.Round(time.Millisecond).String()+")")
	}
	return line
}

// FormatBytes formats a byte count with a binary unit.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatBatchSummary formats the totals of a batch render, e.g.
// "3 files: 2 rendered (1 written, 1 unchanged), 1 failed, 4.0 KiB".
func (s *Styles) FormatBatchSummary(stats runner.Stats) string {
	files := "files"
	if stats.FilesDiscovered == 1 {
		files = "file"
	}

	line := fmt.Sprintf("%s: %s (%d written, %d unchanged)",
		s.Bold.Render(fmt.Sprintf("%d %s", stats.FilesDiscovered, files)),
		s.Success.Render(fmt.Sprintf("%d rendered", stats.FilesRendered)),
		stats.FilesWritten,
		stats.FilesUnchanged,
	)
	if stats.FilesErrored > 0 {
		line += ", " + s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}
	return line + ", " + FormatBytes(stats.BytesRendered)
}
