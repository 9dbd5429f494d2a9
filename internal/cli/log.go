// Package cli implements the coachtree command-line interface.
//
// This package provides commands for ingesting coaching datasets, computing
// layered lineage layouts, rendering them, and answering lineage queries.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute the layered lineage layout from a dataset
//   - render: Generate SVG, PNG, PDF, DOT, or JSON artifacts
//   - query: Answer chain/reach/connections questions about a coach
//   - validate: Lint a dataset and report lineage statistics
//   - fetch: Download a dataset over HTTPS
//   - browse: Interactive coach browser
//   - snapshot: Manage the named snapshot store
//   - serve: Run the HTTP API
//   - cache: Manage the pipeline result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --quiet (-q) to suppress everything below warnings.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration. It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since the tracker was created,
// rounded to the nearest millisecond.
// Example output: "Laid out 42 coaches (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
