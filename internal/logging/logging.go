// Package logging sets up the structured progress/diagnostic logger
// (layer J), kept off stdout so it never interleaves with the
// pattern-output stream printer.Printer writes (spec.md §6, §7).
package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus.Entry pre-tagged with a per-run correlation ID
// (spec.md's SPEC_FULL.md §4.10), grounded on vancomm-minesweeper-server's
// `log.WithFields(logrus.Fields{...})` idiom.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger writing to stderr, at Info level unless verbose
// asks for Debug.
func New(verbose bool) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	runID := uuid.New()
	return &Logger{entry: log.WithFields(logrus.Fields{"run_id": runID.String()})}
}

// Progress logs a routine status event (queue compaction, deepening round).
func (l *Logger) Progress(msg string, fields map[string]any) {
	l.entry.WithFields(fields).Info(msg)
}

// Fatal logs an invariant violation or capacity-exceeded condition
// (spec.md §7's "fatal" taxonomy entries); it does not itself exit —
// the caller still prints the deepest line and exits 0, per spec.md
// §6's "same exit code for success and exhaustion".
func (l *Logger) Fatal(msg string, fields map[string]any) {
	l.entry.WithFields(fields).Error(msg)
}

// Debug logs fine-grained per-state tracing, only emitted under --verbose.
func (l *Logger) Debug(msg string, fields map[string]any) {
	l.entry.WithFields(fields).Debug(msg)
}
