// debug.go — structured debug tracing for the parser and type solver
//
// WHAT THIS MODULE DOES
// =====================
// This module centralizes the debugging-only trace output of the package.
// It provides:
//
//   - A single public toggle, `DebuggingMode`, which is picked up at process
//     start from the `LAMBDADEBUG` environment variable. Hosts may also set
//     it programmatically (tests, REPLs) via `EnableDebugLog`.
//
//   - A package-level `log/slog` logger, `dbg`, writing human-readable text
//     records to stderr when debugging is enabled and discarding everything
//     otherwise. Trace call sites additionally gate on `DebuggingMode` so the
//     hot paths pay only a boolean check.
//
// The trace points mirror the structure of the data being built: one record
// per pushed AST node (kind, index, payload, source span) and one per binder
// entered by the parser (token, new depth).
package lambda

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// DebuggingMode controls whether parse/solve trace records are emitted. It is
// initialized from the environment variable `LAMBDADEBUG` at process start.
// Hosts and tests may override it via EnableDebugLog.
var DebuggingMode = os.Getenv("LAMBDADEBUG") != ""

var dbg = newDebugLogger(os.Stderr)

// EnableDebugLog turns on debug tracing and directs it at w. The CLI calls
// this for its -debug flag; tests use it to capture trace output.
func EnableDebugLog(w io.Writer) {
	DebuggingMode = true
	dbg = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newDebugLogger(w io.Writer) *slog.Logger {
	if !DebuggingMode {
		return slog.New(noopHandler{})
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// noopHandler drops every record. Used when DebuggingMode is off so that a
// stray dbg call without its gate still costs nothing visible.
type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (noopHandler) Handle(context.Context, slog.Record) error { return nil }
func (noopHandler) WithAttrs([]slog.Attr) slog.Handler        { return noopHandler{} }
func (noopHandler) WithGroup(string) slog.Handler             { return noopHandler{} }
