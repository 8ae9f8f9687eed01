// errors.go: diagnostics, fatal internal errors, and caret-snippet rendering
//
// What this file does
// -------------------
// Two error families live here, matching the two failure modes of the core:
//
//   - `*SyntaxError` — recoverable, accumulated. The parser records one per
//     malformed construct (byte offset + message) and keeps going; the whole
//     list is rendered by `ReportSyntaxErrors` in insertion order, one per
//     line, each ending with a period:
//
//     input.lam:5: Syntax error: Unmatched '('.
//
//   - `*InternalError` — fatal. `die` panics with one when a core invariant
//     breaks (arena overflow, bad node tag, printer guard exhausted). Nothing
//     in this package recovers it.
//
// On top of that, `WrapErrorWithSource` turns a `*SyntaxError` into a
// readable caret snippet pointing at the offending column:
//
//	SYNTAX ERROR in repl at 1:4: Unmatched '('
//
//	   1 | (x (y
//	     |    ^
//
// Scope of the public API
// -----------------------
// Public:   SyntaxError, InternalError, (*Ast).SyntaxErrors,
//           (*Ast).ReportSyntaxErrors, WrapErrorWithSource, WrapErrorWithName
// Private:  die, addSyntaxError, offset→line/col mapping, snippet renderer.
//
// Behavior guarantees
// -------------------
//   - If the wrapped error is not a *SyntaxError it is returned unchanged.
//   - Offsets are clamped so the caret can always be rendered safely, even
//     for empty or short sources.
//   - Output is plain text (no ANSI colors); the CLI adds color on top.
package lambda

import (
	"fmt"
	"io"
	"strings"
)

/* ===========================
   PUBLIC API
   =========================== */

// SyntaxError is one recoverable diagnostic recorded while parsing. Off is a
// byte offset into the parsed buffer (the wrapped source, when the driver
// wraps).
type SyntaxError struct {
	Off int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error at byte %d: %s.", e.Off, e.Msg)
}

// InternalError reports a broken core invariant. It is delivered by panic and
// never recovered inside this package.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return e.Msg }

// SyntaxErrors returns the recorded diagnostics in insertion order. The Ast
// retains ownership of the slice.
func (a *Ast) SyntaxErrors() []*SyntaxError { return a.errs }

// ReportSyntaxErrors writes every recorded diagnostic to w, oldest first, in
// the form "name:offset: Syntax error: message.", one per line. It returns
// the number of errors written.
func (a *Ast) ReportSyntaxErrors(w io.Writer) int {
	for _, e := range a.errs {
		fmt.Fprintf(w, "%s:%d: Syntax error: %s.\n", a.name, e.Off, e.Msg)
	}
	return len(a.errs)
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes *SyntaxError and leaves other
// errors untouched.
func WrapErrorWithSource(err error, src string) error {
	// Fall back to a name-less header (won't show "in <src>").
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a label (file name, "repl")
// included in the snippet header.
func WrapErrorWithName(err error, srcName string, src string) error {
	e, ok := err.(*SyntaxError)
	if !ok {
		return err
	}
	line, col := offsetToLineCol(src, e.Off)
	return fmt.Errorf("%s", prettyErrorStringLabeled(src, "SYNTAX ERROR", srcName, line, col, e.Msg))
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: recording & fatal
   =========================== */

// die aborts on a broken invariant. The panic carries *InternalError so the
// REPL driver can distinguish it from a programming panic; batch drivers let
// it terminate the process.
func die(format string, args ...any) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}

// addSyntaxError records one diagnostic at byte offset off and returns it.
// Parsing continues after every call.
func (a *Ast) addSyntaxError(off int, format string, args ...any) *SyntaxError {
	if off < 0 || off > len(a.src) {
		die("Creating error at invalid source loc %d", off)
	}
	e := &SyntaxError{Off: off, Msg: fmt.Sprintf(format, args...)}
	a.errs = append(a.errs, e)
	return e
}

/* ===========================
   PRIVATE: helpers & rendering
   =========================== */

// offsetToLineCol maps a byte offset to 1-based line/column coordinates,
// clamping out-of-range offsets to the buffer.
func offsetToLineCol(src string, off int) (int, int) {
	if off < 0 {
		off = 0
	}
	if off > len(src) {
		off = len(src)
	}
	line := 1 + strings.Count(src[:off], "\n")
	lastNL := strings.LastIndex(src[:off], "\n")
	if lastNL < 0 {
		return line, off + 1
	}
	return line, off - lastNL
}

// prettyErrorStringLabeled builds a Python-like snippet with a header and a
// caret. It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
