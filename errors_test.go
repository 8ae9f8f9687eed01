package lambda

import (
	"bytes"
	"strings"
	"testing"
)

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", sub, s)
	}
}

func Test_SyntaxError_ErrorMentionsByteOffset(t *testing.T) {
	e := &SyntaxError{Off: 7, Msg: "Unmatched '('"}
	got := e.Error()
	want := "Syntax error at byte 7: Unmatched '('."
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func Test_InternalError_ErrorIsTheMessage(t *testing.T) {
	e := &InternalError{Msg: "BUG: something broke"}
	if got := e.Error(); got != e.Msg {
		t.Fatalf("Error() = %q, want %q", got, e.Msg)
	}
}

func Test_ReportSyntaxErrors_OneLinePerErrorInOrder(t *testing.T) {
	// Both groups stay open, so the inner '(' errors first (offset 1),
	// then the outer one (offset 0).
	ast := Parse("prog", "((x")

	var buf bytes.Buffer
	n := ast.ReportSyntaxErrors(&buf)
	if n != 2 {
		t.Fatalf("ReportSyntaxErrors returned %d, want 2", n)
	}
	want := "prog:1: Syntax error: Unmatched '('.\n" +
		"prog:0: Syntax error: Unmatched '('.\n"
	if got := buf.String(); got != want {
		t.Fatalf("report = %q, want %q", got, want)
	}
}

func Test_ReportSyntaxErrors_CleanParseWritesNothing(t *testing.T) {
	ast := Parse("prog", "x y")

	var buf bytes.Buffer
	if n := ast.ReportSyntaxErrors(&buf); n != 0 {
		t.Fatalf("ReportSyntaxErrors returned %d, want 0", n)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func Test_ErrorWrap_RendersHeaderGutterAndCaret(t *testing.T) {
	// Error on line 2, column 1; lines 1 and 3 provide context.
	src := "x y\n(a b\nz w"
	e := &SyntaxError{Off: 4, Msg: "Unmatched '('"}

	got := WrapErrorWithName(e, "input.lam", src).Error()
	want := "SYNTAX ERROR in input.lam at 2:1: Unmatched '('\n" +
		"\n" +
		"   1 | x y\n" +
		"   2 | (a b\n" +
		"     | ^\n" +
		"   3 | z w\n"
	if got != want {
		t.Fatalf("wrapped error = %q, want %q", got, want)
	}
}

func Test_ErrorWrap_CaretTracksColumn(t *testing.T) {
	src := "a (b (c"
	ast := Parse("probe", src)
	errs := ast.SyntaxErrors()
	if len(errs) == 0 {
		t.Fatalf("expected syntax errors, got none")
	}

	// The innermost group errors first, at byte 5 = column 6.
	msg := WrapErrorWithName(errs[0], "probe", src).Error()
	mustContain(t, msg, "SYNTAX ERROR in probe at 1:6: Unmatched '('")
	mustContain(t, msg, "   1 | a (b (c")
	mustContain(t, msg, "     |      ^")
}

func Test_ErrorWrap_NoName_OmitsInClause(t *testing.T) {
	e := &SyntaxError{Off: 0, Msg: "Expected expr"}
	msg := WrapErrorWithSource(e, ")").Error()
	if !strings.HasPrefix(msg, "SYNTAX ERROR at 1:1: Expected expr") {
		t.Fatalf("unexpected header:\n%s", msg)
	}
}

func Test_ErrorWrap_NonSyntaxError_Passthrough(t *testing.T) {
	base := &InternalError{Msg: "boom"}
	if got := WrapErrorWithSource(base, "x"); got != base {
		t.Fatalf("expected the same error back, got %v", got)
	}
}

func Test_OffsetToLineCol_MapsAndClamps(t *testing.T) {
	src := "ab\ncd\nef"
	cases := []struct {
		off       int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // points at the newline itself
		{3, 2, 1}, // first byte of line 2
		{4, 2, 2},
		{6, 3, 1},
		{8, 3, 3},  // one past the end of the buffer
		{99, 3, 3}, // clamped down
		{-5, 1, 1}, // clamped up
	}
	for _, c := range cases {
		line, col := offsetToLineCol(src, c.off)
		if line != c.line || col != c.col {
			t.Fatalf("offsetToLineCol(%d) = %d:%d, want %d:%d",
				c.off, line, col, c.line, c.col)
		}
	}
}

func Test_Die_PanicsWithInternalError(t *testing.T) {
	wantDie(t, "kaboom 42", func() {
		die("kaboom %d", 42)
	})
}

func Test_AddSyntaxError_OffsetBounds(t *testing.T) {
	ast := Parse("t", "x")

	// One past the last byte is still a legal error position (end of input).
	ast.addSyntaxError(1, "at the very end")
	if ne := len(ast.SyntaxErrors()); ne != 1 {
		t.Fatalf("got %d errors, want 1", ne)
	}

	wantDie(t, "invalid source loc 5", func() {
		ast.addSyntaxError(5, "past the end")
	})
	wantDie(t, "invalid source loc -1", func() {
		ast.addSyntaxError(-1, "before the start")
	})
}
