package lambda

import "testing"

func assertText(t *testing.T, ast *Ast, i uint32, want string) {
	t.Helper()
	if got := ast.Text(i); got != want {
		t.Fatalf("Text(%d) = %q, want %q (span %+v)", i, got, want, ast.Span(i))
	}
}

func Test_Spans_LeavesCoverTheirTokens(t *testing.T) {
	// Postfix: x, y, CALL, 2, CALL.
	ast := mustParse(t, "x y 2")

	assertText(t, ast, 0, "x")
	assertText(t, ast, 1, "y")
	assertText(t, ast, 3, "2")
}

func Test_Spans_CallCoversCalleeThroughArg(t *testing.T) {
	// Postfix: x, y, CALL, z, CALL.
	ast := mustParse(t, "x y z")

	assertText(t, ast, 2, "x y")
	assertText(t, ast, 4, "x y z")
}

func Test_Spans_GroupIncludesParens(t *testing.T) {
	// Postfix: x, y, z, CALL, CALL. The inner call is the group root.
	ast := mustParse(t, "x (y z)")
	assertText(t, ast, 3, "(y z)")
	assertText(t, ast, 4, "x (y z)")

	// Postfix: x, y, CALL, z, CALL. Here the group is the callee side.
	ast = mustParse(t, "(x y) z")
	assertText(t, ast, 2, "(x y)")
	assertText(t, ast, 4, "(x y) z")
}

func Test_Spans_LambdaCoversHeaderAndBody(t *testing.T) {
	// Postfix: BOUND, name slot, LAMBDA.
	ast := mustParse(t, "[x] x")

	cases := []struct {
		idx  uint32
		want Span
	}{
		{0, Span{StartByte: 4, EndByte: 5}}, // body occurrence of x
		{1, Span{StartByte: 1, EndByte: 2}}, // name slot points at the header's x
		{2, Span{StartByte: 0, EndByte: 5}}, // the whole lambda
	}
	for _, c := range cases {
		if got := ast.Span(c.idx); got != c.want {
			t.Fatalf("Span(%d) = %+v, want %+v", c.idx, got, c.want)
		}
	}
	assertText(t, ast, 2, "[x] x")
}

func Test_Spans_LambdaWithGroupBody(t *testing.T) {
	// Postfix: BOUND, BOUND, CALL, name slot, LAMBDA.
	ast := mustParse(t, "[f] (f f)")

	assertText(t, ast, 2, "(f f)")
	assertText(t, ast, 4, "[f] (f f)")
}

func Test_Spans_MalformedRunIsOneLeaf(t *testing.T) {
	// The whole run lexes as one (errored) token; its node spans the run.
	ast := Parse("test", "xy z")
	if ne := len(ast.SyntaxErrors()); ne != 1 {
		t.Fatalf("got %d syntax errors, want 1", ne)
	}

	assertText(t, ast, 0, "xy")
	assertText(t, ast, 2, "xy z")
}

func Test_Spans_SidecarMatchesNodeCount(t *testing.T) {
	for _, src := range []string{"x", "x y z", "x (y z)", "[x] x", "[f] (f ([g] g)) q"} {
		ast := mustParse(t, src)
		nodes, spans := ast.Postfix(), ast.Spans()
		if len(spans) != len(nodes) {
			t.Fatalf("%q: %d spans for %d nodes", src, len(spans), len(nodes))
		}
		for i := range spans {
			if ast.Span(uint32(i)) != spans[i] {
				t.Fatalf("%q: Span(%d) disagrees with Spans()[%d]", src, i, i)
			}
		}
	}
}

func Test_Spans_TextClampsOutOfRange(t *testing.T) {
	ast := mustParse(t, "x")

	ast.spans[0] = Span{StartByte: -3, EndByte: 99}
	assertText(t, ast, 0, "x")

	ast.spans[0] = Span{StartByte: 5, EndByte: 7}
	assertText(t, ast, 0, "")
}
