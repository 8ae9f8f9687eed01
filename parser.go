// parser.go — recursive-descent parser building the postfix AST in place.
//
// OVERVIEW
// --------
// The grammar is tiny and whitespace-insensitive:
//
//	varname       ::= single letter 'a'..'z'
//	digits        ::= single decimal digit (de Bruijn index; 0 is an error,
//	                  coerced to 1)
//	lambda        ::= '[' varname ']' non-call-expr
//	non-call-expr ::= varname | digits | '(' expr ')' | lambda
//	expr          ::= non-call-expr { non-call-expr }
//
// Application is left-associative and needs no lookahead: after the first
// non-call-expr, every further one becomes the argument of a CALL node whose
// arg_size is the distance (in slots) between the argument's root and the
// previously recorded function root. By the postfix invariant (ast.go) that
// distance is exactly the argument subtree size, and each new CALL becomes
// the function of the next iteration.
//
// Binding resolution happens during the same descent. The Ast carries a
// 26-entry map from name to "depth at which it was last bound" plus the
// current lexical depth; a bare varname with a live binding is emitted as
// BOUND(current - bound depth), otherwise as a free VAR. Entering a lambda
// bumps the depth and rebinds the name, saving the prior binding for
// restoration on exit. A lambda whose name failed to lex still parses; its
// binding goes to a throwaway slot and its trailing name slot carries the
// sentinel token -1.
//
// Error policy
// ------------
// Recoverable problems (multi-byte names, multi-digit numbers, unmatched
// '(', malformed lambda headers, missing bodies, missing expressions) are
// recorded on the Ast and parsing continues, so one run surfaces many
// errors. Two quirks: the expression skip-loop records
// "Expected expr" only while the error list is still empty, and a lambda
// that loses its body abandons the branch without restoring the binding
// depth. Leftover bytes after the program expression are a parser-contract
// violation and die.
//
// Dependencies
// ------------
//   - ast.go: node arena, push capacity, binding-depth fields
//   - lexer.go: eatWhite, lexVarname, lexInt
//   - errors.go: addSyntaxError, die
//   - spans.go: one Span recorded per pushed node
package lambda

import "math"

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse parses src into an Ast. name labels diagnostics ("input.lam:12: ...").
// Parse still succeeds in the presence of syntax errors; they are recorded on
// the result and can be reported with ReportSyntaxErrors. Callers that go on
// to type or unparse the Ast should check SyntaxErrors first: a program that
// failed to produce any nodes has no postfix sequence.
func Parse(name, src string) *Ast {
	a := newAst(name, src)

	end, ok := a.parseExpr(0)
	if ok && end < len(src) {
		left := src[end:]
		if len(left) > 10 {
			left = left[:10]
		}
		die("Unused bytes after program source: '%s...'", left)
	}
	return a
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

// ───────────────────────────── node emission ────────────────────────────────

func (a *Ast) pushVarname(token int32, sp Span) {
	if token+'a' > 'z' {
		die("Bad token %d.", token)
	}
	n := a.nodeAlloc(1)
	n[0] = Node{Type: VAR, Val: uint32(token)}
	a.pushSpan(sp)
	if DebuggingMode {
		dbg.Debug("pushed node", "idx", len(a.nodes)-1, "kind", "VAR", "token", token)
	}
}

func (a *Ast) pushBound(depth int32, sp Span) {
	if depth < 0 {
		die("Bad depth %d.", depth)
	}
	n := a.nodeAlloc(1)
	n[0] = Node{Type: BOUND, Val: uint32(depth)}
	a.pushSpan(sp)
	if DebuggingMode {
		dbg.Debug("pushed node", "idx", len(a.nodes)-1, "kind", "BOUND", "depth", depth)
	}
}

// pushVar classifies a bare varname occurrence: bound if the name has a live
// binder, free otherwise.
func (a *Ast) pushVar(token int32, sp Span) {
	if token+'a' > 'z' {
		die("Bad token %d.", token)
	}
	bdepth := a.bindingDepths[token]
	if bdepth != 0 {
		a.pushBound(int32(a.currentDepth-bdepth), sp)
		return
	}
	a.pushVarname(token, sp)
}

// ───────────────────────────────── grammar ──────────────────────────────────

// parseLambda parses '[' varname ']' non-call-expr starting at the '['.
// Returns the end position, or ok=false when the body is missing (the branch
// is abandoned; errors already recorded are preserved).
func (a *Ast) parseLambda(i0 int) (int, bool) {
	if a.src[i0] != '[' {
		die("bad call to %s.", a.src[i0:])
	}

	nameAt := eatWhite(a.src, i0+1)
	token, zE := a.lexVarname(nameAt)
	nameSpan := Span{StartByte: nameAt, EndByte: zE}

	zE = eatWhite(a.src, zE)
	if zE < len(a.src) && a.src[zE] == ']' {
		zE++
	} else {
		n := zE - i0
		if zE < len(a.src) {
			n++
		}
		a.addSyntaxError(i0, "Lambda '%s' doesn't end in ']'", a.src[i0:i0+n])
	}

	innerDepth := a.currentDepth + 1
	var sink uint32
	binding := &sink
	if token >= 0 {
		binding = &a.bindingDepths[token]
	}
	prevBound := *binding

	a.currentDepth = innerDepth
	*binding = innerDepth
	if DebuggingMode {
		dbg.Debug("bound token", "token", token, "depth", innerDepth)
	}

	zbody := eatWhite(a.src, zE)
	zE, ok := a.parseNonCallExpr(zbody)
	if !ok {
		a.addSyntaxError(zbody, "Expected lambda body")
		return 0, false
	}

	*binding = prevBound
	a.currentDepth = innerDepth - 1

	// Fixed 2-slot suffix after the body: the bound name, then the marker.
	a.pushVarname(token, nameSpan)
	lam := a.nodeAlloc(1)
	lam[0] = Node{Type: LAMBDA}
	a.pushSpan(Span{StartByte: i0, EndByte: zE})
	if DebuggingMode {
		dbg.Debug("pushed node", "idx", len(a.nodes)-1, "kind", "LAMBDA", "innerDepth", innerDepth)
	}
	return zE, true
}

// parseNonCallExpr parses one varname, de Bruijn index, parenthesized group,
// or lambda at i0. ok=false means nothing matched at i0 and nothing was
// consumed (though a failed group or lambda may have consumed input and
// recorded errors).
func (a *Ast) parseNonCallExpr(i0 int) (int, bool) {
	token, zE := a.lexVarname(i0)
	if token >= 0 {
		a.pushVar(token, Span{StartByte: i0, EndByte: zE})
		return zE, true
	}
	token, zE = a.lexInt(i0)
	if token >= 0 {
		if token == 0 {
			a.addSyntaxError(i0, "0 is an invalid debrujin index")
			token++
		}
		// Source indices are 1-based, stored distances 0-based.
		a.pushBound(token-1, Span{StartByte: i0, EndByte: zE})
		return zE, true
	}

	if i0 >= len(a.src) {
		return 0, false
	}
	switch a.src[i0] {
	case '(':
		zE, ok := a.parseExpr(i0 + 1)
		if !ok || zE >= len(a.src) || a.src[zE] != ')' {
			a.addSyntaxError(i0, "Unmatched '('")
			return zE, ok
		}
		// The group pushes no node of its own; widen its root to the parens.
		a.spans[a.root()] = Span{StartByte: i0, EndByte: zE + 1}
		return zE + 1, true
	case '[':
		return a.parseLambda(i0)
	}
	return 0, false
}

// parseExpr parses a left-associative application chain. The leading loop
// skips past malformed input one byte at a time, recording at most one
// "Expected expr" so garbage does not flood the error list.
func (a *Ast) parseExpr(i0 int) (int, bool) {
	i1 := eatWhite(a.src, i0)
	z, ok := a.parseNonCallExpr(i1)
	for !ok {
		if len(a.errs) == 0 {
			a.addSyntaxError(i0, "Expected expr")
		}
		if i1 >= len(a.src) {
			return 0, false
		}
		i1 = eatWhite(a.src, i1+1)
		z, ok = a.parseNonCallExpr(i1)
	}

	for {
		fn := a.root()
		z = eatWhite(a.src, z)
		z1, ok := a.parseNonCallExpr(z)
		argSize := a.root() - fn
		if !ok {
			return z, true
		}
		if argSize > math.MaxInt32 {
			die("Huge arg parsed %d nodes, why no ENOMEM?", argSize)
		}
		z = z1

		argRoot := fn + argSize
		call := a.nodeAlloc(1)
		call[0] = Node{Type: CALL, Val: argSize}
		a.pushSpan(Span{StartByte: a.spans[fn].StartByte, EndByte: a.spans[argRoot].EndByte})
		if DebuggingMode {
			dbg.Debug("pushed node", "idx", len(a.nodes)-1, "kind", "CALL", "argSize", argSize)
		}
	}
}
