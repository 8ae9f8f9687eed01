// printer.go — renders inferred types and the canonical program form.
//
// OVERVIEW
// --------
// Type names are deterministic and need no symbol table. The name of slot
// idx comes from walking callee links: while the slot is a CALL, hop to its
// callee and count an 'r'. The landing slot's unpack payload picks the
// letter ('A' plus the payload, truncated to a byte) and the hop count
// appends that many 'r's, so the callee of "(x y)" prints as X and the
// call's own result slot prints as Xr.
//
// Structured types print as name or name=(arg ret), recursively. Classes
// can be cyclic (see types.go), so the printer carries a small stack of the
// representatives it is currently expanding; meeting one again prints just
// the name, which is how the recursive type of "x x" stays finite on the
// page. The stack is capacity-checked: types nested deeper than it can
// track are a hard stop, not a silent truncation.
//
// Unparse is the inverse of parsing, up to canonical form: applications are
// fully parenthesized, bound variables print as 1-based de Bruijn indices,
// and lambdas print their bound name. Re-parsing an unparse yields the
// same postfix sequence.
package lambda

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// PrintTypes infers types for ast and writes one line per AST slot, in
// postfix order, to w. ast must have parsed without syntax errors.
func PrintTypes(w io.Writer, ast *Ast) error {
	tt := BuildTypeTree(ast)
	out := bufio.NewWriter(w)
	for k := 0; k < tt.Size(); k++ {
		p := typePrinter{out: out, exprs: tt.postfix, tt: tt}
		p.print(int32(k))
		out.WriteByte('\n')
	}
	return out.Flush()
}

// TypeString renders the type of one slot.
func (tt *TypeTree) TypeString(idx int) string {
	var sb strings.Builder
	p := typePrinter{out: &sb, exprs: tt.postfix, tt: tt}
	p.print(int32(idx))
	return sb.String()
}

// Unparse writes the canonical form of ast's program expression to w,
// followed by a newline. ast must have parsed without syntax errors.
func Unparse(w io.Writer, ast *Ast) error {
	out := bufio.NewWriter(w)
	unparseExpr(out, ast.Postfix(), ast.root())
	out.WriteByte('\n')
	return out.Flush()
}

// UnparseString is Unparse into a string, without the trailing newline.
func UnparseString(ast *Ast) string {
	var sb strings.Builder
	unparseExpr(&sb, ast.Postfix(), ast.root())
	return sb.String()
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

// typeSink is the writer surface the printers need; both *bufio.Writer and
// *strings.Builder satisfy it. Write errors are left to the caller's final
// Flush, Builder writes cannot fail.
type typeSink interface {
	io.ByteWriter
	io.StringWriter
}

/* ---------- type names ---------- */

func printTypename(out typeSink, exprs []Node, idx int32) {
	k := 0
	val := uint32(idx)
	for {
		typ, v := Unpack(exprs, val)
		val = v
		if typ != CALL {
			break
		}
		k++
	}

	out.WriteByte(byte(val) + 'A')
	for ; k > 0; k-- {
		out.WriteByte('r')
	}
}

/* ---------- structured types ---------- */

// maxPrintDepth bounds how many classes the printer can be expanding at
// once. Expansion stops at a repeated class anyway, so only a genuinely
// deep non-cyclic type can hit the cap.
const maxPrintDepth = 16

type typePrinter struct {
	out   typeSink
	exprs []Node
	tt    *TypeTree
	depth int
	stack [maxPrintDepth]int32
}

// push records that idx is being expanded. Returns false if idx is already
// on the stack, which means the type refers back to itself.
func (p *typePrinter) push(idx int32) bool {
	if slices.Contains(p.stack[:p.depth], idx) {
		return false
	}
	if p.depth == maxPrintDepth {
		die("Type structure deeper than %d levels", maxPrintDepth)
	}
	p.stack[p.depth] = idx
	p.depth++
	return true
}

func (p *typePrinter) pop() {
	if p.depth == 0 {
		die("BUG: type printer stack underflow")
	}
	p.depth--
}

func (p *typePrinter) print(idx int32) {
	idx = p.tt.masterise(idx)
	printTypename(p.out, p.exprs, idx)

	ty := p.tt.types[idx]
	if ty.arg == noSlot {
		// If it's not a function there is no structure to expand.
		return
	}

	if !p.push(idx) {
		// Push failure means we have found recursion.
		return
	}

	p.out.WriteString("=(")
	p.print(ty.arg)
	p.out.WriteByte(' ')
	p.print(ty.ret)
	p.out.WriteByte(')')
	p.pop()
}

/* ---------- canonical program form ---------- */

func unparseExpr(out typeSink, exprs []Node, idx uint32) {
	typ, val := Unpack(exprs, idx)
	switch typ {
	case VAR:
		out.WriteByte('a' + byte(val))
	case BOUND:
		// Stored distances are 0-based, source indices 1-based.
		out.WriteString(strconv.FormatUint(uint64(val)+1, 10))
	case CALL:
		out.WriteByte('(')
		unparseExpr(out, exprs, val)
		out.WriteByte(' ')
		unparseExpr(out, exprs, ArgIdx(idx))
		out.WriteByte(')')
	case LAMBDA:
		_, nameTok := Unpack(exprs, idx-1)
		out.WriteByte('[')
		out.WriteByte('a' + byte(nameTok))
		out.WriteString("] ")
		unparseExpr(out, exprs, val)
	}
}
