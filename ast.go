// ast.go — flat, postfix-ordered AST store for lambda terms
//
// OVERVIEW
// --------
// The AST is not a pointer tree. It is a single flat arena of small tagged
// nodes stored in post-order: every subtree occupies a contiguous range of
// slots and its root is the LAST slot of that range. Child locations are
// recomputed from arithmetic on the one scalar a node carries, so no parent
// or child references are stored anywhere:
//
//	CALL at index i, carrying the argument subtree size s:
//	    argument root  = i - 1
//	    argument range = [i-s, i-1]
//	    callee root    = i - s - 1
//
//	LAMBDA at index i:
//	    body root      = i - 2
//	    bound-name VAR = i - 1   (trailing slot pushed just before the marker)
//
// The arena is append-only and its capacity is fixed when the Ast is created
// (sized from the source length plus slack). Exceeding it is a parser bug,
// not a recoverable condition, and dies.
//
// Node payloads by tag:
//
//	VAR    token of a free variable ('a'..'z' → 0..25)
//	CALL   size in slots of the argument subtree
//	BOUND  de Bruijn distance to the binding lambda (0 = innermost)
//	LAMBDA (payload unused)
//
// Alongside the nodes the Ast carries a span sidecar (spans.go), the
// accumulated syntax errors (errors.go), and the transient binding
// environment the parser threads through lambda scopes (parser.go).
package lambda

// NodeType tags a Node with exactly one variant. The zero value is invalid:
// arena slots are zeroed on allocation and decoding one that was never
// written dies.
type NodeType uint32

const (
	VAR NodeType = iota + 1
	CALL
	BOUND
	LAMBDA
)

// Node is one AST slot. Val holds the tag-dependent payload described in the
// file header.
type Node struct {
	Type NodeType
	Val  uint32
}

// Unpack decodes the node at idx and returns its tag plus the derived value:
// the callee root index for CALL, the body root index for LAMBDA, and the raw
// payload (token, distance) for VAR and BOUND. A bad tag is fatal.
func Unpack(nodes []Node, idx uint32) (NodeType, uint32) {
	n := nodes[idx]
	switch n.Type {
	case CALL:
		return CALL, idx - n.Val - 1
	case VAR:
		return VAR, n.Val
	case BOUND:
		return BOUND, n.Val
	case LAMBDA:
		return LAMBDA, idx - 2
	}
	die("Unpacking Ast node %d with bad type id %d", idx, n.Type)
	return 0, 0
}

// ArgIdx returns the argument root index of the CALL node at callIdx.
func ArgIdx(callIdx uint32) uint32 { return callIdx - 1 }

// Ast owns the node arena and everything produced while parsing one source
// buffer: the span sidecar, the syntax-error list, and the binding-depth
// bookkeeping. It is never mutated once parsing completes.
type Ast struct {
	name string
	src  string

	errs  []*SyntaxError
	nodes []Node
	spans []Span

	currentDepth  uint32
	bindingDepths [maxToks]uint32
}

// maxToks is the size of the variable alphabet: single letters 'a'..'z'.
const maxToks = 26

// newAst reserves the arena. The capacity bound is the source length plus a
// little slack: the parser pushes at most one node per consumed byte, plus
// the fixed lambda suffix slots.
func newAst(name, src string) *Ast {
	n := len(src) + 8
	return &Ast{
		name:  name,
		src:   src,
		nodes: make([]Node, 0, n),
		spans: make([]Span, 0, n),
	}
}

// nodeAlloc reserves n contiguous fresh slots at the end of the arena and
// returns them, zeroed.
func (a *Ast) nodeAlloc(n int) []Node {
	u := len(a.nodes)
	nu := u + n
	if nu > cap(a.nodes) {
		die("BUG: %s is using %d Ast nodes, only %d are alloced", a.name, nu, cap(a.nodes))
	}
	a.nodes = a.nodes[:nu]
	return a.nodes[u:nu]
}

// Postfix returns all the nodes in post-order. The Ast retains ownership;
// callers must not mutate the slice.
func (a *Ast) Postfix() []Node {
	if len(a.nodes) == 0 {
		die("An empty AST is postfix.")
	}
	return a.nodes
}

func (a *Ast) root() uint32 {
	if len(a.nodes) == 0 {
		die("Empty AST has no root")
	}
	return uint32(len(a.nodes) - 1)
}

// Name returns the diagnostic name the Ast was parsed under.
func (a *Ast) Name() string { return a.name }

// Source returns the exact text buffer that was parsed (including any
// wrapping the driver applied before calling Parse).
func (a *Ast) Source() string { return a.src }
