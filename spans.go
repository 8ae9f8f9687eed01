// spans.go — per-node source spans for the postfix AST
//
// WHAT THIS MODULE DOES
// =====================
// This module associates **source-code byte spans** with nodes of a parsed
// Ast without touching the node encoding itself. Spans are modeled as
// half-open byte intervals `[StartByte, EndByte)` relative to the parsed
// buffer. Line/column coordinates are intentionally omitted to keep the
// structure minimal; callers derive them on demand from the source text
// (errors.go does exactly that for caret snippets).
//
// HOW SPANS ARE ASSOCIATED TO NODES
// =================================
// Because the AST is already a flat post-order arena, no structural
// addressing is needed: the sidecar is a plain slice with one Span per node,
// appended by the parser in the same order the nodes themselves are pushed.
// `a.Span(i)` is the span of `a.Postfix()[i]`.
//
// Leaf nodes cover their token (including a malformed multi-byte run that
// was consumed as one token). Composite nodes cover their full source
// extent: a CALL spans from the start of its callee to the end of its
// argument, a LAMBDA from its `[` to the end of its body, and the root of a
// parenthesized group is widened to include the brackets.
//
// The sidecar is read-only after parsing and safe to share for concurrent
// reads.
package lambda

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Span represents a half-open byte interval [StartByte, EndByte) in the
// parsed source text. EndByte is exclusive.
type Span struct {
	StartByte int // inclusive
	EndByte   int // exclusive
}

// Span returns the source span of the node at index i. It panics (slice
// bounds) if i is out of range, like any other bad node index.
func (a *Ast) Span(i uint32) Span { return a.spans[i] }

// Spans returns the whole sidecar, one Span per node in post-order. The Ast
// retains ownership; callers must not mutate the slice.
func (a *Ast) Spans() []Span { return a.spans }

// Text returns the source text covered by the node at index i, clamped to
// the buffer bounds.
func (a *Ast) Text(i uint32) string {
	sp := a.spans[i]
	sb, eb := sp.StartByte, sp.EndByte
	if sb < 0 {
		sb = 0
	}
	if sb > len(a.src) {
		sb = len(a.src)
	}
	if eb < sb {
		eb = sb
	}
	if eb > len(a.src) {
		eb = len(a.src)
	}
	return a.src[sb:eb]
}

//// END_OF_PUBLIC

// pushSpan appends the span of the node the parser just pushed. Kept next to
// the Span accessors so the lockstep invariant (len(spans) == len(nodes)) has
// one home.
func (a *Ast) pushSpan(sp Span) { a.spans = append(a.spans, sp) }
