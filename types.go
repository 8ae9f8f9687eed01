// types.go — type inference over the postfix AST by unification.
//
// OVERVIEW
// --------
// Every AST slot gets exactly one type slot, so a TypeTree is a Type array
// parallel to the node array. A Type is a union-find cell:
//
//	master  index of an equivalent slot; a slot is the representative of
//	        its class when master is its own index
//	arg/ret component indices once the class is known to be a function
//	        type, noSlot while the type is still unconstrained
//
// masterise follows master links to the representative and eagerly rewrites
// every link on the path to point there directly, so chains stay one hop
// deep in practice.
//
// solve walks the postfix sequence once. A VAR or BOUND slot resolves
// through a 26-entry first-occurrence table shared by both kinds: the first
// slot carrying a given payload becomes the table entry, and every later
// slot with that payload starts as a copy of the entry's cell as it stands
// at that moment. A CALL slot forces its callee to be a function type whose
// argument is the argument subtree's root slot and whose result is the CALL
// slot itself; if the callee already has function shape the components are
// unified instead. LAMBDA slots and their name slots contribute no
// constraint of their own.
//
// unify merges two classes. An unconstrained representative absorbs a
// function-shaped one by taking over its cell; otherwise the second class
// is redirected into the first, and when both were function-shaped their
// argument and result components are unified recursively. Self-application
// produces cyclic classes ("x x" forces x's type to be a function taking
// itself); the printer is what has to cope with that, see printer.go.
//
// Dependencies
// ------------
//   - ast.go: Unpack, postfix ordering, maxToks
//   - errors.go: die
package lambda

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// TypeTree holds inferred types for every slot of one Ast's postfix
// sequence. Build one with BuildTypeTree; render with PrintTypes or
// TypeString (printer.go).
type TypeTree struct {
	postfix  []Node
	bindings [maxToks]int32
	types    []Type
}

// BuildTypeTree infers types for ast, which must have parsed without
// syntax errors and contain at least one node.
func BuildTypeTree(ast *Ast) *TypeTree {
	postfix := ast.Postfix()
	tt := &TypeTree{
		postfix: postfix,
		types:   make([]Type, len(postfix)),
	}
	for k := range tt.bindings {
		tt.bindings[k] = noSlot
	}
	for k := range tt.types {
		tt.types[k] = Type{master: int32(k), arg: noSlot, ret: noSlot}
	}

	tt.solve()
	return tt
}

// Size is the number of type slots, equal to the AST's node count.
func (tt *TypeTree) Size() int { return len(tt.types) }

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

// noSlot marks an absent component index. Slot 0 is a real slot, so the
// zero value of Type is not a valid cell; initialization must set every
// field.
const noSlot int32 = -1

type Type struct {
	master   int32
	arg, ret int32
}

// masterise returns the representative of idx's class, compressing every
// link on the path.
func (tt *TypeTree) masterise(idx int32) int32 {
	m := tt.types[idx].master
	if m == idx {
		return idx
	}
	m = tt.masterise(m)
	tt.types[idx].master = m
	return m
}

func (tt *TypeTree) unify(ia, ib int32) {
	if ia == ib {
		return
	}
	ia = tt.masterise(ia)
	ib = tt.masterise(ib)
	a, b := tt.types[ia], tt.types[ib]

	if a.arg == noSlot && b.arg != noSlot {
		// a is unconstrained and b has function shape: a takes over
		// b's cell and b collapses into a pure link.
		tt.types[ia] = b
		tt.types[ia].master = ia
		tt.types[ib] = Type{master: ia, arg: noSlot, ret: noSlot}
		return
	}

	tt.types[ib].master = ia

	if b.arg == noSlot {
		return
	}

	// Both sides turned out to be function types. Unify the components.
	tt.unify(a.arg, b.arg)
	tt.unify(a.ret, b.ret)
}

// coerceToFunType forces the callee class of the CALL at icall to be a
// function from the argument root's type to the CALL slot's own type.
func (tt *TypeTree) coerceToFunType(ifun, icall int32) {
	iarg := icall - 1
	iret := icall

	ifun = tt.masterise(ifun)
	fun := tt.types[ifun]
	if fun.arg != noSlot {
		// The target already has a fun-type, so leave it be.
		// But unify its children.
		tt.unify(fun.arg, iarg)
		tt.unify(fun.ret, icall)
		return
	}

	tt.types[ifun].arg = tt.masterise(iarg)
	tt.types[ifun].ret = tt.masterise(iret)
}

func (tt *TypeTree) solve() {
	for k := int32(0); k < int32(len(tt.postfix)); k++ {
		typ, val := Unpack(tt.postfix, uint32(k))
		switch typ {
		case VAR, BOUND:
			if val >= maxToks {
				die("Overbig token %d", val)
			}
			if b := tt.bindings[val]; b != noSlot {
				tt.types[k] = tt.types[b]
			} else {
				tt.bindings[val] = k
			}
		case CALL:
			tt.coerceToFunType(int32(val), k)
		}
	}
}
