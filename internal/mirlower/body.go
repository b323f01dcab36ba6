package mirlower

import (
	"bodymir/internal/hir"
	"bodymir/internal/layout"
	"bodymir/internal/types"
)

// BasicBlock is an ordered sequence of Statements terminated by a
// Terminator, plus the cleanup flag spec.md §3 names (set for blocks only
// reachable while unwinding a Call's cleanup edge - this core never
// currently builds one, since adjustment/const-eval failure aborts
// lowering entirely rather than unwinding, but the field is part of the
// data model invariant 1 describes).
type BasicBlock struct {
	ID      BasicBlockID
	Stmts   []Statement
	Term    Terminator
	Cleanup bool
}

// Terminated reports whether the block has a terminator (spec.md
// invariant 1: every block the caller is handed back either is finished
// or is the caller's still-open "current" block).
func (b *BasicBlock) Terminated() bool { return b != nil && b.Term.Kind != TermNone }

// Local is one entry of the body's local arena: a type plus the source
// binding it came from, if any (0 for the return slot and for temporaries).
type Local struct {
	Type    types.TypeID
	Binding hir.BindingID
}

// Body is the output artifact: the MIR for one function (spec.md §3).
type Body struct {
	Def       hir.DefID
	ArgCount  int
	Start     BasicBlockID
	Blocks    []BasicBlock
	Locals    []Local
	BindingLocals map[hir.BindingID]LocalID
	Params    []LocalID

	Memory MemoryMap

	layout *layout.Engine
}

// NewBody allocates an empty Body: the return slot (local 0) and a single
// empty start block.
func NewBody(def hir.DefID, returnType types.TypeID, eng *layout.Engine) *Body {
	b := &Body{
		Def:           def,
		BindingLocals: make(map[hir.BindingID]LocalID),
		layout:        eng,
	}
	b.Locals = append(b.Locals, Local{Type: returnType})
	start := b.NewBasicBlock()
	b.Start = start
	return b
}

// NewBasicBlock allocates and returns a fresh, empty block id (spec.md §4.1).
func (b *Body) NewBasicBlock() BasicBlockID {
	id := BasicBlockID(len(b.Blocks))
	b.Blocks = append(b.Blocks, BasicBlock{ID: id})
	return id
}

// Block returns a pointer to the block for id, for in-place mutation.
func (b *Body) Block(id BasicBlockID) *BasicBlock { return &b.Blocks[id] }

// AllocLocal allocates a local of the given type with no source binding
// (a temporary or a bare parameter slot), returning its id.
func (b *Body) AllocLocal(ty types.TypeID) LocalID {
	id := LocalID(len(b.Locals))
	b.Locals = append(b.Locals, Local{Type: ty})
	return id
}

// BindLocal allocates a local for binding and records it in BindingLocals.
// spec.md invariant 3: BindingLocals must be injective - every call
// appends a new local with a fresh id, so this can never collide.
func (b *Body) BindLocal(binding hir.BindingID, ty types.TypeID) LocalID {
	id := LocalID(len(b.Locals))
	b.Locals = append(b.Locals, Local{Type: ty, Binding: binding})
	b.BindingLocals[binding] = id
	return id
}

// Temp allocates a fresh local for an intermediate value, rejecting unsized
// types per spec.md §3 ("Unsized temporaries ... are forbidden and cause
// an implementation error") and §4.1's `temp(ty)` contract.
func (b *Body) Temp(ty types.TypeID) (LocalID, error) {
	if b.layout != nil && b.layout.IsUnsized(ty) {
		return 0, &Error{Kind: ErrImplementationError, Msg: "cannot allocate an unsized temporary"}
	}
	return b.AllocLocal(ty), nil
}

// LocalType returns the declared type of a local.
func (b *Body) LocalType(id LocalID) types.TypeID { return b.Locals[id].Type }

// finalize sets Return on tail (if given and still open) and Unreachable
// on every other block the recursive descent left dangling with no
// terminator (spec.md invariant 1: "the final body contains no
// block with a None terminator; the finalizer sets Return or Unreachable
// on any stragglers").
func (b *Body) finalize(tail *BasicBlockID) {
	if tail != nil {
		blk := b.Block(*tail)
		if !blk.Terminated() {
			blk.Term = ReturnTerm()
		}
	}
	for i := range b.Blocks {
		if !b.Blocks[i].Terminated() {
			b.Blocks[i].Term = UnreachableTerm()
		}
	}
}
