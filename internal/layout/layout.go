// Package layout answers the one question §6 of the spec asks of a layout
// service: the size in bytes of a type in the owning crate. It is ported
// from the teacher's internal/layout package (cache.go/compute.go/target.go
// split preserved), narrowed to the single x86_64-linux-gnu target the
// teacher itself ships. mirlower holds an *Engine directly: it uses the
// Engine's type interner and IsUnsized, and does not call SizeOf (literal
// byte widths come from the type's Width).
package layout

import "bodymir/internal/types"

// Target describes the pointer width layout is computed for.
type Target struct {
	PtrSize  int
	PtrAlign int
}

// X86_64LinuxGNU is the only target this engine computes layouts for, same
// as the teacher's own Step-B scope comment on its target.go.
func X86_64LinuxGNU() Target {
	return Target{PtrSize: 8, PtrAlign: 8}
}

// Query is the size-of-type boundary, implemented here by Engine. The
// lowering context in mirlower does not go through Query; it takes a
// concrete *Engine.
type Query interface {
	SizeOf(id types.TypeID) (int, error)
	IsUnsized(id types.TypeID) bool
}

// Engine computes and caches TypeLayouts for a fixed Target.
type Engine struct {
	Target Target
	Types  *types.Interner

	cache map[types.TypeID]TypeLayout
}

// New builds an Engine bound to target and the given type interner.
func New(target Target, typesIn *types.Interner) *Engine {
	return &Engine{Target: target, Types: typesIn, cache: make(map[types.TypeID]TypeLayout)}
}

// TypeLayout is the ABI layout of a type for a specific Target.
type TypeLayout struct {
	Size  int
	Align int

	FieldOffsets []int
}

// LayoutOf returns (and caches) the layout of id, computing a recursion
// error when id's size depends on itself.
func (e *Engine) LayoutOf(id types.TypeID) (TypeLayout, error) {
	if e == nil {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	if cached, ok := e.cache[id]; ok {
		return cached, nil
	}
	tl, err := e.computeLayout(id, nil)
	if err != nil {
		return TypeLayout{}, err
	}
	e.cache[id] = tl
	return tl, nil
}

// SizeOf implements Query.
func (e *Engine) SizeOf(id types.TypeID) (int, error) {
	if e.Types != nil && e.Types.IsUnsized(id) {
		return 0, &Error{Kind: ErrUnsized, Type: id}
	}
	tl, err := e.LayoutOf(id)
	if err != nil {
		return 0, err
	}
	return tl.Size, nil
}

// IsUnsized implements Query.
func (e *Engine) IsUnsized(id types.TypeID) bool {
	return e.Types != nil && e.Types.IsUnsized(id)
}
