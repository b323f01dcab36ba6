// Package infer is the type-inference query boundary spec.md §6 lists:
// "per-expression type, per-expression adjustments, per-expression variant
// resolution, method resolution, per-pattern type, for-loop iterator
// type". Type inference itself is out of scope for the core; this
// package only fixes the interface mirlower reads through.
package infer

import (
	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// MethodRef is a resolved method/UFCS call target: a function definition
// plus the concrete (possibly instantiated) function type to use for the
// zero-sized callee operand spec.md §4.4's Call/MethodCall rows describe.
type MethodRef struct {
	Def    hir.DefID
	FnType types.TypeID
}

// Result is the read-only inference output for one function body.
type Result interface {
	// HasTypeMismatch reports an inference-level contradiction that
	// precludes lowering (spec.md §4.8 step 1 fails fast on this).
	HasTypeMismatch() bool

	// ExprType returns the inferred type of expr.
	ExprType(expr hir.ExprID) (types.TypeID, bool)

	// Adjustments returns the ordered adjustment list attached to expr,
	// outermost-last, or nil if the expression carries none.
	Adjustments(expr hir.ExprID) []hir.Adjustment

	// MethodResolution returns the resolved method/UFCS target for a Call
	// or MethodCall expression, if the checker resolved one.
	MethodResolution(expr hir.ExprID) (MethodRef, bool)

	// PatternType returns the inferred type of a pattern (the scrutinee
	// type it is matched against).
	PatternType(pat hir.PatternID) (types.TypeID, bool)

	// ForIteratorType returns the type IntoIterator::into_iter produces
	// for a For expression's iterable.
	ForIteratorType(expr hir.ExprID) (types.TypeID, bool)

	// ForItemType returns the Item type Iterator::next yields for a For
	// expression (the payload type of the Option<Item> next() returns).
	ForItemType(expr hir.ExprID) (types.TypeID, bool)

	// BindingType returns the declared type of a binding introduced by a
	// pattern, used to allocate its local.
	BindingType(b hir.BindingID) (types.TypeID, bool)
}
