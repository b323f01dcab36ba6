// Package hir is the upstream artifact the core consumes: a type-checked
// expression tree with its binding table. Body construction and type
// checking are out of scope for this repository (see spec.md §1); this
// package only carries the shapes mirlower's dispatch table names,
// trimmed from the teacher's own internal/hir package (which additionally
// carries borrow-checking, move-planning, and async-desugaring concerns
// this core never touches).
package hir

// ExprID identifies an expression node within a Func's expression arena.
type ExprID uint32

// NoExprID marks the absence of an expression (e.g. an omitted else branch).
const NoExprID ExprID = 0

// PatternID identifies a pattern node within a Func's pattern arena.
type PatternID uint32

// NoPatternID marks the absence of a pattern.
const NoPatternID PatternID = 0

// BindingID identifies a single name introduced by a pattern (a `let`
// binding, a function parameter, or a match-arm capture). Distinct
// occurrences of the same source name in different patterns get distinct
// BindingIDs - this is the identity mirlower.Body.BindingLocals is keyed on.
type BindingID uint32

// NoBindingID marks the absence of a binding.
const NoBindingID BindingID = 0

// DefID identifies a definition outside the current body: a function, a
// const item, an enum/struct type, or an enum variant constructor. Opaque
// to this core; only ever round-tripped to the resolver, const-evaluator,
// and lang-item table.
type DefID uint32

// NoDefID marks the absence of a definition reference.
const NoDefID DefID = 0
