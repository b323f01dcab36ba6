// Package mirlower is the body-to-MIR lowering core: given a type-checked
// function body (internal/hir.Func) plus the inference results, name
// resolver, constant evaluator, layout query, and lang-item table that
// annotate it, it produces a Body - a control-flow graph of basic blocks
// of three-address Statements terminated by a Terminator.
//
// The package is organized the way the teacher's internal/mir package is:
// one file per lowering concern (lower_expr_*.go-style split) around a
// shared data model (Body/BasicBlock/Local/Place/Operand/Rvalue/
// Terminator), all in a single package because the pattern-match compiler
// and the adjustment replayer both need to push statements into the same
// block-under-construction the rest of lowering uses.
package mirlower

// BasicBlockID identifies a basic block within a Body.
type BasicBlockID uint32

// NoBasicBlockID marks the absence of a block (used in Terminator fields
// that are conditionally populated, e.g. an unresolved switch default).
const NoBasicBlockID BasicBlockID = ^BasicBlockID(0)

// LocalID identifies a local within a Body. Local 0 is always the return
// slot (spec.md §3): "Local 0 is reserved for the return value".
type LocalID uint32

// ReturnSlot is the fixed id of the return-value local.
const ReturnSlot LocalID = 0
