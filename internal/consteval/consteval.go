// Package consteval is the black-box constant-evaluation boundary spec.md
// §6 names: "invoke to produce a Const from a constant id and
// substitution". Constant evaluation itself is out of scope for the core.
package consteval

import (
	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// Value is the evaluated representation of a constant, already encoded to
// target bytes at its inferred type - exactly the payload mirlower's
// Const operand wraps.
type Value struct {
	Type  types.TypeID
	Bytes []byte
}

// Evaluator evaluates a constant item (optionally generic, hence the
// substitution) to a Value.
type Evaluator interface {
	Eval(constDef hir.DefID, subst []types.TypeID) (Value, error)
}
