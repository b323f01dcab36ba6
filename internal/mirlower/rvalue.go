package mirlower

import (
	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// BorrowKind distinguishes the reference/pointer shapes a Ref rvalue can
// produce.
type BorrowKind uint8

const (
	BorrowShared BorrowKind = iota
	BorrowMut
	BorrowRawConst
	BorrowRawMut
)

// CastKind classifies a Cast rvalue by its (source, target) type pair,
// per spec.md §4.4's Cast dispatch row.
type CastKind uint8

const (
	CastIntToInt CastKind = iota
	CastIntToFloat
	CastFloatToInt
	CastFloatToFloat
	CastScalarToPointer
	CastPointerToScalar
	CastPointerToPointer
	CastScalarToEnum
)

// AggregateKind distinguishes the three Aggregate rvalue shapes.
type AggregateKind uint8

const (
	AggregateAdt AggregateKind = iota // struct or tagged-union variant
	AggregateTuple
	AggregateArray
)

// RvalueKind distinguishes the six Rvalue shapes spec.md §3 names.
type RvalueKind uint8

const (
	RvalueUse RvalueKind = iota
	RvalueRef
	RvalueCast
	RvalueCheckedBinaryOp
	RvalueUnaryOp
	RvalueAggregate
)

// Rvalue is the right-hand side of an assignment statement (spec.md §3).
type Rvalue struct {
	Kind RvalueKind

	// RvalueUse
	Use Operand

	// RvalueRef
	Borrow     BorrowKind
	BorrowFrom Place

	// RvalueCast
	Cast       CastKind
	CastOf     Operand
	CastTarget types.TypeID

	// RvalueCheckedBinaryOp
	BinOp hir.BinOp
	Left  Operand
	Right Operand

	// RvalueUnaryOp
	UnOp    hir.UnOp
	Operand Operand

	// RvalueAggregate
	Aggregate AggregateKind
	// AggType is the struct/union/tuple/array type being constructed; for
	// AggregateAdt the variant name (if any) identifies the tagged-union
	// variant, empty for a plain struct.
	AggType   types.TypeID
	Variant   string
	AggOperands []Operand
}

// Use builds a Use(operand) rvalue.
func Use(op Operand) Rvalue { return Rvalue{Kind: RvalueUse, Use: op} }

// Ref builds a Ref(kind, place) rvalue.
func Ref(kind BorrowKind, place Place) Rvalue {
	return Rvalue{Kind: RvalueRef, Borrow: kind, BorrowFrom: place}
}

// CastTo builds a Cast(kind, operand, target) rvalue.
func CastTo(kind CastKind, of Operand, target types.TypeID) Rvalue {
	return Rvalue{Kind: RvalueCast, Cast: kind, CastOf: of, CastTarget: target}
}

// BinaryOp builds a CheckedBinaryOp(op, left, right) rvalue.
func BinaryOp(op hir.BinOp, left, right Operand) Rvalue {
	return Rvalue{Kind: RvalueCheckedBinaryOp, BinOp: op, Left: left, Right: right}
}

// UnaryOp builds a UnaryOp(op, operand) rvalue.
func UnaryOp(op hir.UnOp, operand Operand) Rvalue {
	return Rvalue{Kind: RvalueUnaryOp, UnOp: op, Operand: operand}
}

// AggregateOf builds an Aggregate(kind, ops) rvalue.
func AggregateOf(kind AggregateKind, ty types.TypeID, variant string, ops []Operand) Rvalue {
	return Rvalue{Kind: RvalueAggregate, Aggregate: kind, AggType: ty, Variant: variant, AggOperands: ops}
}
