// Package types provides the type interner shared by the infer, resolve,
// consteval, layout, and mirlower packages (hir refers to types only
// through its opaque TypeRef and does not import this package).
//
// Types are interned: structurally identical descriptors collapse onto the
// same TypeID, so TypeID equality is type equality. This mirrors the
// teacher's own types.Interner, completed here with the nominal-type kinds
// (struct, union, tuple, fn) its other files already assume but its
// standalone Kind/Type declarations never finished wiring up.
package types

import "fmt"

// TypeID uniquely identifies a type inside an Interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindNothing
	KindBool
	KindString
	KindInt
	KindUint
	KindFloat
	KindChar
	KindArray
	KindPointer
	KindReference
	KindStruct
	KindUnion
	KindTuple
	KindFn
	KindGenericConst
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindNothing:
		return "nothing"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindArray:
		return "array"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindTuple:
		return "tuple"
	case KindFn:
		return "fn"
	case KindGenericConst:
		return "const-param"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of a numeric primitive, WidthAny meaning
// the platform default ("int"/"uint").
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// ArrayDynamicLength marks an array type with no fixed compile-time length
// (a slice tail) - the one unsized shape this type system admits.
const ArrayDynamicLength = ^uint32(0)

// Type is a compact descriptor for any supported type. Nominal kinds
// (struct/union/tuple/fn) store their full descriptor out-of-line, indexed
// by Payload, inside the owning Interner.
type Type struct {
	Kind    Kind
	Elem    TypeID // array/pointer/reference element, fn result
	Count   uint32 // array length (ArrayDynamicLength for a slice)
	Width   Width  // numeric primitives
	Mutable bool   // references
	Payload uint32 // index into structs/unions/tuples/fns
}

// MakeInt describes a signed integer of the given width (WidthAny for "int").
func MakeInt(width Width) Type { return Type{Kind: KindInt, Width: width} }

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type { return Type{Kind: KindUint, Width: width} }

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type { return Type{Kind: KindFloat, Width: width} }

// MakeArray describes a fixed-length array; use ArrayDynamicLength for an
// open-ended slice.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakePointer describes a raw pointer *T.
func MakePointer(elem TypeID) Type { return Type{Kind: KindPointer, Elem: elem} }

// MakeReference describes &T or &mut T depending on mutable.
func MakeReference(elem TypeID, mutable bool) Type {
	return Type{Kind: KindReference, Elem: elem, Mutable: mutable}
}
