package mirlower

import "bodymir/internal/types"

// MemoryMap is the side-channel byte arena spec.md §4.3 requires for
// string/byte-string constants: "an 8-byte offset ... accompanied by a
// side-channel MemoryMap carrying the raw bytes at that offset". Grounded
// on the teacher's staticStringGlobals/staticStringInits side-tables in
// internal/mir/lower.go, which solve the identical "hoist these bytes out
// of the instruction stream" problem for the teacher's string globals.
type MemoryMap struct {
	bytes []byte
}

// Put appends data to the arena and returns its offset.
func (m *MemoryMap) Put(data []byte) uint64 {
	off := uint64(len(m.bytes))
	m.bytes = append(m.bytes, data...)
	return off
}

// Bytes returns the full backing arena.
func (m *MemoryMap) Bytes() []byte { return m.bytes }

// OperandKind distinguishes the three Operand shapes of spec.md §3.
type OperandKind uint8

const (
	OperandCopy OperandKind = iota
	OperandConstant
	OperandImmediate
)

// Operand is a value source: a copy of a place, a named constant, or an
// immediate byte vector (spec.md §3).
type Operand struct {
	Kind OperandKind

	Place    Place  // OperandCopy
	Constant Const  // OperandConstant
	Bytes    []byte // OperandImmediate
	Type     types.TypeID
}

// CopyOf builds a Copy(place) operand.
func CopyOf(place Place, ty types.TypeID) Operand {
	return Operand{Kind: OperandCopy, Place: place, Type: ty}
}

// Imm builds an immediate byte-vector operand; an empty byte slice gives a
// zero-sized immediate. Function items are not encoded this way: path
// lowering and emitCall build them as ConstFn constants carrying the DefID.
func Imm(bytes []byte, ty types.TypeID) Operand {
	return Operand{Kind: OperandImmediate, Bytes: bytes, Type: ty}
}

// ConstOperand builds a Constant(c) operand.
func ConstOperand(c Const) Operand {
	return Operand{Kind: OperandConstant, Constant: c, Type: c.Type}
}

// ConstKind distinguishes the const-eval-backed constant shapes.
type ConstKind uint8

const (
	ConstValue ConstKind = iota // an evaluated byte blob
	ConstFn                     // a zero-sized function-item reference
)

// Const is an evaluated named constant (spec.md §4.3's "assigning the
// resulting Const to the destination").
type Const struct {
	Kind  ConstKind
	Type  types.TypeID
	Bytes []byte // ConstValue
	Def   uint32 // ConstFn: the function DefID
}
