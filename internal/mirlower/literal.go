package mirlower

import (
	"encoding/binary"
	"math"

	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// encodeLiteral turns a literal's in-tree value into the target machine's
// byte representation, per spec.md §4.3: "little-endian two's complement
// for integers, IEEE-754 for floats, a 4-byte little-endian code point for
// char, a single byte for bool". String/byte-string literals don't encode
// inline - lowerLiteralOperand below routes them through the MemoryMap instead.
func (l *Lowerer) encodeLiteral(lit hir.LiteralExpr, ty types.TypeID) ([]byte, error) {
	tt, ok := l.layout.Types.Lookup(ty)
	if !ok {
		return nil, implementationError("encodeLiteral: invalid type")
	}
	width := types.SizeHintWidth(tt.Width)

	switch lit.Kind {
	case hir.LiteralInt:
		return encodeSigned(lit.Int, width), nil
	case hir.LiteralUint:
		return encodeUnsigned(lit.Uint, width), nil
	case hir.LiteralFloat:
		if width == 32 {
			buf := make([]byte, 4)
			binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(lit.Float)))
			return buf, nil
		}
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, math.Float64bits(lit.Float))
		return buf, nil
	case hir.LiteralBool:
		if lit.Bool {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case hir.LiteralChar:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(lit.Char))
		return buf, nil
	default:
		return nil, implementationError("encodeLiteral: not a scalar literal kind")
	}
}

func encodeSigned(v int64, width int) []byte {
	switch width {
	case 8:
		return []byte{byte(int8(v))}
	case 16:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(int16(v)))
		return buf
	case 32:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(int32(v)))
		return buf
	default:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(v))
		return buf
	}
}

func encodeUnsigned(v uint64, width int) []byte {
	switch width {
	case 8:
		return []byte{byte(v)}
	case 16:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(v))
		return buf
	case 32:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v))
		return buf
	default:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, v)
		return buf
	}
}

// fatPointer encodes an (offset, length) pair as a 16-byte little-endian
// immediate - the representation a string or byte-string operand carries
// inline, with its bytes living in Body.Memory (the caller puts them there).
func fatPointer(offset, length uint64) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[0:8], offset)
	binary.LittleEndian.PutUint64(buf[8:16], length)
	return buf
}

// lowerLiteralOperand builds the Operand for a literal expression in
// operand position (spec.md §4.4's Literal row of lower_expr_to_some_operand).
func (l *Lowerer) lowerLiteralOperand(lit hir.LiteralExpr, ty types.TypeID) (Operand, error) {
	switch lit.Kind {
	case hir.LiteralString:
		off := l.body.Memory.Put([]byte(lit.String))
		return Imm(fatPointer(off, uint64(len(lit.String))), ty), nil
	case hir.LiteralByteString:
		off := l.body.Memory.Put(lit.Bytes)
		return Imm(fatPointer(off, uint64(len(lit.Bytes))), ty), nil
	default:
		bytes, err := l.encodeLiteral(lit, ty)
		if err != nil {
			return Operand{}, err
		}
		return Imm(bytes, ty), nil
	}
}

// lowerConstOperand builds the Operand for a name resolved to a named
// constant (spec.md §4.3: "evaluates it via the Evaluator seam ... assigning
// the resulting Const to the destination").
func (l *Lowerer) lowerConstOperand(def hir.DefID, ty types.TypeID) (Operand, error) {
	val, err := l.consts.Eval(def, nil)
	if err != nil {
		return Operand{}, &Error{Kind: ErrConstEvalError, Wrapped: err}
	}
	return ConstOperand(Const{Kind: ConstValue, Type: ty, Bytes: val.Bytes}), nil
}
