package layout

import (
	"fortio.org/safecast"

	"bodymir/internal/types"
)

func (e *Engine) computeLayout(id types.TypeID, stack []types.TypeID) (TypeLayout, error) {
	for _, seen := range stack {
		if seen == id {
			return TypeLayout{}, &Error{Kind: ErrRecursiveUnsized, Type: id, Cycle: append(append([]types.TypeID(nil), stack...), id)}
		}
	}
	stack = append(stack, id)

	tt, ok := e.Types.Lookup(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, nil
	}

	switch tt.Kind {
	case types.KindUnit, types.KindNothing:
		return TypeLayout{Size: 0, Align: 1}, nil
	case types.KindBool:
		return TypeLayout{Size: 1, Align: 1}, nil
	case types.KindChar:
		return TypeLayout{Size: 4, Align: 4}, nil
	case types.KindInt, types.KindUint, types.KindFloat:
		sz := types.SizeHintWidth(tt.Width) / 8
		return TypeLayout{Size: sz, Align: sz}, nil
	case types.KindString:
		// offset + length, per §4.3's string-operand encoding.
		return TypeLayout{Size: 16, Align: e.Target.PtrAlign}, nil
	case types.KindPointer, types.KindReference, types.KindFn:
		return TypeLayout{Size: e.Target.PtrSize, Align: e.Target.PtrAlign}, nil
	case types.KindArray:
		if tt.Count == types.ArrayDynamicLength {
			return TypeLayout{}, &Error{Kind: ErrUnsized, Type: id}
		}
		elem, err := e.computeLayout(tt.Elem, stack)
		if err != nil {
			return TypeLayout{}, err
		}
		count, err := safecast.Conv[int](tt.Count)
		if err != nil {
			count = 0
		}
		return TypeLayout{Size: elem.Size * count, Align: maxInt(elem.Align, 1)}, nil
	case types.KindTuple:
		info, _ := e.Types.TupleInfo(id)
		return e.sequentialLayout(elemTypes(info), stack)
	case types.KindStruct:
		info, _ := e.Types.StructInfo(id)
		fieldTypes := make([]types.TypeID, len(info.Fields))
		for i, f := range info.Fields {
			fieldTypes[i] = f.Type
		}
		return e.sequentialLayout(fieldTypes, stack)
	case types.KindUnion:
		return e.unionLayout(id, stack)
	default:
		return TypeLayout{Size: 0, Align: 1}, nil
	}
}

func elemTypes(info *types.TupleInfo) []types.TypeID {
	if info == nil {
		return nil
	}
	return info.Elems
}

func (e *Engine) sequentialLayout(fields []types.TypeID, stack []types.TypeID) (TypeLayout, error) {
	offsets := make([]int, len(fields))
	cursor, align := 0, 1
	for i, f := range fields {
		fl, err := e.computeLayout(f, stack)
		if err != nil {
			return TypeLayout{}, err
		}
		if fl.Align > 0 {
			cursor = alignUp(cursor, fl.Align)
		}
		offsets[i] = cursor
		cursor += fl.Size
		if fl.Align > align {
			align = fl.Align
		}
	}
	return TypeLayout{Size: alignUp(cursor, align), Align: align, FieldOffsets: offsets}, nil
}

// unionLayout lays a tagged union out as a 4-byte tag followed by the
// widest variant's payload, the same discriminant-then-payload scheme the
// teacher's own tagUnionLayout uses for its v1 VM ABI.
func (e *Engine) unionLayout(id types.TypeID, stack []types.TypeID) (TypeLayout, error) {
	info, _ := e.Types.UnionInfo(id)
	payloadSize, payloadAlign := 0, 1
	for _, v := range info.Variants {
		fieldTypes := make([]types.TypeID, len(v.Fields))
		for i, f := range v.Fields {
			fieldTypes[i] = f.Type
		}
		fl, err := e.sequentialLayout(fieldTypes, stack)
		if err != nil {
			return TypeLayout{}, err
		}
		if fl.Size > payloadSize {
			payloadSize = fl.Size
		}
		if fl.Align > payloadAlign {
			payloadAlign = fl.Align
		}
	}
	tagSize, tagAlign := 4, 4
	total := alignUp(tagSize, payloadAlign) + payloadSize
	align := maxInt(tagAlign, payloadAlign)
	return TypeLayout{Size: alignUp(total, align), Align: align}, nil
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
