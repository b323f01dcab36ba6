package mirlower

import (
	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// lowerCast lowers a Cast expression, classifying the (source, target)
// type pair into one of the CastKinds spec.md §4.4's Cast row names.
func (l *Lowerer) lowerCast(cur *BasicBlockID, id hir.ExprID, data hir.CastExpr, dest Place) error {
	op, err := l.lowerExprToSomeOperand(cur, data.Value)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	target, ok := l.infer.ExprType(id)
	if !ok {
		return implementationError("lowerCast: missing target type")
	}
	kind, err := l.classifyCast(op.Type, target)
	if err != nil {
		return err
	}
	l.pushAssign(*cur, dest, CastTo(kind, op, target))
	return nil
}

func (l *Lowerer) classifyCast(src, dst types.TypeID) (CastKind, error) {
	srcT, ok := l.layout.Types.Lookup(src)
	if !ok {
		return 0, implementationError("classifyCast: invalid source type")
	}
	dstT, ok := l.layout.Types.Lookup(dst)
	if !ok {
		return 0, implementationError("classifyCast: invalid target type")
	}
	switch {
	case isIntLike(srcT.Kind) && isIntLike(dstT.Kind):
		return CastIntToInt, nil
	case isIntLike(srcT.Kind) && dstT.Kind == types.KindFloat:
		return CastIntToFloat, nil
	case srcT.Kind == types.KindFloat && isIntLike(dstT.Kind):
		return CastFloatToInt, nil
	case srcT.Kind == types.KindFloat && dstT.Kind == types.KindFloat:
		return CastFloatToFloat, nil
	case isIntLike(srcT.Kind) && (dstT.Kind == types.KindPointer || dstT.Kind == types.KindReference):
		return CastScalarToPointer, nil
	case (srcT.Kind == types.KindPointer || srcT.Kind == types.KindReference) && isIntLike(dstT.Kind):
		return CastPointerToScalar, nil
	case (srcT.Kind == types.KindPointer || srcT.Kind == types.KindReference) &&
		(dstT.Kind == types.KindPointer || dstT.Kind == types.KindReference):
		return CastPointerToPointer, nil
	case isIntLike(srcT.Kind) && dstT.Kind == types.KindUnion:
		return CastScalarToEnum, nil
	default:
		return 0, typeError("unsupported cast")
	}
}

func isIntLike(k types.Kind) bool {
	return k == types.KindInt || k == types.KindUint || k == types.KindBool || k == types.KindChar
}

// lowerRef lowers `&value` / `&mut value`.
func (l *Lowerer) lowerRef(cur *BasicBlockID, data hir.RefExpr, dest Place) error {
	place, err := l.lowerExprAsPlace(cur, data.Value)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	kind := BorrowShared
	if data.Mutable {
		kind = BorrowMut
	}
	l.pushAssign(*cur, dest, Ref(kind, place))
	return nil
}

// lowerTuple lowers a tuple literal into an Aggregate rvalue.
func (l *Lowerer) lowerTuple(cur *BasicBlockID, id hir.ExprID, data hir.TupleExpr, dest Place) error {
	ops := make([]Operand, 0, len(data.Elems))
	for _, elem := range data.Elems {
		op, err := l.lowerExprToSomeOperand(cur, elem)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		ops = append(ops, op)
	}
	ty, ok := l.infer.ExprType(id)
	if !ok {
		return implementationError("lowerTuple: missing type")
	}
	l.pushAssign(*cur, dest, AggregateOf(AggregateTuple, ty, "", ops))
	return nil
}

// lowerArray lowers a fixed-size array literal.
func (l *Lowerer) lowerArray(cur *BasicBlockID, id hir.ExprID, data hir.ArrayExpr, dest Place) error {
	ops := make([]Operand, 0, len(data.Elems))
	for _, elem := range data.Elems {
		op, err := l.lowerExprToSomeOperand(cur, elem)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		ops = append(ops, op)
	}
	ty, ok := l.infer.ExprType(id)
	if !ok {
		return implementationError("lowerArray: missing type")
	}
	l.pushAssign(*cur, dest, AggregateOf(AggregateArray, ty, "", ops))
	return nil
}

// lowerUnaryOp lowers `-value` / `!value`.
func (l *Lowerer) lowerUnaryOp(cur *BasicBlockID, data hir.UnaryOpExpr, dest Place) error {
	op, err := l.lowerExprToSomeOperand(cur, data.Value)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	l.pushAssign(*cur, dest, UnaryOp(data.Op, op))
	return nil
}

// lowerBinaryOp lowers every BinOp spec.md §4.4 names, including plain
// (non-compound) assignment and the bitwise-lowered logical operators.
func (l *Lowerer) lowerBinaryOp(cur *BasicBlockID, data hir.BinaryOpExpr, dest Place) error {
	if data.Op == hir.BinAssign {
		place, err := l.lowerExprAsPlace(cur, data.Left)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		if err := l.lowerExprToPlace(cur, data.Right, place); err != nil || *cur == NoBasicBlockID {
			return err
		}
		l.pushAssign(*cur, dest, AggregateOf(AggregateTuple, l.unitType(), "", nil))
		return nil
	}
	left, err := l.lowerExprToSomeOperand(cur, data.Left)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	right, err := l.lowerExprToSomeOperand(cur, data.Right)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	l.pushAssign(*cur, dest, BinaryOp(data.Op, left, right))
	return nil
}

func (l *Lowerer) unitType() types.TypeID {
	if l.layout != nil && l.layout.Types != nil {
		return l.layout.Types.Builtins.Unit
	}
	return types.NoTypeID
}

// lowerRange lowers `start..end` / `start..` / `..end` into a tuple-kind
// aggregate tagged "range" whose operands are the bounds that are present,
// start before end (two operands for `start..end`, one for an open range).
// Operands are placed by position; the range type's field names are not
// consulted, and no `exhausted` field is filled.
func (l *Lowerer) lowerRange(cur *BasicBlockID, id hir.ExprID, data hir.RangeExpr, dest Place) error {
	ty, ok := l.infer.ExprType(id)
	if !ok {
		return implementationError("lowerRange: missing type")
	}
	var ops []Operand
	if data.Start != hir.NoExprID {
		op, err := l.lowerExprToSomeOperand(cur, data.Start)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		ops = append(ops, op)
	}
	if data.End != hir.NoExprID {
		op, err := l.lowerExprToSomeOperand(cur, data.End)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		ops = append(ops, op)
	}
	l.pushAssign(*cur, dest, AggregateOf(AggregateTuple, ty, "range", ops))
	return nil
}

// lowerRecordLit lowers a struct/tagged-union-variant literal, ordering
// fields by declaration index rather than source order (spec.md §4.4).
func (l *Lowerer) lowerRecordLit(cur *BasicBlockID, id hir.ExprID, data hir.RecordLitExpr, dest Place) error {
	ty, err := l.resolver.ResolveRecordVariant(l.fn, id)
	if err != nil {
		return err
	}
	if data.UnionField != "" {
		return l.lowerUnionFieldWrite(cur, ty, data, dest)
	}

	names, declOrder, err := l.fieldOrderOf(ty, data.VariantName)
	if err != nil {
		return err
	}
	ops := make([]Operand, len(names))
	set := make([]bool, len(names))
	for _, f := range data.Fields {
		idx, ok := declOrder[f.Name]
		if !ok {
			return &Error{Kind: ErrUnresolvedField, Msg: f.Name}
		}
		op, err := l.lowerExprToSomeOperand(cur, f.Value)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		ops[idx] = op
		set[idx] = true
	}
	if data.Spread != hir.NoExprID {
		base, err := l.lowerExprAsPlace(cur, data.Spread)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		for i, name := range names {
			if !set[i] {
				ops[i] = CopyOf(base.Field(name), types.NoTypeID)
				set[i] = true
			}
		}
	}
	for i, ok := range set {
		if !ok {
			return &Error{Kind: ErrUnresolvedField, Msg: names[i]}
		}
	}
	l.pushAssign(*cur, dest, AggregateOf(AggregateAdt, ty, data.VariantName, ops))
	return nil
}

// lowerUnionFieldWrite handles the single-field union literal form
// (`Variant { field: value }` writing exactly one payload field).
func (l *Lowerer) lowerUnionFieldWrite(cur *BasicBlockID, ty types.TypeID, data hir.RecordLitExpr, dest Place) error {
	if len(data.Fields) != 1 {
		return implementationError("lowerUnionFieldWrite: expected exactly one field")
	}
	op, err := l.lowerExprToSomeOperand(cur, data.Fields[0].Value)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	l.pushAssign(*cur, dest, AggregateOf(AggregateAdt, ty, data.VariantName, []Operand{op}))
	return nil
}

// fieldOrderOf returns the declaration-ordered field names of a struct or
// union-variant type, plus a name->index map.
func (l *Lowerer) fieldOrderOf(ty types.TypeID, variant string) ([]string, map[string]int, error) {
	if variant == "" {
		info, ok := l.layout.Types.StructInfo(ty)
		if !ok {
			return nil, nil, implementationError("fieldOrderOf: not a struct type")
		}
		names := make([]string, len(info.Fields))
		order := make(map[string]int, len(info.Fields))
		for i, f := range info.Fields {
			names[i] = f.Name
			order[f.Name] = i
		}
		return names, order, nil
	}
	info, ok := l.layout.Types.UnionInfo(ty)
	if !ok {
		return nil, nil, implementationError("fieldOrderOf: not a union type")
	}
	_, v, ok := info.VariantByName(variant)
	if !ok {
		return nil, nil, &Error{Kind: ErrUnresolvedField, Msg: variant}
	}
	names := make([]string, len(v.Fields))
	order := make(map[string]int, len(v.Fields))
	for i, f := range v.Fields {
		names[i] = f.Name
		order[f.Name] = i
	}
	return names, order, nil
}
