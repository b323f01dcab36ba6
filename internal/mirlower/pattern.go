package mirlower

import (
	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// compileMatch compiles pat against scrutinee (of type ty) starting in
// block cur, per spec.md §4.5's (matched_block, otherwise_block?) contract:
// matched is the block execution reaches once the pattern has matched (and
// every binding it introduces has been written), otherwise is the block
// taken on a failed match, or NoBasicBlockID when pat is irrefutable.
func (l *Lowerer) compileMatch(cur BasicBlockID, scrutinee Place, ty types.TypeID, pat hir.Pattern) (BasicBlockID, BasicBlockID, error) {
	switch pat.Kind {
	case hir.PatWildcard:
		return cur, NoBasicBlockID, nil

	case hir.PatBinding:
		local := l.body.BindLocal(pat.Binding, l.bindingTypeOrDefault(pat.Binding, ty))
		l.pushStorageLive(cur, local)
		switch pat.BindingMode {
		case hir.BindRef:
			l.pushAssign(cur, PlaceOf(local), Ref(BorrowShared, scrutinee))
		case hir.BindRefMut:
			l.pushAssign(cur, PlaceOf(local), Ref(BorrowMut, scrutinee))
		default:
			l.pushAssign(cur, PlaceOf(local), Use(CopyOf(scrutinee, ty)))
		}
		if pat.Sub != hir.NoPatternID {
			return l.compileMatchID(cur, scrutinee, ty, pat.Sub)
		}
		return cur, NoBasicBlockID, nil

	case hir.PatLiteral:
		bytes, err := l.encodeLiteral(pat.Literal, ty)
		if err != nil {
			return 0, 0, err
		}
		return l.compileEqualityTest(cur, CopyOf(scrutinee, ty), Imm(bytes, ty))

	case hir.PatTuple:
		info, ok := l.layout.Types.TupleInfo(ty)
		if !ok {
			return 0, 0, implementationError("compileMatch: not a tuple type")
		}
		return l.compileSequence(cur, pat.Elems, func(i int) (Place, types.TypeID) {
			return scrutinee.TupleField(i), info.Elems[i]
		})

	case hir.PatStruct:
		info, ok := l.layout.Types.StructInfo(ty)
		if !ok {
			return 0, 0, implementationError("compileMatch: not a struct type")
		}
		return l.compileFields(cur, pat.Fields, func(name string) (Place, types.TypeID, error) {
			idx, ok := info.FieldIndex(name)
			if !ok {
				return Place{}, 0, &Error{Kind: ErrUnresolvedField, Msg: name}
			}
			return scrutinee.Field(name), info.Fields[idx].Type, nil
		})

	case hir.PatVariant:
		return l.compileVariant(cur, scrutinee, ty, pat)

	case hir.PatRef:
		elemTy := ty
		if tt, ok := l.layout.Types.Lookup(ty); ok {
			elemTy = tt.Elem
		}
		return l.compileMatchID(cur, scrutinee.Deref(), elemTy, pat.RefInner)

	default:
		return 0, 0, implementationError("compileMatch: unknown pattern kind")
	}
}

func (l *Lowerer) compileMatchID(cur BasicBlockID, scrutinee Place, ty types.TypeID, id hir.PatternID) (BasicBlockID, BasicBlockID, error) {
	return l.compileMatch(cur, scrutinee, ty, *l.fn.Pattern(id))
}

// bindingTypeOrDefault consults the inference result for a binding's
// declared type, falling back to the scrutinee's type (the common case:
// a by-value binding of the whole scrutinee).
func (l *Lowerer) bindingTypeOrDefault(b hir.BindingID, fallback types.TypeID) types.TypeID {
	if ty, ok := l.infer.BindingType(b); ok {
		return ty
	}
	return fallback
}

// compileEqualityTest is the shared core of literal-pattern matching: test
// scrutinee == value, branching to a fresh matched/otherwise pair.
func (l *Lowerer) compileEqualityTest(cur BasicBlockID, scrutinee, value Operand) (BasicBlockID, BasicBlockID, error) {
	boolTy := l.layout.Types.Builtins.Bool
	local, err := l.body.Temp(boolTy)
	if err != nil {
		return 0, 0, err
	}
	l.pushStorageLive(cur, local)
	l.pushAssign(cur, PlaceOf(local), BinaryOp(hir.BinEq, scrutinee, value))
	matched := l.body.NewBasicBlock()
	otherwise := l.body.NewBasicBlock()
	if err := l.setTerminator(cur, IfTerm(CopyOf(PlaceOf(local), boolTy), matched, otherwise)); err != nil {
		return 0, 0, err
	}
	return matched, otherwise, nil
}

// compileSequence threads a list of positional sub-patterns through
// successive blocks, merging every sub-pattern's failure path into one
// combined otherwise block.
func (l *Lowerer) compileSequence(cur BasicBlockID, elems []hir.PatternID, placeOf func(i int) (Place, types.TypeID)) (BasicBlockID, BasicBlockID, error) {
	blk := cur
	var fails []BasicBlockID
	for i, id := range elems {
		sub, subTy := placeOf(i)
		m, o, err := l.compileMatchID(blk, sub, subTy, id)
		if err != nil {
			return 0, 0, err
		}
		blk = m
		if o != NoBasicBlockID {
			fails = append(fails, o)
		}
	}
	return blk, l.joinOtherwise(fails), nil
}

// compileFields is compileSequence's named-field counterpart.
func (l *Lowerer) compileFields(cur BasicBlockID, fields []hir.FieldPattern, placeOf func(name string) (Place, types.TypeID, error)) (BasicBlockID, BasicBlockID, error) {
	blk := cur
	var fails []BasicBlockID
	for _, f := range fields {
		sub, subTy, err := placeOf(f.Name)
		if err != nil {
			return 0, 0, err
		}
		m, o, err := l.compileMatchID(blk, sub, subTy, f.Pattern)
		if err != nil {
			return 0, 0, err
		}
		blk = m
		if o != NoBasicBlockID {
			fails = append(fails, o)
		}
	}
	return blk, l.joinOtherwise(fails), nil
}

// compileVariant tests a tagged-union's discriminant, then destructures
// the matched variant's payload fields, if any. The discriminant is read
// through a synthetic "$tag" projection - this core doesn't model a
// separate discriminant rvalue, so the tag rides along as an ordinary
// field of the union's in-memory representation.
func (l *Lowerer) compileVariant(cur BasicBlockID, scrutinee Place, ty types.TypeID, pat hir.Pattern) (BasicBlockID, BasicBlockID, error) {
	info, ok := l.layout.Types.UnionInfo(ty)
	if !ok {
		return 0, 0, implementationError("compileVariant: not a union type")
	}
	idx, variant, ok := info.VariantByName(pat.VariantName)
	if !ok {
		return 0, 0, &Error{Kind: ErrUnresolvedField, Msg: pat.VariantName}
	}
	tagTy := l.layout.Types.Builtins.Uint32
	matched, otherwise, err := l.compileEqualityTest(cur, CopyOf(scrutinee.Field("$tag"), tagTy), Imm(encodeUnsigned(uint64(idx), 32), tagTy))
	if err != nil {
		return 0, 0, err
	}
	if len(pat.Fields) == 0 {
		return matched, otherwise, nil
	}
	blk, innerOtherwise, err := l.compileFields(matched, pat.Fields, func(name string) (Place, types.TypeID, error) {
		if variant.Kind == types.VariantTuple {
			for i, f := range variant.Fields {
				_ = f
				if fieldPositionalName(i) == name {
					return scrutinee.TupleField(i), variant.Fields[i].Type, nil
				}
			}
			return Place{}, 0, &Error{Kind: ErrUnresolvedField, Msg: name}
		}
		for i, f := range variant.Fields {
			if f.Name == name {
				return scrutinee.Field(name), variant.Fields[i].Type, nil
			}
		}
		return Place{}, 0, &Error{Kind: ErrUnresolvedField, Msg: name}
	})
	if err != nil {
		return 0, 0, err
	}
	fails := []BasicBlockID{otherwise}
	if innerOtherwise != NoBasicBlockID {
		fails = append(fails, innerOtherwise)
	}
	return blk, l.joinOtherwise(fails), nil
}

// fieldPositionalName names a tuple-variant field the same way this core's
// FieldPattern.Name convention addresses positional payload fields: "0",
// "1", ... The pattern builder and the type registrar agree on this naming
// so PatVariant destructuring can reuse the same named-field machinery as
// PatStruct.
func fieldPositionalName(i int) string {
	digits := "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	buf := make([]byte, 0, 4)
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return string(buf)
}

// joinOtherwise merges any number of failure blocks into a single one via
// Goto, or reports NoBasicBlockID if there were none (an irrefutable match).
func (l *Lowerer) joinOtherwise(fails []BasicBlockID) BasicBlockID {
	if len(fails) == 0 {
		return NoBasicBlockID
	}
	if len(fails) == 1 {
		return fails[0]
	}
	joined := l.body.NewBasicBlock()
	for _, f := range fails {
		_ = l.setGoto(f, joined)
	}
	return joined
}
