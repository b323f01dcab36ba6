package mirlower

import (
	"bodymir/internal/hir"
	"bodymir/internal/resolve"
	"bodymir/internal/types"
)

// lowerExprToPlace is the into-place lowering mode of spec.md §4.4: lower
// expr and write its (adjusted) value into the caller-owned dest place.
// *cur tracks the current block across control flow; it is left at
// NoBasicBlockID when expr never falls through (break/continue/return).
func (l *Lowerer) lowerExprToPlace(cur *BasicBlockID, id hir.ExprID, dest Place) error {
	adjustments := l.infer.Adjustments(id)
	if len(adjustments) == 0 {
		return l.dispatchToPlace(cur, id, dest)
	}
	op, err := l.rawExprOperand(cur, id)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	final, err := l.applyAdjustmentsToOperand(*cur, op, adjustments)
	if err != nil {
		return err
	}
	l.pushAssign(*cur, dest, Use(final))
	return nil
}

// lowerExprToSomeOperand is the as-operand lowering mode: produce a value
// source usable directly as a Call argument, a BinaryOp side, etc.
func (l *Lowerer) lowerExprToSomeOperand(cur *BasicBlockID, id hir.ExprID) (Operand, error) {
	adjustments := l.infer.Adjustments(id)
	op, err := l.rawExprOperand(cur, id)
	if err != nil || *cur == NoBasicBlockID || len(adjustments) == 0 {
		return op, err
	}
	return l.applyAdjustmentsToOperand(*cur, op, adjustments)
}

// lowerExprAsPlace is the as-place lowering mode: used for assignment
// left-hand sides, `&`/`&mut` targets, match scrutinees, and the object of
// a field/index/deref projection.
func (l *Lowerer) lowerExprAsPlace(cur *BasicBlockID, id hir.ExprID) (Place, error) {
	adjustments := l.infer.Adjustments(id)
	if len(adjustments) == 0 {
		if place, ok, err := l.tryRawPlace(cur, id); ok || err != nil {
			return place, err
		}
	}
	ty, ok := l.infer.ExprType(id)
	if !ok {
		return Place{}, implementationError("lowerExprAsPlace: missing expr type")
	}
	tmp, err := l.body.Temp(ty)
	if err != nil {
		return Place{}, err
	}
	l.pushStorageLive(*cur, tmp)
	if err := l.dispatchToPlace(cur, id, PlaceOf(tmp)); err != nil {
		return Place{}, err
	}
	if *cur == NoBasicBlockID {
		return PlaceOf(tmp), nil
	}
	if len(adjustments) == 0 {
		return PlaceOf(tmp), nil
	}
	op, err := l.applyAdjustmentsToOperand(*cur, CopyOf(PlaceOf(tmp), ty), adjustments)
	if err != nil {
		return Place{}, err
	}
	final, err := l.placeOfOperand(*cur, op)
	if err != nil {
		return Place{}, err
	}
	return final, nil
}

// dispatchToPlace is the per-ExprKind table of spec.md §4.4, ignoring
// adjustments (lowerExprToPlace applies those around this call).
func (l *Lowerer) dispatchToPlace(cur *BasicBlockID, id hir.ExprID, dest Place) error {
	e := l.fn.Expr(id)
	switch e.Kind {
	case hir.ExprMissing:
		return &Error{Kind: ErrIncompleteExpr}
	case hir.ExprIf:
		return l.lowerIf(cur, e.Data.(hir.IfExpr), dest)
	case hir.ExprLet:
		return l.lowerLet(cur, e.Data.(hir.LetExpr), dest)
	case hir.ExprBlock:
		return l.lowerBlock(cur, e.Data.(hir.BlockExpr), dest)
	case hir.ExprLoop:
		return l.lowerLoop(cur, e.Data.(hir.LoopExpr), dest)
	case hir.ExprWhile:
		return l.lowerWhile(cur, e.Data.(hir.WhileExpr), dest)
	case hir.ExprFor:
		return l.lowerFor(cur, id, e.Data.(hir.ForExpr), dest)
	case hir.ExprMatch:
		return l.lowerMatch(cur, e.Data.(hir.MatchExpr), dest)
	case hir.ExprCall:
		return l.lowerCall(cur, id, e.Data.(hir.CallExpr), dest)
	case hir.ExprMethodCall:
		return l.lowerMethodCall(cur, id, e.Data.(hir.MethodCallExpr), dest)
	case hir.ExprContinue:
		return l.lowerContinue(cur, e.Data.(hir.ContinueExpr))
	case hir.ExprBreak:
		return l.lowerBreak(cur, e.Data.(hir.BreakExpr))
	case hir.ExprReturn:
		return l.lowerReturn(cur, e.Data.(hir.ReturnExpr))
	case hir.ExprRecordLit:
		return l.lowerRecordLit(cur, id, e.Data.(hir.RecordLitExpr), dest)
	case hir.ExprCast:
		return l.lowerCast(cur, id, e.Data.(hir.CastExpr), dest)
	case hir.ExprRef:
		return l.lowerRef(cur, e.Data.(hir.RefExpr), dest)
	case hir.ExprTuple:
		return l.lowerTuple(cur, id, e.Data.(hir.TupleExpr), dest)
	case hir.ExprArray:
		return l.lowerArray(cur, id, e.Data.(hir.ArrayExpr), dest)
	case hir.ExprUnaryOp:
		return l.lowerUnaryOp(cur, e.Data.(hir.UnaryOpExpr), dest)
	case hir.ExprBinaryOp:
		return l.lowerBinaryOp(cur, e.Data.(hir.BinaryOpExpr), dest)
	case hir.ExprRange:
		return l.lowerRange(cur, id, e.Data.(hir.RangeExpr), dest)
	case hir.ExprLiteral, hir.ExprPath, hir.ExprField, hir.ExprIndex, hir.ExprDeref:
		op, err := l.rawExprOperand(cur, id)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		l.pushAssign(*cur, dest, Use(op))
		return nil
	case hir.ExprYield, hir.ExprYeet, hir.ExprAwait, hir.ExprAsync, hir.ExprClosure,
		hir.ExprBox, hir.ExprUnderscore, hir.ExprArrayRepeat, hir.ExprCompoundAssign:
		return notSupported(e.Kind.String() + " expressions are not supported")
	default:
		return implementationError("dispatchToPlace: unhandled expr kind " + e.Kind.String())
	}
}

// tryRawPlace handles the expression kinds that are genuinely places
// (Path-to-binding, Field, Index, Deref) without allocating a temporary.
// ok is false for every other kind, telling the caller to fall back to
// materializing through a temp.
func (l *Lowerer) tryRawPlace(cur *BasicBlockID, id hir.ExprID) (Place, bool, error) {
	e := l.fn.Expr(id)
	switch e.Kind {
	case hir.ExprPath:
		res, err := l.resolver.ResolvePath(l.fn, id)
		if err != nil {
			return Place{}, true, err
		}
		if res.Kind != resolve.KindBinding {
			return Place{}, false, nil
		}
		local, ok := l.body.BindingLocals[res.Binding]
		if !ok {
			return Place{}, true, implementationError("tryRawPlace: binding has no local")
		}
		return PlaceOf(local), true, nil
	case hir.ExprField:
		data := e.Data.(hir.FieldExpr)
		base, err := l.lowerExprAsPlace(cur, data.Object)
		if err != nil {
			return Place{}, true, err
		}
		if *cur == NoBasicBlockID {
			return base, true, nil
		}
		return base.Field(data.Field), true, nil
	case hir.ExprIndex:
		data := e.Data.(hir.IndexExpr)
		base, err := l.lowerExprAsPlace(cur, data.Object)
		if err != nil {
			return Place{}, true, err
		}
		if *cur == NoBasicBlockID {
			return base, true, nil
		}
		idx, err := l.lowerExprAsPlace(cur, data.Index)
		if err != nil {
			return Place{}, true, err
		}
		if *cur == NoBasicBlockID {
			return base, true, nil
		}
		return base.Index(idx), true, nil
	case hir.ExprDeref:
		data := e.Data.(hir.DerefExpr)
		base, err := l.lowerExprAsPlace(cur, data.Value)
		if err != nil {
			return Place{}, true, err
		}
		if *cur == NoBasicBlockID {
			return base, true, nil
		}
		return base.Deref(), true, nil
	default:
		return Place{}, false, nil
	}
}

// rawExprOperand lowers id's own (pre-adjustment) value as an operand,
// special-casing the shapes that never need a temporary.
func (l *Lowerer) rawExprOperand(cur *BasicBlockID, id hir.ExprID) (Operand, error) {
	e := l.fn.Expr(id)
	switch e.Kind {
	case hir.ExprLiteral:
		lit := e.Data.(hir.LiteralExpr)
		ty, ok := l.infer.ExprType(id)
		if !ok {
			return Operand{}, implementationError("rawExprOperand: missing literal type")
		}
		return l.lowerLiteralOperand(lit, ty)
	case hir.ExprPath:
		op, ok, err := l.tryPathOperand(cur, id)
		if ok || err != nil {
			return op, err
		}
	}
	if place, ok, err := l.tryRawPlace(cur, id); ok {
		if err != nil {
			return Operand{}, err
		}
		if *cur == NoBasicBlockID {
			return Operand{}, nil
		}
		ty, _ := l.infer.ExprType(id)
		return CopyOf(place, ty), nil
	}
	ty, ok := l.infer.ExprType(id)
	if !ok {
		return Operand{}, implementationError("rawExprOperand: missing expr type")
	}
	tmp, err := l.body.Temp(ty)
	if err != nil {
		return Operand{}, err
	}
	l.pushStorageLive(*cur, tmp)
	if err := l.dispatchToPlace(cur, id, PlaceOf(tmp)); err != nil {
		return Operand{}, err
	}
	if *cur == NoBasicBlockID {
		return Operand{}, nil
	}
	return CopyOf(PlaceOf(tmp), ty), nil
}

// tryPathOperand special-cases a Path expression that resolves to
// something other than a local binding: a named constant, a tuple-variant
// constructor / plain function item (zero-sized), or a unit variant. A
// const generic parameter is not lowered; it is rejected as NotSupported.
func (l *Lowerer) tryPathOperand(cur *BasicBlockID, id hir.ExprID) (Operand, bool, error) {
	res, err := l.resolver.ResolvePath(l.fn, id)
	if err != nil {
		return Operand{}, true, err
	}
	ty, _ := l.infer.ExprType(id)
	switch res.Kind {
	case resolve.KindBinding:
		return Operand{}, false, nil
	case resolve.KindConst, resolve.KindAssocConst:
		op, err := l.lowerConstOperand(res.Def, ty)
		return op, true, err
	case resolve.KindTupleVariantOrFn:
		return ConstOperand(Const{Kind: ConstFn, Type: res.FnType, Def: uint32(res.Def)}), true, nil
	case resolve.KindUnitVariant:
		op, err := l.lowerUnitVariantOperand(cur, res, ty)
		return op, true, err
	case resolve.KindGenericConstParam:
		return Operand{}, true, notSupported("const generic parameters are not supported")
	default:
		return Operand{}, true, unresolvedName(l.pathText(id))
	}
}

func (l *Lowerer) pathText(id hir.ExprID) string {
	e := l.fn.Expr(id)
	if data, ok := e.Data.(hir.PathExpr); ok {
		return data.Text
	}
	return ""
}

// lowerUnitVariantOperand lowers a bare `Variant` path naming a
// payload-less tagged-union variant per spec.md §4.4's Path row ("Unit
// enum variant -> emit aggregate with no fields"): the same
// Aggregate(Adt(variant, []), ...) write lowerRecordLit emits for the
// braced form, through a fresh temp since this call site only has an
// operand to hand back, not a caller-owned place. The variant's ordinal
// index (info.VariantByName) is what compileVariant's "$tag" test
// compares against, so the write must agree with that numbering rather
// than with the variant's unrelated global DefID.
func (l *Lowerer) lowerUnitVariantOperand(cur *BasicBlockID, res resolve.Resolution, ty types.TypeID) (Operand, error) {
	info, ok := l.layout.Types.UnionInfo(ty)
	if !ok {
		return Operand{}, implementationError("lowerUnitVariantOperand: not a union type")
	}
	if _, _, ok := info.VariantByName(res.VariantName); !ok {
		return Operand{}, &Error{Kind: ErrUnresolvedField, Msg: res.VariantName}
	}
	tmp, err := l.body.Temp(ty)
	if err != nil {
		return Operand{}, err
	}
	l.pushStorageLive(*cur, tmp)
	l.pushAssign(*cur, PlaceOf(tmp), AggregateOf(AggregateAdt, ty, res.VariantName, nil))
	return CopyOf(PlaceOf(tmp), ty), nil
}
