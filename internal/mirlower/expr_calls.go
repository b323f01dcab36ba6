package mirlower

import (
	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// emitCall builds a Call terminator to def with args, landing the result
// in a fresh temporary of resultTy and advancing cur to the continuation
// block. Used directly by the for-loop desugaring (§9) and by lowerCall/
// lowerMethodCall once they've resolved a concrete callee definition.
func (l *Lowerer) emitCall(cur *BasicBlockID, def hir.DefID, args []Operand, resultTy types.TypeID) (Place, error) {
	dest, err := l.body.Temp(resultTy)
	if err != nil {
		return Place{}, err
	}
	l.pushStorageLive(*cur, dest)
	hasTarget, cont := true, l.body.NewBasicBlock()
	if tt, ok := l.layout.Types.Lookup(resultTy); ok && tt.Kind == types.KindNothing {
		hasTarget, cont = false, NoBasicBlockID
	}
	fnOp := ConstOperand(Const{Kind: ConstFn, Def: uint32(def)})
	if err := l.setTerminator(*cur, CallTerm(fnOp, args, PlaceOf(dest), cont, hasTarget)); err != nil {
		return Place{}, err
	}
	if !hasTarget {
		*cur = NoBasicBlockID
		return PlaceOf(dest), nil
	}
	*cur = cont
	return PlaceOf(dest), nil
}

// lowerCall lowers a plain `callee(args...)` call, spec.md §4.4's Call row:
// if the checker resolved a concrete function/UFCS target, call it
// directly; otherwise the callee is itself an operand (a function-item or
// function-pointer value).
func (l *Lowerer) lowerCall(cur *BasicBlockID, id hir.ExprID, data hir.CallExpr, dest Place) error {
	resultTy, ok := l.infer.ExprType(id)
	if !ok {
		return implementationError("lowerCall: missing result type")
	}
	args, err := l.lowerOperands(cur, data.Args)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}

	if mr, ok := l.infer.MethodResolution(id); ok {
		place, err := l.emitCall(cur, mr.Def, args, resultTy)
		if err != nil || *cur == NoBasicBlockID {
			return err
		}
		l.pushAssign(*cur, dest, Use(CopyOf(place, resultTy)))
		return nil
	}

	calleeOp, err := l.lowerExprToSomeOperand(cur, data.Callee)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	tmp, err := l.body.Temp(resultTy)
	if err != nil {
		return err
	}
	l.pushStorageLive(*cur, tmp)
	hasTarget, cont := true, l.body.NewBasicBlock()
	if tt, ok := l.layout.Types.Lookup(resultTy); ok && tt.Kind == types.KindNothing {
		hasTarget, cont = false, NoBasicBlockID
	}
	if err := l.setTerminator(*cur, CallTerm(calleeOp, args, PlaceOf(tmp), cont, hasTarget)); err != nil {
		return err
	}
	if !hasTarget {
		*cur = NoBasicBlockID
		return nil
	}
	*cur = cont
	l.pushAssign(*cur, dest, Use(CopyOf(PlaceOf(tmp), resultTy)))
	return nil
}

// lowerMethodCall lowers `receiver.method(args...)`, requiring the checker
// to already have resolved the target (spec.md §4.4's MethodCall row).
func (l *Lowerer) lowerMethodCall(cur *BasicBlockID, id hir.ExprID, data hir.MethodCallExpr, dest Place) error {
	mr, ok := l.infer.MethodResolution(id)
	if !ok {
		return &Error{Kind: ErrMissingFunctionDefinition, Msg: data.Method}
	}
	recvOp, err := l.lowerExprToSomeOperand(cur, data.Receiver)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	rest, err := l.lowerOperands(cur, data.Args)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	args := append([]Operand{recvOp}, rest...)
	resultTy, ok := l.infer.ExprType(id)
	if !ok {
		return implementationError("lowerMethodCall: missing result type")
	}
	place, err := l.emitCall(cur, mr.Def, args, resultTy)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	l.pushAssign(*cur, dest, Use(CopyOf(place, resultTy)))
	return nil
}

func (l *Lowerer) lowerOperands(cur *BasicBlockID, ids []hir.ExprID) ([]Operand, error) {
	ops := make([]Operand, 0, len(ids))
	for _, id := range ids {
		op, err := l.lowerExprToSomeOperand(cur, id)
		if err != nil || *cur == NoBasicBlockID {
			return ops, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// lowerReturn lowers `return value?`, assigning into the return slot and
// terminating the current block.
func (l *Lowerer) lowerReturn(cur *BasicBlockID, data hir.ReturnExpr) error {
	if data.Value != hir.NoExprID {
		if err := l.lowerExprToPlace(cur, data.Value, PlaceOf(ReturnSlot)); err != nil {
			return err
		}
		if *cur == NoBasicBlockID {
			return nil
		}
	} else {
		l.pushAssign(*cur, PlaceOf(ReturnSlot), AggregateOf(AggregateTuple, l.unitType(), "", nil))
	}
	if err := l.setTerminator(*cur, ReturnTerm()); err != nil {
		return err
	}
	*cur = NoBasicBlockID
	return nil
}

// lowerMatch lowers a match expression: the scrutinee is tested against
// each arm's pattern in order, an optional guard is re-tested as an extra
// boolean condition, and every taken arm writes dest before rejoining at a
// common join block (spec.md §4.4's Match row).
func (l *Lowerer) lowerMatch(cur *BasicBlockID, data hir.MatchExpr, dest Place) error {
	scrutineeTy, ok := l.infer.ExprType(data.Scrutinee)
	if !ok {
		return implementationError("lowerMatch: missing scrutinee type")
	}
	place, err := l.lowerExprAsPlace(cur, data.Scrutinee)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}

	var joins []BasicBlockID
	blk := *cur
	for _, arm := range data.Arms {
		matched, otherwise, err := l.compileMatchID(blk, place, scrutineeTy, arm.Pattern)
		if err != nil {
			return err
		}
		armCur := matched
		if arm.Guard != hir.NoExprID {
			guardOp, err := l.lowerExprToSomeOperand(&armCur, arm.Guard)
			if err != nil {
				return err
			}
			if armCur != NoBasicBlockID {
				guardMatched := l.body.NewBasicBlock()
				guardFail := l.body.NewBasicBlock()
				if err := l.setTerminator(armCur, IfTerm(guardOp, guardMatched, guardFail)); err != nil {
					return err
				}
				if otherwise != NoBasicBlockID {
					if err := l.setGoto(guardFail, otherwise); err != nil {
						return err
					}
				} else {
					otherwise = guardFail
				}
				armCur = guardMatched
			}
		}
		if armCur != NoBasicBlockID {
			bodyCur := armCur
			if err := l.lowerExprToPlace(&bodyCur, arm.Body, dest); err != nil {
				return err
			}
			if bodyCur != NoBasicBlockID {
				joins = append(joins, bodyCur)
			}
		}
		if otherwise == NoBasicBlockID {
			blk = NoBasicBlockID
			break
		}
		blk = otherwise
	}
	if blk != NoBasicBlockID {
		// No arm matched at runtime: the checker is assumed to have proven
		// exhaustiveness, so this path is unreachable.
		l.body.Block(blk).Term = UnreachableTerm()
	}
	if len(joins) == 0 {
		*cur = NoBasicBlockID
		return nil
	}
	join := l.body.NewBasicBlock()
	for _, j := range joins {
		if err := l.setGoto(j, join); err != nil {
			return err
		}
	}
	*cur = join
	return nil
}
