package mirlower

import (
	"bodymir/internal/hir"
	"bodymir/internal/langitems"
	"bodymir/internal/types"
)

// lowerIf lowers an if/else expression: both arms write into dest, and
// control rejoins at a fresh join block (spec.md §4.4's If row).
func (l *Lowerer) lowerIf(cur *BasicBlockID, data hir.IfExpr, dest Place) error {
	condOp, err := l.lowerExprToSomeOperand(cur, data.Cond)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	thenBlock := l.body.NewBasicBlock()
	elseBlock := l.body.NewBasicBlock()
	if err := l.setTerminator(*cur, IfTerm(condOp, thenBlock, elseBlock)); err != nil {
		return err
	}

	thenCur := thenBlock
	if err := l.lowerExprToPlace(&thenCur, data.Then, dest); err != nil {
		return err
	}

	elseCur := elseBlock
	if data.Else != hir.NoExprID {
		if err := l.lowerExprToPlace(&elseCur, data.Else, dest); err != nil {
			return err
		}
	} else {
		l.pushAssign(elseBlock, dest, AggregateOf(AggregateTuple, l.unitType(), "", nil))
	}

	join := l.body.NewBasicBlock()
	if thenCur != NoBasicBlockID {
		if err := l.setGoto(thenCur, join); err != nil {
			return err
		}
	}
	if elseCur != NoBasicBlockID {
		if err := l.setGoto(elseCur, join); err != nil {
			return err
		}
	}
	*cur = join
	return nil
}

// lowerLet lowers a `let PATTERN = SCRUTINEE` expression used in boolean
// (if-let/while-let condition) position: dest receives true/false
// depending on whether the pattern matched, with any bindings the pattern
// introduces live on the true side (spec.md §4.4's Let row).
func (l *Lowerer) lowerLet(cur *BasicBlockID, data hir.LetExpr, dest Place) error {
	scrutineeTy, ok := l.infer.ExprType(data.Scrutinee)
	if !ok {
		return implementationError("lowerLet: missing scrutinee type")
	}
	place, err := l.lowerExprAsPlace(cur, data.Scrutinee)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	matched, otherwise, err := l.compileMatchID(*cur, place, scrutineeTy, data.Pattern)
	if err != nil {
		return err
	}
	boolTy := l.layout.Types.Builtins.Bool
	l.pushAssign(matched, dest, Use(Imm([]byte{1}, boolTy)))
	join := l.body.NewBasicBlock()
	if err := l.setGoto(matched, join); err != nil {
		return err
	}
	if otherwise != NoBasicBlockID {
		l.pushAssign(otherwise, dest, Use(Imm([]byte{0}, boolTy)))
		if err := l.setGoto(otherwise, join); err != nil {
			return err
		}
	}
	*cur = join
	return nil
}

// lowerBlock lowers a block's statements in order, then its tail
// expression (or unit, if it has none) into dest.
func (l *Lowerer) lowerBlock(cur *BasicBlockID, data hir.BlockExpr, dest Place) error {
	for _, stmt := range data.Stmts {
		if err := l.lowerStmt(cur, stmt); err != nil {
			return err
		}
		if *cur == NoBasicBlockID {
			return nil
		}
	}
	if data.Tail != hir.NoExprID {
		return l.lowerExprToPlace(cur, data.Tail, dest)
	}
	l.pushAssign(*cur, dest, AggregateOf(AggregateTuple, l.unitType(), "", nil))
	return nil
}

// lowerLoop lowers a bare `loop { ... }`. Its static type is Nothing
// unless some `break` inside gives it a value - the block following the
// loop is only reachable through one of those breaks.
func (l *Lowerer) lowerLoop(cur *BasicBlockID, data hir.LoopExpr, dest Place) error {
	header := l.body.NewBasicBlock()
	breakBlock := l.body.NewBasicBlock()
	if err := l.setGoto(*cur, header); err != nil {
		return err
	}

	pop := l.pushLoop(data.Label, data.Label != "", breakBlock, header, dest, true)
	bodyTy, ok := l.infer.ExprType(data.Body)
	if !ok {
		pop()
		return implementationError("lowerLoop: missing body type")
	}
	tmp, err := l.body.Temp(bodyTy)
	if err != nil {
		pop()
		return err
	}
	l.pushStorageLive(header, tmp)
	bodyCur := header
	if err := l.lowerExprToPlace(&bodyCur, data.Body, PlaceOf(tmp)); err != nil {
		pop()
		return err
	}
	pop()
	if bodyCur != NoBasicBlockID {
		if err := l.setGoto(bodyCur, header); err != nil {
			return err
		}
	}
	*cur = breakBlock
	return nil
}

// lowerWhile lowers `while COND { BODY }`: a header block re-evaluates
// COND every iteration and branches to the body or out of the loop.
func (l *Lowerer) lowerWhile(cur *BasicBlockID, data hir.WhileExpr, dest Place) error {
	header := l.body.NewBasicBlock()
	bodyBlock := l.body.NewBasicBlock()
	breakBlock := l.body.NewBasicBlock()
	if err := l.setGoto(*cur, header); err != nil {
		return err
	}

	headerCur := header
	condOp, err := l.lowerExprToSomeOperand(&headerCur, data.Cond)
	if err != nil {
		return err
	}
	if headerCur != NoBasicBlockID {
		if err := l.setTerminator(headerCur, IfTerm(condOp, bodyBlock, breakBlock)); err != nil {
			return err
		}
	}

	pop := l.pushLoop(data.Label, data.Label != "", breakBlock, header, Place{}, false)
	bodyTy, ok := l.infer.ExprType(data.Body)
	if !ok {
		pop()
		return implementationError("lowerWhile: missing body type")
	}
	tmp, err := l.body.Temp(bodyTy)
	if err != nil {
		pop()
		return err
	}
	l.pushStorageLive(bodyBlock, tmp)
	bodyCur := bodyBlock
	if err := l.lowerExprToPlace(&bodyCur, data.Body, PlaceOf(tmp)); err != nil {
		pop()
		return err
	}
	pop()
	if bodyCur != NoBasicBlockID {
		if err := l.setGoto(bodyCur, header); err != nil {
			return err
		}
	}
	l.pushAssign(breakBlock, dest, AggregateOf(AggregateTuple, l.unitType(), "", nil))
	*cur = breakBlock
	return nil
}

// lowerFor lowers `for PATTERN in ITERABLE { BODY }` through the
// IntoIterator/Iterator desugaring spec.md §4.4 and §9 describe: call
// into_iter once, then call next() every iteration and pattern-match its
// Option result, binding PATTERN on Some and breaking on None.
func (l *Lowerer) lowerFor(cur *BasicBlockID, id hir.ExprID, data hir.ForExpr, dest Place) error {
	iterTy, ok := l.infer.ForIteratorType(id)
	if !ok {
		return implementationError("lowerFor: missing iterator type")
	}
	itemTy, ok := l.infer.ForItemType(id)
	if !ok {
		return implementationError("lowerFor: missing item type")
	}

	iterableOp, err := l.lowerExprToSomeOperand(cur, data.Iterable)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}
	intoIterDef, ok := l.items.Lookup(langitems.IntoIterIntoIter)
	if !ok {
		return langItemNotFound(langitems.IntoIterIntoIter)
	}
	iterPlace, err := l.emitCall(cur, intoIterDef, []Operand{iterableOp}, iterTy)
	if err != nil || *cur == NoBasicBlockID {
		return err
	}

	header := l.body.NewBasicBlock()
	breakBlock := l.body.NewBasicBlock()
	if err := l.setGoto(*cur, header); err != nil {
		return err
	}

	headerCur := header
	refIterTy := l.layout.Types.Intern(types.MakeReference(iterTy, true))
	refLocal, err := l.body.Temp(refIterTy)
	if err != nil {
		return err
	}
	l.pushStorageLive(headerCur, refLocal)
	l.pushAssign(headerCur, PlaceOf(refLocal), Ref(BorrowMut, iterPlace))

	nextDef, ok := l.items.Lookup(langitems.IteratorNext)
	if !ok {
		return langItemNotFound(langitems.IteratorNext)
	}
	optTy := l.optionTypeOf(itemTy)
	nextPlace, err := l.emitCall(&headerCur, nextDef, []Operand{CopyOf(PlaceOf(refLocal), refIterTy)}, optTy)
	if err != nil || headerCur == NoBasicBlockID {
		return err
	}

	somePat := hir.Pattern{
		Kind:        hir.PatVariant,
		VariantName: "Some",
		Fields:      []hir.FieldPattern{{Name: "0", Pattern: data.Pattern}},
	}
	matched, otherwise, err := l.compileMatch(headerCur, nextPlace, optTy, somePat)
	if err != nil {
		return err
	}
	if otherwise != NoBasicBlockID {
		if err := l.setGoto(otherwise, breakBlock); err != nil {
			return err
		}
	}

	pop := l.pushLoop(data.Label, data.Label != "", breakBlock, header, Place{}, false)
	bodyTy, ok := l.infer.ExprType(data.Body)
	if !ok {
		pop()
		return implementationError("lowerFor: missing body type")
	}
	tmp, err := l.body.Temp(bodyTy)
	if err != nil {
		pop()
		return err
	}
	l.pushStorageLive(matched, tmp)
	bodyCur := matched
	if err := l.lowerExprToPlace(&bodyCur, data.Body, PlaceOf(tmp)); err != nil {
		pop()
		return err
	}
	pop()
	if bodyCur != NoBasicBlockID {
		if err := l.setGoto(bodyCur, header); err != nil {
			return err
		}
	}

	l.pushAssign(breakBlock, dest, AggregateOf(AggregateTuple, l.unitType(), "", nil))
	*cur = breakBlock
	return nil
}
