package mirlower

import (
	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// typeOf converts a hir.TypeRef (the inference stage's opaque forward
// reference) into the types.TypeID it actually denotes.
func typeOf(ref hir.TypeRef) types.TypeID { return types.TypeID(ref) }

// applyAdjustmentsToOperand replays a type-checker-inserted coercion list
// onto an already-lowered base operand, outermost-last (spec.md §4.7:
// "applied in order, each one consuming the previous step's result").
func (l *Lowerer) applyAdjustmentsToOperand(cur BasicBlockID, op Operand, adjustments []hir.Adjustment) (Operand, error) {
	for _, adj := range adjustments {
		target := typeOf(adj.Target)
		switch adj.Kind {
		case hir.AdjustNeverToAny:
			op.Type = target
		case hir.AdjustDeref:
			place, err := l.placeOfOperand(cur, op)
			if err != nil {
				return Operand{}, err
			}
			op = CopyOf(place.Deref(), target)
		case hir.AdjustBorrow, hir.AdjustBorrowMut, hir.AdjustBorrowRawConst, hir.AdjustBorrowRawMut:
			place, err := l.placeOfOperand(cur, op)
			if err != nil {
				return Operand{}, err
			}
			local, err := l.body.Temp(target)
			if err != nil {
				return Operand{}, err
			}
			l.pushStorageLive(cur, local)
			l.pushAssign(cur, PlaceOf(local), Ref(borrowKindFor(adj.Kind), place))
			op = CopyOf(PlaceOf(local), target)
		case hir.AdjustPointerCast:
			local, err := l.body.Temp(target)
			if err != nil {
				return Operand{}, err
			}
			l.pushStorageLive(cur, local)
			l.pushAssign(cur, PlaceOf(local), CastTo(CastPointerToPointer, op, target))
			op = CopyOf(PlaceOf(local), target)
		default:
			return Operand{}, implementationError("applyAdjustmentsToOperand: unknown adjustment kind")
		}
	}
	return op, nil
}

// placeOfOperand returns a Place holding op's value, materializing it into
// a fresh temporary first if op isn't already a Copy of some place.
func (l *Lowerer) placeOfOperand(cur BasicBlockID, op Operand) (Place, error) {
	if op.Kind == OperandCopy {
		return op.Place, nil
	}
	local, err := l.body.Temp(op.Type)
	if err != nil {
		return Place{}, err
	}
	l.pushStorageLive(cur, local)
	l.pushAssign(cur, PlaceOf(local), Use(op))
	return PlaceOf(local), nil
}

func borrowKindFor(k hir.AdjustKind) BorrowKind {
	switch k {
	case hir.AdjustBorrowMut:
		return BorrowMut
	case hir.AdjustBorrowRawConst:
		return BorrowRawConst
	case hir.AdjustBorrowRawMut:
		return BorrowRawMut
	default:
		return BorrowShared
	}
}
