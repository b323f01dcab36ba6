package mirlower

import "bodymir/internal/hir"

// lowerBreak lowers a `break`/`break <value>`/`break 'label <value>`
// expression (spec.md §4.6): stores the break value into the target loop's
// break place, if any, then jumps to its break block. *cur is left at
// NoBasicBlockID - nothing in the enclosing straight-line code runs after
// a break, since the jump already left it.
func (l *Lowerer) lowerBreak(cur *BasicBlockID, e hir.BreakExpr) error {
	scope, err := l.resolveLoopScope(e.Label, true)
	if err != nil {
		return err
	}
	if e.Value != hir.NoExprID {
		if !scope.HasBreakPlace {
			return implementationError("break carries a value but the loop has no break place")
		}
		if err := l.lowerExprToPlace(cur, e.Value, scope.BreakPlace); err != nil {
			return err
		}
		if *cur == NoBasicBlockID {
			return nil
		}
	}
	if err := l.setGoto(*cur, scope.BreakBlock); err != nil {
		return err
	}
	*cur = NoBasicBlockID
	return nil
}

// lowerContinue lowers a `continue`/`continue 'label` expression.
// Labeled continue is rejected outright (spec.md §4.4/§9: "Labeled
// continue is not supported"), regardless of whether the label happens
// to resolve to an enclosing labeled loop.
func (l *Lowerer) lowerContinue(cur *BasicBlockID, e hir.ContinueExpr) error {
	if e.Label != "" {
		return notSupported("labeled continue is not supported")
	}
	scope, err := l.resolveLoopScope(e.Label, false)
	if err != nil {
		return err
	}
	if err := l.setGoto(*cur, scope.ContinueBlock); err != nil {
		return err
	}
	*cur = NoBasicBlockID
	return nil
}

// resolveLoopScope finds the loop a break/continue targets: the labeled
// loop by name if a label is given, otherwise the innermost enclosing loop.
func (l *Lowerer) resolveLoopScope(label string, isBreak bool) (loopScope, error) {
	if label != "" {
		return l.findLabeledLoop(label)
	}
	if isBreak {
		return l.currentLoopForBreak()
	}
	return l.currentLoopForContinue()
}
