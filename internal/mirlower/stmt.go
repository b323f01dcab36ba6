package mirlower

import "bodymir/internal/hir"

// lowerStmt lowers one block statement (spec.md §4.4's "Block statements").
func (l *Lowerer) lowerStmt(cur *BasicBlockID, stmt hir.Stmt) error {
	switch stmt.Kind {
	case hir.StmtLet:
		return l.lowerLetStmt(cur, stmt)
	case hir.StmtExpr:
		ty, ok := l.infer.ExprType(stmt.Expr)
		if !ok {
			return implementationError("lowerStmt: missing expr type")
		}
		tmp, err := l.body.Temp(ty)
		if err != nil {
			return err
		}
		l.pushStorageLive(*cur, tmp)
		return l.lowerExprToPlace(cur, stmt.Expr, PlaceOf(tmp))
	default:
		return implementationError("lowerStmt: unknown stmt kind")
	}
}

func (l *Lowerer) lowerLetStmt(cur *BasicBlockID, stmt hir.Stmt) error {
	if stmt.Init == hir.NoExprID {
		for _, b := range hir.Bindings(l.fn.Patterns, stmt.Pattern, nil) {
			ty, ok := l.infer.BindingType(b)
			if !ok {
				return implementationError("lowerLetStmt: missing binding type")
			}
			local := l.body.BindLocal(b, ty)
			l.pushStorageLive(*cur, local)
		}
		return nil
	}

	ty, ok := l.infer.PatternType(stmt.Pattern)
	if !ok {
		return implementationError("lowerLetStmt: missing pattern type")
	}
	tmp, err := l.body.Temp(ty)
	if err != nil {
		return err
	}
	l.pushStorageLive(*cur, tmp)
	if err := l.lowerExprToPlace(cur, stmt.Init, PlaceOf(tmp)); err != nil {
		return err
	}
	if *cur == NoBasicBlockID {
		return nil
	}

	matched, otherwise, err := l.compileMatchID(*cur, PlaceOf(tmp), ty, stmt.Pattern)
	if err != nil {
		return err
	}
	if otherwise != NoBasicBlockID {
		if stmt.ElseBranch == hir.NoExprID {
			return &Error{Kind: ErrTypeError, Msg: "refutable let binding has no else branch"}
		}
		elseCur := otherwise
		elseTmp, err := l.body.Temp(l.unitType())
		if err != nil {
			return err
		}
		l.pushStorageLive(otherwise, elseTmp)
		if err := l.lowerExprToPlace(&elseCur, stmt.ElseBranch, PlaceOf(elseTmp)); err != nil {
			return err
		}
		if elseCur != NoBasicBlockID {
			return implementationError("let-else branch must diverge")
		}
	}
	*cur = matched
	return nil
}
