package mirlower

import (
	"bodymir/internal/consteval"
	"bodymir/internal/hir"
	"bodymir/internal/infer"
	"bodymir/internal/langitems"
	"bodymir/internal/layout"
	"bodymir/internal/resolve"
)

// LowerBody is the top-level entry point (spec.md §4.8): allocate the
// return slot and one local per parameter, lower each parameter's pattern
// against its local, lower the root expression into the return slot, then
// finalize any block the recursion left dangling.
func LowerBody(fn *hir.Func, r resolve.Resolver, inf infer.Result, c consteval.Evaluator, t langitems.Table, eng *layout.Engine) (*Body, error) {
	if inf.HasTypeMismatch() {
		return nil, &Error{Kind: ErrTypeMismatch}
	}
	returnTy, ok := inf.ExprType(fn.Root)
	if !ok {
		return nil, implementationError("LowerBody: missing root expression type")
	}

	body := NewBody(fn.Def, returnTy, eng)
	l := newLowerer(fn, body, r, inf, c, t, eng)

	for _, p := range fn.Params {
		local := body.AllocLocal(typeOf(p.Type))
		body.Params = append(body.Params, local)
	}
	body.ArgCount = len(fn.Params)

	cur := body.Start
	for i, p := range fn.Params {
		pat := fn.Pattern(p.Pattern)
		if pat.Kind == hir.PatBinding && pat.BindingMode == hir.BindMove && pat.Sub == hir.NoPatternID {
			// Fast path (spec.md §4.8 step 3): a plain-binding parameter
			// needs no second local or Copy - its already-allocated
			// parameter local is the binding.
			local := body.Params[i]
			body.Locals[local].Binding = pat.Binding
			body.BindingLocals[pat.Binding] = local
			continue
		}
		matched, otherwise, err := l.compileMatchID(cur, PlaceOf(body.Params[i]), typeOf(p.Type), p.Pattern)
		if err != nil {
			return nil, err
		}
		if otherwise != NoBasicBlockID {
			return nil, implementationError("LowerBody: parameter patterns must be irrefutable")
		}
		cur = matched
	}

	if err := l.lowerExprToPlace(&cur, fn.Root, PlaceOf(ReturnSlot)); err != nil {
		return nil, err
	}
	if cur != NoBasicBlockID {
		if err := l.setTerminator(cur, ReturnTerm()); err != nil {
			return nil, err
		}
	}
	body.finalize(nil)
	return body, nil
}
