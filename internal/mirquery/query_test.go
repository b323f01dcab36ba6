package mirquery

import (
	"testing"

	"bodymir/internal/consteval"
	"bodymir/internal/hir"
	"bodymir/internal/infer"
	"bodymir/internal/langitems"
	"bodymir/internal/layout"
	"bodymir/internal/mirlower"
	"bodymir/internal/resolve"
	"bodymir/internal/types"
)

type stubInfer struct {
	exprTypes map[hir.ExprID]types.TypeID
}

func (s *stubInfer) HasTypeMismatch() bool { return false }
func (s *stubInfer) ExprType(e hir.ExprID) (types.TypeID, bool) {
	ty, ok := s.exprTypes[e]
	return ty, ok
}
func (s *stubInfer) Adjustments(hir.ExprID) []hir.Adjustment { return nil }
func (s *stubInfer) MethodResolution(hir.ExprID) (infer.MethodRef, bool) {
	return infer.MethodRef{}, false
}
func (s *stubInfer) PatternType(hir.PatternID) (types.TypeID, bool) { return 0, false }
func (s *stubInfer) ForIteratorType(hir.ExprID) (types.TypeID, bool) { return 0, false }
func (s *stubInfer) ForItemType(hir.ExprID) (types.TypeID, bool)     { return 0, false }
func (s *stubInfer) BindingType(hir.BindingID) (types.TypeID, bool)  { return 0, false }

type stubResolver struct{}

func (stubResolver) ResolvePath(*hir.Func, hir.ExprID) (resolve.Resolution, error) {
	return resolve.Resolution{Kind: resolve.KindUnresolved}, nil
}
func (stubResolver) ResolveRecordVariant(*hir.Func, hir.ExprID) (types.TypeID, error) {
	return 0, nil
}

type stubConsts struct{}

func (stubConsts) Eval(hir.DefID, []types.TypeID) (consteval.Value, error) {
	return consteval.Value{}, nil
}

type stubItems struct{}

func (stubItems) Lookup(langitems.Item) (hir.DefID, bool) { return 0, false }

type stubDB struct {
	fns    map[hir.DefID]*hir.Func
	infers map[hir.DefID]infer.Result
}

func (d *stubDB) Body(def hir.DefID) (*hir.Func, bool)      { fn, ok := d.fns[def]; return fn, ok }
func (d *stubDB) Infer(def hir.DefID) (infer.Result, bool)  { r, ok := d.infers[def]; return r, ok }
func (d *stubDB) Resolver() resolve.Resolver                { return stubResolver{} }
func (d *stubDB) Consteval() consteval.Evaluator             { return stubConsts{} }
func (d *stubDB) LangItems() langitems.Table                 { return stubItems{} }

func newStubDB(in *types.Interner) (*stubDB, hir.DefID) {
	b := hir.NewBuilder("answer")
	lit := b.Add(hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralExpr{Kind: hir.LiteralInt, Int: 7}})
	b.SetRoot(lit)
	fn := b.Build()
	fn.Def = 1

	si := &stubInfer{exprTypes: map[hir.ExprID]types.TypeID{lit: in.Builtins.Int32}}
	return &stubDB{
		fns:    map[hir.DefID]*hir.Func{1: fn},
		infers: map[hir.DefID]infer.Result{1: si},
	}, 1
}

func TestEngineLowerCachesResult(t *testing.T) {
	in := types.NewInterner()
	eng := layout.New(layout.X86_64LinuxGNU(), in)
	db, def := newStubDB(in)
	e := New(db, eng, nil)

	b1, err := e.Lower(def)
	if err != nil {
		t.Fatalf("first Lower: %v", err)
	}
	b2, err := e.Lower(def)
	if err != nil {
		t.Fatalf("second Lower: %v", err)
	}
	if b1 == nil || b2 == nil {
		t.Fatal("expected non-nil bodies")
	}
	if b1 != b2 {
		t.Fatal("expected the second Lower to return the cached body")
	}
	if b1.Locals[0].Type != in.Builtins.Int32 {
		t.Fatalf("return slot type = %v, want Int32", b1.Locals[0].Type)
	}
}

func TestEngineLowerMissingDefinition(t *testing.T) {
	in := types.NewInterner()
	eng := layout.New(layout.X86_64LinuxGNU(), in)
	db := &stubDB{fns: map[hir.DefID]*hir.Func{}, infers: map[hir.DefID]infer.Result{}}
	e := New(db, eng, nil)

	_, err := e.Lower(99)
	if err == nil {
		t.Fatal("expected an error for a missing definition")
	}
}

func TestEngineLowerDetectsCycle(t *testing.T) {
	in := types.NewInterner()
	eng := layout.New(layout.X86_64LinuxGNU(), in)
	db, def := newStubDB(in)
	e := New(db, eng, nil)

	// Simulate def already being lowered higher up the call chain.
	e.mu.Lock()
	e.inflight[def] = true
	e.mu.Unlock()

	_, err := e.Lower(def)
	merr, ok := err.(*mirlower.Error)
	if !ok || merr.Kind != mirlower.ErrLoop {
		t.Fatalf("expected a Loop error, got %v", err)
	}
}
