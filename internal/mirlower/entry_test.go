package mirlower

import (
	"testing"

	"bodymir/internal/consteval"
	"bodymir/internal/hir"
	"bodymir/internal/infer"
	"bodymir/internal/langitems"
	"bodymir/internal/layout"
	"bodymir/internal/resolve"
	"bodymir/internal/types"
)

// fakeInfer is a minimal infer.Result backed by plain maps, enough to
// drive LowerBody over hand-built Funcs in these tests.
type fakeInfer struct {
	exprTypes map[hir.ExprID]types.TypeID
	bindTypes map[hir.BindingID]types.TypeID
	patTypes  map[hir.PatternID]types.TypeID
	adjust    map[hir.ExprID][]hir.Adjustment
	methods   map[hir.ExprID]infer.MethodRef
}

func newFakeInfer() *fakeInfer {
	return &fakeInfer{
		exprTypes: map[hir.ExprID]types.TypeID{},
		bindTypes: map[hir.BindingID]types.TypeID{},
		patTypes:  map[hir.PatternID]types.TypeID{},
		adjust:    map[hir.ExprID][]hir.Adjustment{},
		methods:   map[hir.ExprID]infer.MethodRef{},
	}
}

func (f *fakeInfer) HasTypeMismatch() bool { return false }
func (f *fakeInfer) ExprType(e hir.ExprID) (types.TypeID, bool) {
	ty, ok := f.exprTypes[e]
	return ty, ok
}
func (f *fakeInfer) Adjustments(e hir.ExprID) []hir.Adjustment { return f.adjust[e] }
func (f *fakeInfer) MethodResolution(e hir.ExprID) (infer.MethodRef, bool) {
	mr, ok := f.methods[e]
	return mr, ok
}
func (f *fakeInfer) PatternType(p hir.PatternID) (types.TypeID, bool) {
	ty, ok := f.patTypes[p]
	return ty, ok
}
func (f *fakeInfer) ForIteratorType(hir.ExprID) (types.TypeID, bool) { return 0, false }
func (f *fakeInfer) ForItemType(hir.ExprID) (types.TypeID, bool)     { return 0, false }
func (f *fakeInfer) BindingType(b hir.BindingID) (types.TypeID, bool) {
	ty, ok := f.bindTypes[b]
	return ty, ok
}

type fakeResolver struct{}

func (fakeResolver) ResolvePath(*hir.Func, hir.ExprID) (resolve.Resolution, error) {
	return resolve.Resolution{Kind: resolve.KindUnresolved}, nil
}
func (fakeResolver) ResolveRecordVariant(*hir.Func, hir.ExprID) (types.TypeID, error) {
	return 0, implementationError("not used in this test")
}

type fakeConsts struct{}

func (fakeConsts) Eval(hir.DefID, []types.TypeID) (consteval.Value, error) {
	return consteval.Value{}, implementationError("not used in this test")
}

type fakeItems struct{}

func (fakeItems) Lookup(langitems.Item) (hir.DefID, bool) { return 0, false }

func newTestEngine() (*types.Interner, *layout.Engine) {
	in := types.NewInterner()
	return in, layout.New(layout.X86_64LinuxGNU(), in)
}

func TestLowerBodyLiteralReturn(t *testing.T) {
	in, eng := newTestEngine()
	b := hir.NewBuilder("answer")
	lit := b.Add(hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralExpr{Kind: hir.LiteralInt, Int: 42}})
	b.SetRoot(lit)
	fn := b.Build()

	fi := newFakeInfer()
	fi.exprTypes[lit] = in.Builtins.Int32

	body, err := LowerBody(fn, fakeResolver{}, fi, fakeConsts{}, fakeItems{}, eng)
	if err != nil {
		t.Fatalf("LowerBody: %v", err)
	}
	if body.Locals[0].Type != in.Builtins.Int32 {
		t.Fatalf("return slot type = %v, want Int32", body.Locals[0].Type)
	}
	start := body.Block(body.Start)
	if !start.Terminated() || start.Term.Kind != TermReturn {
		t.Fatalf("start block not terminated with Return: %+v", start.Term)
	}
	if len(start.Stmts) != 1 || start.Stmts[0].Kind != StmtAssign {
		t.Fatalf("expected a single assign statement, got %+v", start.Stmts)
	}
}

func TestLowerBodyIfElse(t *testing.T) {
	in, eng := newTestEngine()
	b := hir.NewBuilder("pick")
	cond := b.Add(hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralExpr{Kind: hir.LiteralBool, Bool: true}})
	thenLit := b.Add(hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralExpr{Kind: hir.LiteralInt, Int: 1}})
	elseLit := b.Add(hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralExpr{Kind: hir.LiteralInt, Int: 2}})
	ifExpr := b.Add(hir.Expr{Kind: hir.ExprIf, Data: hir.IfExpr{Cond: cond, Then: thenLit, Else: elseLit}})
	b.SetRoot(ifExpr)
	fn := b.Build()

	fi := newFakeInfer()
	fi.exprTypes[cond] = in.Builtins.Bool
	fi.exprTypes[thenLit] = in.Builtins.Int32
	fi.exprTypes[elseLit] = in.Builtins.Int32
	fi.exprTypes[ifExpr] = in.Builtins.Int32

	body, err := LowerBody(fn, fakeResolver{}, fi, fakeConsts{}, fakeItems{}, eng)
	if err != nil {
		t.Fatalf("LowerBody: %v", err)
	}
	for _, blk := range body.Blocks {
		if !blk.Terminated() {
			t.Fatalf("block %d left unterminated: %+v", blk.ID, blk)
		}
	}
	start := body.Block(body.Start)
	if start.Term.Kind != TermSwitchInt {
		t.Fatalf("expected start block to end in SwitchInt, got %v", start.Term.Kind)
	}
}

func TestLowerBodyTypeMismatchRejected(t *testing.T) {
	_, eng := newTestEngine()
	b := hir.NewBuilder("bad")
	lit := b.Add(hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralExpr{Kind: hir.LiteralInt, Int: 1}})
	b.SetRoot(lit)
	fn := b.Build()

	fi := &mismatchInfer{fakeInfer: newFakeInfer()}
	_, err := LowerBody(fn, fakeResolver{}, fi, fakeConsts{}, fakeItems{}, eng)
	var merr *Error
	if err == nil {
		t.Fatal("expected an error")
	}
	if !asError(err, &merr) || merr.Kind != ErrTypeMismatch {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

type mismatchInfer struct{ *fakeInfer }

func (m *mismatchInfer) HasTypeMismatch() bool { return true }

func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
