package hir

import "bodymir/internal/source"

// ExprKind enumerates the expression shapes the lowering dispatch table in
// spec.md §4.4 names. Kinds listed under spec.md's Non-goals (Yield, Yeet,
// Await, Async, Closure, Box, Underscore, ArrayRepeat, CompoundAssign) are
// still representable here - the core rejects them with NotSupported at
// lowering time rather than the tree being unable to express them at all.
type ExprKind uint8

const (
	// ExprMissing marks a source gap the parser tolerated.
	ExprMissing ExprKind = iota
	ExprPath
	ExprIf
	ExprLet
	ExprBlock
	ExprLoop
	ExprWhile
	ExprFor
	ExprCall
	ExprMethodCall
	ExprMatch
	ExprContinue
	ExprBreak
	ExprReturn
	ExprRecordLit
	ExprCast
	ExprRef
	ExprField
	ExprIndex
	ExprDeref
	ExprUnaryOp
	ExprBinaryOp
	ExprRange
	ExprTuple
	ExprArray
	ExprLiteral

	// Non-goals: recognized nodes, always rejected as NotSupported.
	ExprYield
	ExprYeet
	ExprAwait
	ExprAsync
	ExprClosure
	ExprBox
	ExprUnderscore
	ExprArrayRepeat
	ExprCompoundAssign
)

func (k ExprKind) String() string {
	names := [...]string{
		"Missing", "Path", "If", "Let", "Block", "Loop", "While", "For",
		"Call", "MethodCall", "Match", "Continue", "Break", "Return",
		"RecordLit", "Cast", "Ref", "Field", "Index", "Deref", "UnaryOp",
		"BinaryOp", "Range", "Tuple", "Array", "Literal",
		"Yield", "Yeet", "Await", "Async", "Closure", "Box", "Underscore",
		"ArrayRepeat", "CompoundAssign",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// AdjustKind names the kind of one type-checker-inserted coercion. An
// expression carries an ordered list of Adjustments, replayed
// outermost-last per spec.md §4.7.
type AdjustKind uint8

const (
	AdjustNeverToAny AdjustKind = iota
	AdjustDeref
	AdjustBorrow
	AdjustBorrowMut
	AdjustBorrowRawConst
	AdjustBorrowRawMut
	AdjustPointerCast
)

// Adjustment is one entry in an expression's adjustment list.
type Adjustment struct {
	Kind AdjustKind
	// Target is the type this adjustment step produces.
	Target TypeRef
	// CastKind names the pointer coercion for AdjustPointerCast.
	CastKind string
}

// TypeRef is a forward reference to a types.TypeID without importing the
// types package from hir - the expression tree is type-annotated by the
// (out of scope) inference stage, not by hir itself, so hir only stores
// the opaque numeric id it was given.
type TypeRef uint32

// Expr is one node of the type-checked expression tree the core lowers.
// Type and Adjustments are populated by the (out of scope) inference
// stage; the core reads them through the infer.Result query rather than
// through this struct so that a single hir.Expr can be shared across
// multiple inference runs in tests.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the kind-specific payload of an Expr.
type ExprData interface{ exprData() }

type PathExpr struct{ Text string }

func (PathExpr) exprData() {}

type IfExpr struct {
	Cond ExprID
	Then ExprID
	Else ExprID // NoExprID when there is no else branch
}

func (IfExpr) exprData() {}

type LetExpr struct {
	Scrutinee ExprID
	Pattern   PatternID
}

func (LetExpr) exprData() {}

type BlockExpr struct {
	Stmts []Stmt
	Tail  ExprID // NoExprID when the block has no tail expression
	Label string // "" when unlabeled
}

func (BlockExpr) exprData() {}

type LoopExpr struct {
	Body  ExprID
	Label string
}

func (LoopExpr) exprData() {}

type WhileExpr struct {
	Cond  ExprID
	Body  ExprID
	Label string
}

func (WhileExpr) exprData() {}

type ForExpr struct {
	Pattern  PatternID
	Iterable ExprID
	Body     ExprID
	Label    string
}

func (ForExpr) exprData() {}

type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

func (CallExpr) exprData() {}

type MethodCallExpr struct {
	Receiver ExprID
	Method   string
	Args     []ExprID
}

func (MethodCallExpr) exprData() {}

type MatchArm struct {
	Pattern PatternID
	Guard   ExprID // NoExprID when the arm has no guard
	Body    ExprID
}

type MatchExpr struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

func (MatchExpr) exprData() {}

type ContinueExpr struct{ Label string }

func (ContinueExpr) exprData() {}

type BreakExpr struct {
	Label string
	Value ExprID // NoExprID for a bare `break`
}

func (BreakExpr) exprData() {}

type ReturnExpr struct{ Value ExprID }

func (ReturnExpr) exprData() {}

type RecordLitField struct {
	Name  string
	Value ExprID
}

type RecordLitExpr struct {
	// VariantName is "" for a plain struct literal and the tag name for a
	// tagged-union variant literal.
	VariantName string
	Fields      []RecordLitField
	// Spread is the optional `..base` source for fields the literal omits.
	Spread ExprID
	// UnionField, when non-empty, marks this as a single-field union write
	// (spec.md §4.4's "Unions: exactly one field allowed").
	UnionField string
}

func (RecordLitExpr) exprData() {}

type CastExpr struct{ Value ExprID }

func (CastExpr) exprData() {}

type RefExpr struct {
	Value   ExprID
	Mutable bool
}

func (RefExpr) exprData() {}

type FieldExpr struct {
	Object ExprID
	Field  string
}

func (FieldExpr) exprData() {}

type IndexExpr struct {
	Object ExprID
	Index  ExprID
}

func (IndexExpr) exprData() {}

type DerefExpr struct{ Value ExprID }

func (DerefExpr) exprData() {}

// UnOp enumerates the two supported unary operators.
type UnOp uint8

const (
	UnNeg UnOp = iota
	UnNot
)

type UnaryOpExpr struct {
	Op    UnOp
	Value ExprID
}

func (UnaryOpExpr) exprData() {}

// BinOp enumerates binary operators, including plain (non-compound)
// assignment, which spec.md §4.4 dispatches through the same node kind.
type BinOp uint8

const (
	BinAssign BinOp = iota
	BinLogicAnd
	BinLogicOr
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinRem
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

// IsLogic reports whether op is one of the short-circuit-in-name-only
// logical operators spec.md §4.4/§9 deliberately lowers as bitwise.
func (op BinOp) IsLogic() bool { return op == BinLogicAnd || op == BinLogicOr }

type BinaryOpExpr struct {
	Op    BinOp
	Left  ExprID
	Right ExprID
}

func (BinaryOpExpr) exprData() {}

type RangeExpr struct {
	Start ExprID // NoExprID for an open start
	End   ExprID // NoExprID for an open end
}

func (RangeExpr) exprData() {}

type TupleExpr struct{ Elems []ExprID }

func (TupleExpr) exprData() {}

type ArrayExpr struct{ Elems []ExprID }

func (ArrayExpr) exprData() {}

// LiteralKind enumerates literal value shapes.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralUint
	LiteralFloat
	LiteralBool
	LiteralChar
	LiteralString
	LiteralByteString
)

type LiteralExpr struct {
	Kind   LiteralKind
	Int    int64
	Uint   uint64
	Float  float64
	Bool   bool
	Char   rune
	String string
	Bytes  []byte
}

func (LiteralExpr) exprData() {}

// NotSupportedExpr is a zero-payload marker for recognized-but-rejected
// node kinds (Yield/Yeet/Await/Async/Closure/Box/Underscore/ArrayRepeat/
// CompoundAssign); the reason text lives in the NotSupported error, not here.
type NotSupportedExpr struct{}

func (NotSupportedExpr) exprData() {}
