package hir

// Param is a single function parameter: a pattern (almost always a plain
// binding, but decomposable per spec.md §4.8 step 5) plus its declared type.
type Param struct {
	Pattern PatternID
	Type    TypeRef
}

// Func is the type-checked body the core lowers: an expression arena, a
// pattern arena, a parameter list, and the id of the root expression.
// Exprs[0] and Patterns[0] are unused sentinels so ExprID/PatternID zero
// values mean "absent".
type Func struct {
	Name    string
	Def     DefID
	Params  []Param
	Root    ExprID
	Exprs   []Expr
	Patterns []Pattern
}

// Expr returns the node for id, panicking on an out-of-range id - callers
// are expected to only ever dereference ids obtained from this same Func.
func (f *Func) Expr(id ExprID) *Expr { return &f.Exprs[id] }

// Pattern returns the node for id.
func (f *Func) Pattern(id PatternID) *Pattern { return &f.Patterns[id] }

// Builder assembles a Func's arenas incrementally - the shape an upstream
// body-lowering stage (out of scope here) would use, and the shape this
// repository's own tests use to build fixtures.
type Builder struct {
	f Func
}

// NewBuilder returns a Builder with the sentinel zero entries pre-seeded.
func NewBuilder(name string) *Builder {
	b := &Builder{f: Func{Name: name, Exprs: []Expr{{}}, Patterns: []Pattern{{}}}}
	return b
}

// Add appends an expression and returns its id.
func (b *Builder) Add(e Expr) ExprID {
	id := ExprID(len(b.f.Exprs))
	b.f.Exprs = append(b.f.Exprs, e)
	return id
}

// AddPattern appends a pattern and returns its id.
func (b *Builder) AddPattern(p Pattern) PatternID {
	id := PatternID(len(b.f.Patterns))
	b.f.Patterns = append(b.f.Patterns, p)
	return id
}

// SetRoot sets the root (whole-body) expression.
func (b *Builder) SetRoot(id ExprID) { b.f.Root = id }

// AddParam appends a parameter.
func (b *Builder) AddParam(p Param) { b.f.Params = append(b.f.Params, p) }

// Build returns the assembled Func.
func (b *Builder) Build() *Func { return &b.f }
