package hir

import "bodymir/internal/source"

// PatternKind enumerates the pattern shapes patmatch (mirlower/pattern.go)
// compiles into branching MIR code per spec.md §4.5.
type PatternKind uint8

const (
	// PatWildcard matches anything and binds nothing (`_`).
	PatWildcard PatternKind = iota
	// PatBinding binds the scrutinee (or a projection of it, for an `@`
	// sub-pattern) to a name.
	PatBinding
	// PatLiteral matches an exact literal value.
	PatLiteral
	// PatTuple matches a tuple positionally.
	PatTuple
	// PatStruct matches a struct by named fields.
	PatStruct
	// PatVariant matches a tagged-union variant, optionally destructuring
	// its tuple or struct payload.
	PatVariant
	// PatRef matches through a reference (`&pat` / `&mut pat`).
	PatRef
)

// BindingMode distinguishes how a PatBinding takes the scrutinee.
type BindingMode uint8

const (
	BindMove BindingMode = iota
	BindRef
	BindRefMut
)

// FieldPattern is one named-or-positional field of a PatStruct/PatVariant.
type FieldPattern struct {
	// Name is "" for a positional (tuple-variant) field.
	Name    string
	Pattern PatternID
}

// Pattern is one node of a pattern tree.
type Pattern struct {
	Kind PatternKind
	Span source.Span

	// PatBinding
	Binding     BindingID
	BindingMode BindingMode
	Sub         PatternID // NoPatternID unless this is an `@` sub-pattern

	// PatLiteral
	Literal LiteralExpr

	// PatTuple
	Elems []PatternID

	// PatStruct / PatVariant
	VariantName string // "" for PatStruct
	Fields      []FieldPattern

	// PatRef
	RefMutable bool
	RefInner   PatternID
}

// Bindings appends every BindingID this pattern (recursively) introduces,
// in traversal order, to out.
func Bindings(patterns []Pattern, root PatternID, out []BindingID) []BindingID {
	if root == NoPatternID || int(root) >= len(patterns) {
		return out
	}
	p := &patterns[root]
	switch p.Kind {
	case PatBinding:
		if p.Binding != NoBindingID {
			out = append(out, p.Binding)
		}
		if p.Sub != NoPatternID {
			out = Bindings(patterns, p.Sub, out)
		}
	case PatTuple:
		for _, e := range p.Elems {
			out = Bindings(patterns, e, out)
		}
	case PatStruct, PatVariant:
		for _, f := range p.Fields {
			out = Bindings(patterns, f.Pattern, out)
		}
	case PatRef:
		out = Bindings(patterns, p.RefInner, out)
	}
	return out
}

// IsIrrefutable reports whether the pattern can never fail to match -
// wildcards, plain bindings, and structurally-complete tuples/structs of
// irrefutable sub-patterns, and refs over irrefutable inner patterns.
// Variant and literal patterns are always refutable (a union may carry
// other tags; a literal may not equal the scrutinee).
func IsIrrefutable(patterns []Pattern, root PatternID) bool {
	if root == NoPatternID || int(root) >= len(patterns) {
		return true
	}
	p := &patterns[root]
	switch p.Kind {
	case PatWildcard:
		return true
	case PatBinding:
		if p.Sub == NoPatternID {
			return true
		}
		return IsIrrefutable(patterns, p.Sub)
	case PatTuple:
		for _, e := range p.Elems {
			if !IsIrrefutable(patterns, e) {
				return false
			}
		}
		return true
	case PatStruct:
		for _, f := range p.Fields {
			if !IsIrrefutable(patterns, f.Pattern) {
				return false
			}
		}
		return true
	case PatRef:
		return IsIrrefutable(patterns, p.RefInner)
	default:
		return false
	}
}
