// Package resolve is the name-resolution query boundary spec.md §6 lists
// as an external collaborator: "path -> value-namespace resolution;
// variant/associated-item resolution". Name resolution itself is out of
// scope for the core (spec.md §1); this package only fixes the interface
// mirlower calls through.
package resolve

import (
	"bodymir/internal/hir"
	"bodymir/internal/types"
)

// Kind classifies what a Path expression resolved to.
type Kind uint8

const (
	// KindUnresolved marks a name the resolver could not find.
	KindUnresolved Kind = iota
	// KindBinding resolves to a local binding (let/param/match-arm capture).
	KindBinding
	// KindConst resolves to a named constant item.
	KindConst
	// KindUnitVariant resolves to a tagged-union variant with no payload.
	KindUnitVariant
	// KindTupleVariantOrFn resolves to a tuple-like variant constructor or
	// a plain function item - both are zero-sized function-typed values.
	KindTupleVariantOrFn
	// KindGenericConstParam resolves to a const generic parameter.
	KindGenericConstParam
	// KindAssocConst resolves to an associated constant on a contract/trait impl.
	KindAssocConst
)

// Resolution is what resolving a Path expression produced.
type Resolution struct {
	Kind Kind

	Binding hir.BindingID
	Def     hir.DefID

	// VariantName is the resolved variant's declared name, set for
	// KindUnitVariant (and KindTupleVariantOrFn when it names a variant
	// constructor rather than a plain function) - the union's own
	// ordinal numbering (UnionInfo.VariantByName) is keyed on this name,
	// not on Def, so callers that need the variant's tag index must
	// resolve it through this field rather than through Def.
	VariantName string

	// FnType is the function type of a KindTupleVariantOrFn resolution -
	// the zero-sized operand's type per spec.md §4.4's Path dispatch row.
	FnType types.TypeID

	// GenericConstIndex identifies which const generic parameter this is.
	GenericConstIndex int
}

// Resolver resolves Path expressions and the type of a RecordLit
// expression. Method/UFCS call targets are not resolved here; mirlower
// reads them from infer.Result.MethodResolution.
type Resolver interface {
	// ResolvePath resolves the Path expression `expr` within `fn`.
	ResolvePath(fn *hir.Func, expr hir.ExprID) (Resolution, error)

	// ResolveRecordVariant resolves the type/variant path of a RecordLit
	// expression, returning the aggregate's TypeID. For a tagged-union
	// literal the variant name is not returned; callers read it from the
	// expression payload (hir.RecordLitExpr.VariantName).
	ResolveRecordVariant(fn *hir.Func, expr hir.ExprID) (types.TypeID, error)
}
