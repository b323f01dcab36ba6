package types

import (
	"slices"

	"fortio.org/safecast"
)

// StructField describes a single declared field of a struct type, in
// declaration order - the order RecordLit aggregates rely on.
type StructField struct {
	Name string
	Type TypeID
}

// StructInfo stores metadata for a struct (record) type.
type StructInfo struct {
	Name   string
	Fields []StructField
}

// RegisterStruct allocates a nominal struct type slot and returns its TypeID.
func (in *Interner) RegisterStruct(name string, fields []StructField) TypeID {
	slot, err := safecast.Conv[uint32](len(in.structs))
	if err != nil {
		panic("types: struct arena overflow")
	}
	in.structs = append(in.structs, StructInfo{Name: name, Fields: fields})
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// StructInfo returns metadata for a struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct || int(tt.Payload) >= len(in.structs) {
		return nil, false
	}
	return &in.structs[tt.Payload], true
}

// FieldIndex returns the declared index of name within the struct, used to
// keep RecordLit aggregates ordered by declaration rather than by source
// literal order.
func (in *StructInfo) FieldIndex(name string) (int, bool) {
	for i, f := range in.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// UnionVariantKind distinguishes the shape of a tagged-union variant.
type UnionVariantKind uint8

const (
	// VariantUnit carries no payload.
	VariantUnit UnionVariantKind = iota
	// VariantTuple carries positional payload fields.
	VariantTuple
	// VariantStruct carries named payload fields.
	VariantStruct
)

// UnionVariant describes one variant of a tagged-union (enum) type.
type UnionVariant struct {
	Name   string
	Kind   UnionVariantKind
	Fields []StructField // positional Name=="" for VariantTuple
}

// UnionInfo stores metadata for a tagged-union (enum) type.
type UnionInfo struct {
	Name     string
	Variants []UnionVariant
}

func (in *UnionInfo) hasPayload() bool {
	for _, v := range in.Variants {
		if v.Kind != VariantUnit {
			return true
		}
	}
	return false
}

// VariantByName finds a variant and its index by name.
func (in *UnionInfo) VariantByName(name string) (int, *UnionVariant, bool) {
	for i := range in.Variants {
		if in.Variants[i].Name == name {
			return i, &in.Variants[i], true
		}
	}
	return 0, nil, false
}

// RegisterUnion allocates a nominal tagged-union type slot.
func (in *Interner) RegisterUnion(name string, variants []UnionVariant) TypeID {
	slot, err := safecast.Conv[uint32](len(in.unions))
	if err != nil {
		panic("types: union arena overflow")
	}
	in.unions = append(in.unions, UnionInfo{Name: name, Variants: variants})
	return in.internRaw(Type{Kind: KindUnion, Payload: slot})
}

// UnionInfo returns metadata for a union TypeID.
func (in *Interner) UnionInfo(id TypeID) (*UnionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion || int(tt.Payload) >= len(in.unions) {
		return nil, false
	}
	return &in.unions[tt.Payload], true
}

// TupleInfo stores the element types for a tuple type.
type TupleInfo struct {
	Elems []TypeID
}

// RegisterTuple creates or finds an existing tuple type with the given elements.
func (in *Interner) RegisterTuple(elems []TypeID) TypeID {
	for slot := 1; slot < len(in.tuples); slot++ {
		if slices.Equal(in.tuples[slot].Elems, elems) {
			return in.internRaw(Type{Kind: KindTuple, Payload: uint32(slot)})
		}
	}
	cloned := append([]TypeID(nil), elems...)
	slot, err := safecast.Conv[uint32](len(in.tuples))
	if err != nil {
		panic("types: tuple arena overflow")
	}
	in.tuples = append(in.tuples, TupleInfo{Elems: cloned})
	return in.internRaw(Type{Kind: KindTuple, Payload: slot})
}

// TupleInfo returns the element types for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}

// FnInfo stores the signature of a function type.
type FnInfo struct {
	Params []TypeID
	Result TypeID
}

// RegisterFn creates or finds an existing function type with the given signature.
func (in *Interner) RegisterFn(params []TypeID, result TypeID) TypeID {
	for slot := 1; slot < len(in.fns); slot++ {
		if in.fns[slot].Result == result && slices.Equal(in.fns[slot].Params, params) {
			return in.internRaw(Type{Kind: KindFn, Payload: uint32(slot)})
		}
	}
	cloned := append([]TypeID(nil), params...)
	slot, err := safecast.Conv[uint32](len(in.fns))
	if err != nil {
		panic("types: fn arena overflow")
	}
	in.fns = append(in.fns, FnInfo{Params: cloned, Result: result})
	return in.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo returns the signature for a fn TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}
