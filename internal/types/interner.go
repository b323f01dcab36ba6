package types

import "fortio.org/safecast"

// Builtins stores TypeIDs for the common primitive types, interned once
// at Interner construction so callers never need to re-intern them.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Nothing TypeID
	Bool    TypeID
	String  TypeID
	Char    TypeID
	Int     TypeID
	Int8    TypeID
	Int16   TypeID
	Int32   TypeID
	Int64   TypeID
	Uint    TypeID
	Uint8   TypeID
	Uint16  TypeID
	Uint32  TypeID
	Uint64  TypeID
	Float32 TypeID
	Float64 TypeID
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32
	Width   Width
	Mutable bool
	Payload uint32
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types []Type
	index map[typeKey]TypeID

	structs []StructInfo
	unions  []UnionInfo
	tuples  []TupleInfo
	fns     []FnInfo

	Builtins Builtins
}

// NewInterner allocates an Interner with the builtin primitives pre-registered.
func NewInterner() *Interner {
	in := &Interner{
		types:   []Type{{}}, // index 0 == NoTypeID
		index:   make(map[typeKey]TypeID, 64),
		structs: []StructInfo{{}},
		unions:  []UnionInfo{{}},
		tuples:  []TupleInfo{{}},
		fns:     []FnInfo{{}},
	}
	in.Builtins = Builtins{
		Invalid: in.internRaw(Type{Kind: KindInvalid}),
		Unit:    in.internRaw(Type{Kind: KindUnit}),
		Nothing: in.internRaw(Type{Kind: KindNothing}),
		Bool:    in.internRaw(Type{Kind: KindBool}),
		String:  in.internRaw(Type{Kind: KindString}),
		Char:    in.internRaw(Type{Kind: KindChar}),
		Int:     in.internRaw(Type{Kind: KindInt, Width: WidthAny}),
		Int8:    in.internRaw(Type{Kind: KindInt, Width: Width8}),
		Int16:   in.internRaw(Type{Kind: KindInt, Width: Width16}),
		Int32:   in.internRaw(Type{Kind: KindInt, Width: Width32}),
		Int64:   in.internRaw(Type{Kind: KindInt, Width: Width64}),
		Uint:    in.internRaw(Type{Kind: KindUint, Width: WidthAny}),
		Uint8:   in.internRaw(Type{Kind: KindUint, Width: Width8}),
		Uint16:  in.internRaw(Type{Kind: KindUint, Width: Width16}),
		Uint32:  in.internRaw(Type{Kind: KindUint, Width: Width32}),
		Uint64:  in.internRaw(Type{Kind: KindUint, Width: Width64}),
		Float32: in.internRaw(Type{Kind: KindFloat, Width: Width32}),
		Float64: in.internRaw(Type{Kind: KindFloat, Width: Width64}),
	}
	return in
}

func (in *Interner) internRaw(t Type) TypeID {
	key := typeKey{Kind: t.Kind, Elem: t.Elem, Count: t.Count, Width: t.Width, Mutable: t.Mutable, Payload: t.Payload}
	if id, ok := in.index[key]; ok {
		return id
	}
	id, err := safecast.Conv[TypeID](len(in.types))
	if err != nil {
		panic("types: interner overflow")
	}
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid; callers that already validated id
// (e.g. immediately after interning it) use this to avoid a spurious ok check.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Intern looks up or interns an array/pointer/reference/primitive descriptor
// not backed by nominal out-of-line info.
func (in *Interner) Intern(t Type) TypeID {
	return in.internRaw(t)
}

// IsCopy reports whether values of type id can be implicitly copied rather
// than moved. Bool/int/uint/float/char, unit, nothing, raw pointers, shared
// references, function types, and enum-shaped unions (no payload-carrying
// variant) are Copy; strings, structs, arrays, tuples, and mutable
// references are not.
func (in *Interner) IsCopy(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindBool, KindInt, KindUint, KindFloat, KindChar, KindUnit, KindNothing, KindPointer, KindFn:
		return true
	case KindReference:
		return !tt.Mutable
	case KindUnion:
		info, ok := in.UnionInfo(id)
		return ok && !info.hasPayload()
	default:
		return false
	}
}

// IsUnsized reports whether id cannot be the type of a MIR temporary: the
// only unsized shape this type system admits is a slice-tailed array
// (Count == ArrayDynamicLength).
func (in *Interner) IsUnsized(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	return tt.Kind == KindArray && tt.Count == ArrayDynamicLength
}

// SizeHintWidth returns the declared bit width for an integer/float/uint
// type, resolving WidthAny to the platform pointer-sized default of 64.
func SizeHintWidth(w Width) int {
	if w == WidthAny {
		return 64
	}
	return int(w)
}
