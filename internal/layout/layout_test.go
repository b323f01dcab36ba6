package layout

import (
	"testing"

	"bodymir/internal/types"
)

func TestLayoutOfPrimitives(t *testing.T) {
	in := types.NewInterner()
	e := New(X86_64LinuxGNU(), in)

	sz, err := e.SizeOf(in.Builtins.Int32)
	if err != nil || sz != 4 {
		t.Fatalf("expected int32 size 4, got %d err=%v", sz, err)
	}
	sz, err = e.SizeOf(in.Builtins.Bool)
	if err != nil || sz != 1 {
		t.Fatalf("expected bool size 1, got %d err=%v", sz, err)
	}
}

func TestLayoutOfStructPacksFieldsInDeclarationOrder(t *testing.T) {
	in := types.NewInterner()
	e := New(X86_64LinuxGNU(), in)

	st := in.RegisterStruct("Pair", []types.StructField{
		{Name: "a", Type: in.Builtins.Int8},
		{Name: "b", Type: in.Builtins.Int32},
	})
	tl, err := e.LayoutOf(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tl.FieldOffsets[0] != 0 || tl.FieldOffsets[1] != 4 {
		t.Fatalf("expected padding before b, got offsets %v", tl.FieldOffsets)
	}
	if tl.Size != 8 {
		t.Fatalf("expected padded size 8, got %d", tl.Size)
	}
}

func TestSizeOfUnsizedArrayFails(t *testing.T) {
	in := types.NewInterner()
	e := New(X86_64LinuxGNU(), in)

	slice := in.Intern(types.MakeArray(in.Builtins.Int, types.ArrayDynamicLength))
	if _, err := e.SizeOf(slice); err == nil {
		t.Fatalf("expected an error sizing an unsized array")
	}
}

func TestRecursiveStructIsRejected(t *testing.T) {
	in := types.NewInterner()
	e := New(X86_64LinuxGNU(), in)

	// Register a struct whose own field type is itself - not expressible via
	// the exported API in one step, so poke the arena directly the way a
	// resolver building a recursive type error would reach this state.
	st := in.RegisterStruct("Rec", nil)
	info, _ := in.StructInfo(st)
	info.Fields = []types.StructField{{Name: "self", Type: st}}

	if _, err := e.LayoutOf(st); err == nil {
		t.Fatalf("expected recursive-size error")
	}
}
