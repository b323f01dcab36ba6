package types

import "testing"

func TestInternerDedupesStructurallyEqualTypes(t *testing.T) {
	in := NewInterner()

	a := in.Intern(MakeArray(in.Builtins.Int32, 4))
	b := in.Intern(MakeArray(in.Builtins.Int32, 4))
	if a != b {
		t.Fatalf("expected identical array descriptors to intern to the same id, got %d and %d", a, b)
	}

	c := in.Intern(MakeArray(in.Builtins.Int32, 5))
	if a == c {
		t.Fatalf("expected different array lengths to intern to different ids")
	}
}

func TestIsCopy(t *testing.T) {
	in := NewInterner()

	if !in.IsCopy(in.Builtins.Int) {
		t.Errorf("int should be Copy")
	}
	if in.IsCopy(in.Builtins.String) {
		t.Errorf("string should not be Copy")
	}
	mutRef := in.Intern(MakeReference(in.Builtins.Int, true))
	if in.IsCopy(mutRef) {
		t.Errorf("&mut T should not be Copy")
	}
	sharedRef := in.Intern(MakeReference(in.Builtins.Int, false))
	if !in.IsCopy(sharedRef) {
		t.Errorf("&T should be Copy")
	}
}

func TestIsUnsized(t *testing.T) {
	in := NewInterner()

	fixed := in.Intern(MakeArray(in.Builtins.Int, 4))
	if in.IsUnsized(fixed) {
		t.Errorf("fixed-length array should be sized")
	}
	slice := in.Intern(MakeArray(in.Builtins.Int, ArrayDynamicLength))
	if !in.IsUnsized(slice) {
		t.Errorf("dynamic-length array should be unsized")
	}
}

func TestStructFieldIndexMatchesDeclarationOrder(t *testing.T) {
	in := NewInterner()
	st := in.RegisterStruct("Point", []StructField{
		{Name: "x", Type: in.Builtins.Int32},
		{Name: "y", Type: in.Builtins.Int32},
	})
	info, ok := in.StructInfo(st)
	if !ok {
		t.Fatalf("expected struct info")
	}
	idx, ok := info.FieldIndex("y")
	if !ok || idx != 1 {
		t.Fatalf("expected y at index 1, got %d ok=%v", idx, ok)
	}
}
