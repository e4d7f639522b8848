package binding

import "testing"

func TestRefIdentity(t *testing.T) {
	a := TypeRef(3)
	b := TypeRef(3)
	if a != b {
		t.Fatalf("equal refs compare unequal")
	}
	seen := map[Ref]int{a: 1}
	if seen[b] != 1 {
		t.Fatalf("equal refs hash differently")
	}
	if TypeRef(3) == MethodRef(3) {
		t.Fatalf("refs of different kinds must differ")
	}
	if _, ok := MethodRef(3).Type(); ok {
		t.Fatalf("method ref must not unwrap as type")
	}
	if NoRef.IsValid() {
		t.Fatalf("zero ref reported valid")
	}
}

func TestQualifiedNames(t *testing.T) {
	u := NewUniverse()
	object := u.AddClass("java.lang", "Object", NoTypeID)
	outer := u.AddClass("com.example", "Outer", object)
	inner := u.AddNested(outer, "Inner", object)
	prim := u.AddPrimitive("int")

	cases := map[TypeID]string{
		object:           "java.lang.Object",
		inner:            "com.example.Outer.Inner",
		prim:             "int",
		u.ArrayOf(prim):  "int[]",
		u.ArrayOf(inner): "com.example.Outer.Inner[]",
	}
	for id, want := range cases {
		if got := u.QualifiedName(id); got != want {
			t.Fatalf("type %d: want %q, got %q", id, want, got)
		}
	}
	if id, ok := u.FindType("com.example.Outer.Inner"); !ok || id != inner {
		t.Fatalf("FindType returned %d, %v", id, ok)
	}
	if _, ok := u.FindType("com.example.Missing"); ok {
		t.Fatalf("FindType found a missing type")
	}
}

func TestArrayOfIsInterned(t *testing.T) {
	u := NewUniverse()
	prim := u.AddPrimitive("int")
	first := u.ArrayOf(prim)
	if second := u.ArrayOf(prim); second != first {
		t.Fatalf("ArrayOf created two array types: %d, %d", first, second)
	}
	if !u.Type(first).IsArray() {
		t.Fatalf("array type lacks array flag")
	}
}

func TestDeclarationNormalization(t *testing.T) {
	u := NewUniverse()
	list := u.AddClass("java.util", "List", NoTypeID)
	ofString := u.Instantiate(list, "List<String>")
	nested := u.Instantiate(ofString, "List<String>#2")

	if got := u.TypeDecl(nested); got != list {
		t.Fatalf("want declaration %d, got %d", list, got)
	}
	if got := u.Decl(TypeRef(ofString)); got != TypeRef(list) {
		t.Fatalf("Decl(ref) = %v", got)
	}

	u.Type(list).Decl = nested // malformed loop must still terminate
	_ = u.TypeDecl(list)
}
