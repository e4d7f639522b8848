package naming

import (
	"testing"

	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/diag"
	"xlate/internal/source"
	"xlate/internal/symbols"
	"xlate/internal/trace"
)

func TestTypeNames(t *testing.T) {
	u := binding.NewUniverse()
	object := u.AddClass("java.lang", "Object", binding.NoTypeID)
	list := u.AddClass("java.util", "ArrayList", object)
	itr := u.AddNested(list, "ListItr", object)
	run := u.AddMethodTo(list, "run", binding.NoTypeID)
	local := u.AddLocalType(run, "Helper", object)
	anon := u.AddLocalType(run, "", object)
	intT := u.AddPrimitive("int")
	arr := u.ArrayOf(intT)
	guava := u.AddClass("com.google.common.collect", "Lists", object)
	mapped := u.AddClass("com.ex", "Special", object)

	n := New(Config{
		Prefixes: map[string]string{"com.google.common.*": "GG"},
		Classes:  map[string]string{"com.ex.Special": "XSpecial"},
	})
	cases := []struct {
		id   binding.TypeID
		want string
	}{
		{object, "JavaLangObject"},
		{itr, "JavaUtilArrayList_ListItr"},
		{local, "JavaUtilArrayList_1Helper"},
		{anon, "JavaUtilArrayList_2"},
		{intT, "int"},
		{arr, "int[]"},
		{guava, "GGLists"},
		{mapped, "XSpecial"},
	}
	for _, tc := range cases {
		if got := n.TypeName(u, tc.id); got != tc.want {
			t.Fatalf("TypeName(%s) = %q, want %q", u.QualifiedName(tc.id), got, tc.want)
		}
	}
	// memoized: the local ordinal does not advance on a second call
	if got := n.TypeName(u, local); got != "JavaUtilArrayList_1Helper" {
		t.Fatalf("second call = %q", got)
	}
}

func TestPackagePrefix(t *testing.T) {
	n := New(Config{Prefixes: map[string]string{
		"com.ex":       "EX",
		"com.ex.*":     "EXW",
		"com.ex.sub.*": "SUB",
	}})
	cases := map[string]struct {
		want   string
		mapped bool
	}{
		"com.ex":       {"EX", true},
		"com.ex.a":     {"EXW", true},
		"com.ex.sub.b": {"SUB", true},
		"com.example":  {"ComExample", false},
		"org.w3c.dom":  {"OrgW3cDom", false},
		"":             {"", false},
	}
	for pkg, want := range cases {
		got, mapped := n.PackagePrefix(pkg)
		if got != want.want || mapped != want.mapped {
			t.Fatalf("PackagePrefix(%q) = %q %v, want %q %v", pkg, got, mapped, want.want, want.mapped)
		}
	}
}

func TestMemberNames(t *testing.T) {
	n := New(Config{})
	cases := []struct {
		rec  binding.VarRecord
		want string
	}{
		{binding.VarRecord{Name: "initialize"}, "initialize_"},
		{binding.VarRecord{Name: "id", Flags: binding.VarField}, "id_"},
		{binding.VarRecord{Name: "in", Flags: binding.VarParam}, "inArg"},
		{binding.VarRecord{Name: "in"}, "in"},
		{binding.VarRecord{Name: "count", Flags: binding.VarParam}, "count"},
	}
	for _, tc := range cases {
		if got := n.VarName(&tc.rec); got != tc.want {
			t.Fatalf("VarName(%q) = %q, want %q", tc.rec.Name, got, tc.want)
		}
	}
	if got := n.MethodName(&binding.MethodRecord{Name: "hash"}); got != "hash_" {
		t.Fatalf("MethodName(hash) = %q", got)
	}
	if got := n.MethodName(&binding.MethodRecord{Name: "size"}); got != "size" {
		t.Fatalf("MethodName(size) = %q", got)
	}
}

func TestApplyRenamesThroughContext(t *testing.T) {
	u := binding.NewUniverse()
	object := u.AddClass("java.lang", "Object", binding.NoTypeID)
	foo := u.AddClass("com.ex", "Foo", object)
	m := u.AddMethodTo(foo, "copy", binding.NoTypeID)
	p := u.AddParam(m, "out", object)

	unit := ast.NewUnit("Foo.java", source.FileID(1))
	decl := unit.Add(unit.Root(), ast.NodeTypeDecl, binding.TypeRef(foo))
	unit.Add(decl, ast.NodeMethodDecl, binding.MethodRef(m))

	s := symbols.NewSession(u, symbols.Options{})
	ctx := s.Initialize(unit)
	bag := diag.NewBag(16)
	renames := Apply(ctx, New(Config{}), diag.BagReporter{Bag: bag}, trace.Nop)

	got := make(map[string]string, len(renames))
	for _, r := range renames {
		got[r.From] = r.To
	}
	want := map[string]string{
		"Object": "JavaLangObject",
		"Foo":    "ComExFoo",
		"copy":   "copy_",
		"out":    "outArg",
	}
	for from, to := range want {
		if got[from] != to {
			t.Fatalf("rename %q = %q, want %q (all: %v)", from, got[from], to, got)
		}
	}
	fooSym, _ := ctx.SymbolOf(binding.TypeRef(foo))
	if ctx.Name(fooSym) != "ComExFoo" {
		t.Fatalf("context does not observe rename")
	}
	pSym, _ := ctx.SymbolOf(binding.VarRef(p))
	if ctx.Name(pSym) != "outArg" {
		t.Fatalf("param name = %q", ctx.Name(pSym))
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 info diagnostics, got %d", bag.Len())
	}
	if err := ctx.Table().Validate(); err != nil {
		t.Fatalf("validate after rename: %v", err)
	}
}
