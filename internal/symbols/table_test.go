package symbols

import (
	"strings"
	"testing"

	"xlate/internal/ast"
	"xlate/internal/binding"
)

func TestTableGlobalScope(t *testing.T) {
	table := NewTable(Hints{}, nil)
	if !table.Global.IsValid() {
		t.Fatalf("expected valid global scope")
	}
	global := table.Scopes.Get(table.Global)
	if global.Kind != ScopeGlobal || global.Parent.IsValid() {
		t.Fatalf("unexpected global scope %+v", global)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableLookupShadowing(t *testing.T) {
	table := NewTable(Hints{}, nil)
	name := table.Strings.Intern("value")

	outer := table.declare(Symbol{Name: name, Kind: SymbolVariable}, table.Global)
	inner := table.Scopes.New(ScopeBlock, table.Global, NoSymbolID, ast.NoNodeID)
	shadow := table.declare(Symbol{Name: name, Kind: SymbolVariable}, inner)

	if got, ok := table.Lookup(inner, "value"); !ok || got != shadow {
		t.Fatalf("inner lookup = %v %v, want %v", got, ok, shadow)
	}
	if got, ok := table.Lookup(table.Global, "value"); !ok || got != outer {
		t.Fatalf("outer lookup = %v %v, want %v", got, ok, outer)
	}
	if _, ok := table.LookupLocal(inner, "missing"); ok {
		t.Fatalf("expected missing name to be absent")
	}
	child := table.Scopes.New(ScopeBlock, inner, NoSymbolID, ast.NoNodeID)
	if got, ok := table.Lookup(child, "value"); !ok || got != shadow {
		t.Fatalf("child lookup = %v %v, want %v", got, ok, shadow)
	}
	if _, ok := table.LookupLocal(child, "value"); ok {
		t.Fatalf("LookupLocal must not walk parents")
	}
	chain := table.Chain(child)
	if len(chain) != 3 || chain[0] != child || chain[2] != table.Global {
		t.Fatalf("unexpected chain %v", chain)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableRenameReindexes(t *testing.T) {
	table := NewTable(Hints{}, nil)
	id := table.declare(Symbol{Name: table.Strings.Intern("Foo"), Kind: SymbolType}, table.Global)

	table.rename(id, "ComExFoo")

	if _, ok := table.LookupLocal(table.Global, "Foo"); ok {
		t.Fatalf("old name still indexed")
	}
	if got, ok := table.LookupLocal(table.Global, "ComExFoo"); !ok || got != id {
		t.Fatalf("new name lookup = %v %v", got, ok)
	}
	sym := table.Symbols.Get(id)
	if table.Strings.MustLookup(sym.Original) != "Foo" {
		t.Fatalf("original name lost")
	}
	if sym.Flags&SymbolFlagRenamed == 0 {
		t.Fatalf("renamed flag not set")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableRenameKeepsShadowingEntry(t *testing.T) {
	table := NewTable(Hints{}, nil)
	name := table.Strings.Intern("dup")
	first := table.declare(Symbol{Name: name, Kind: SymbolMethod}, table.Global)
	second := table.declare(Symbol{Name: name, Kind: SymbolMethod}, table.Global)

	// first no longer owns the index slot, so renaming it must leave second in place
	table.rename(first, "dup_")
	if got, _ := table.LookupLocal(table.Global, "dup"); got != second {
		t.Fatalf("dup lookup = %v, want %v", got, second)
	}
	if got, _ := table.LookupLocal(table.Global, "dup_"); got != first {
		t.Fatalf("dup_ lookup = %v, want %v", got, first)
	}
}

func TestTableRebind(t *testing.T) {
	table := NewTable(Hints{}, nil)
	oldRef := binding.TypeRef(1)
	newRef := binding.TypeRef(2)
	id := table.declare(Symbol{Name: table.Strings.Intern("T"), Kind: SymbolType, Binding: oldRef}, table.Global)

	table.rebind(id, newRef)

	if _, ok := table.SymbolFor(oldRef); ok {
		t.Fatalf("old binding still indexed")
	}
	if got, ok := table.SymbolFor(newRef); !ok || got != id {
		t.Fatalf("new binding lookup = %v %v", got, ok)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	table := NewTable(Hints{}, nil)
	id := table.declare(Symbol{Name: table.Strings.Intern("x"), Kind: SymbolVariable}, table.Global)
	other := table.Scopes.New(ScopeBlock, table.Global, NoSymbolID, ast.NoNodeID)

	table.Symbols.Get(id).Scope = other

	err := table.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "missing from scope") {
		t.Fatalf("unexpected error: %v", err)
	}
}
