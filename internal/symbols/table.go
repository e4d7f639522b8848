package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the symbol and scope arenas with the binding → symbol
// index. It is the single source of truth: at most one symbol per
// declaration-form binding, growing until the owning context is cleaned up.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	Global  ScopeID

	byBinding map[binding.Ref]SymbolID
	byDecl    map[ast.NodeID]SymbolID
}

// NewTable builds a fresh table holding only the global scope. If strings is
// nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Scopes:    NewScopes(scopeCap),
		Symbols:   NewSymbols(symCap),
		Strings:   strings,
		byBinding: make(map[binding.Ref]SymbolID, symCap),
		byDecl:    make(map[ast.NodeID]SymbolID),
	}
	t.Global = t.Scopes.New(ScopeGlobal, NoScopeID, NoSymbolID, ast.NoNodeID)
	return t
}

// Define registers id under its current name in scope, replacing whatever
// this scope had under that name. Outer scopes are untouched.
func (t *Table) Define(scopeID ScopeID, id SymbolID) {
	scope := t.Scopes.Get(scopeID)
	sym := t.Symbols.Get(id)
	if scope == nil || sym == nil {
		panic(fmt.Errorf("define %s in %s: invalid reference", id, scopeID))
	}
	scope.NameIndex[sym.Name] = id
	scope.Symbols = append(scope.Symbols, id)
}

// LookupLocal finds name in scope only.
func (t *Table) LookupLocal(scopeID ScopeID, name string) (SymbolID, bool) {
	nameID, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	id, ok := scope.NameIndex[nameID]
	return id, ok
}

// Lookup walks from scope to the root and returns the nearest symbol named
// name.
func (t *Table) Lookup(scopeID ScopeID, name string) (SymbolID, bool) {
	nameID, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	for scopeID.IsValid() {
		scope := t.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		if id, ok := scope.NameIndex[nameID]; ok {
			return id, true
		}
		scopeID = scope.Parent
	}
	return NoSymbolID, false
}

// Chain lists scope and its ancestors, innermost first.
func (t *Table) Chain(scopeID ScopeID) []ScopeID {
	var chain []ScopeID
	for steps := 0; scopeID.IsValid() && steps <= t.Scopes.Len(); steps++ {
		chain = append(chain, scopeID)
		scope := t.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		scopeID = scope.Parent
	}
	return chain
}

// SymbolFor returns the symbol resolved for ref. ref must already be in
// declaration form.
func (t *Table) SymbolFor(ref binding.Ref) (SymbolID, bool) {
	id, ok := t.byBinding[ref]
	return id, ok
}

// DeclaredAt returns the symbol whose declaration is node.
func (t *Table) DeclaredAt(node ast.NodeID) (SymbolID, bool) {
	id, ok := t.byDecl[node]
	return id, ok
}

// Name returns the current name of id.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	return t.Strings.MustLookup(sym.Name)
}

// declare allocates sym, homes it in scope and indexes it. This is the only
// place symbols are created, so each symbol gets exactly one Define.
func (t *Table) declare(sym Symbol, scope ScopeID) SymbolID {
	if t.Scopes.Get(scope) == nil {
		panic(fmt.Errorf("declare %q: no home scope", t.Strings.MustLookup(sym.Name)))
	}
	sym.Scope = scope
	sym.Original = sym.Name
	id := t.Symbols.New(&sym)
	t.Define(scope, id)
	if sym.Binding.IsValid() {
		t.byBinding[sym.Binding] = id
	}
	if sym.Decl.IsValid() {
		t.byDecl[sym.Decl] = id
	}
	return id
}

// rename swaps id's name and keeps its home scope's index in step.
func (t *Table) rename(id SymbolID, name string) {
	sym := t.Symbols.Get(id)
	if sym == nil {
		panic(fmt.Errorf("rename %s: no such symbol", id))
	}
	next := t.Strings.Intern(name)
	if next == sym.Name {
		return
	}
	if scope := t.Scopes.Get(sym.Scope); scope != nil {
		if scope.NameIndex[sym.Name] == id {
			delete(scope.NameIndex, sym.Name)
		}
		scope.NameIndex[next] = id
	}
	sym.Name = next
	sym.Flags |= SymbolFlagRenamed
}

// rebind points id at a superseding binding without changing its identity.
func (t *Table) rebind(id SymbolID, ref binding.Ref) {
	sym := t.Symbols.Get(id)
	if sym == nil {
		panic(fmt.Errorf("rebind %s: no such symbol", id))
	}
	if t.byBinding[sym.Binding] == id {
		delete(t.byBinding, sym.Binding)
	}
	sym.Binding = ref
	if ref.IsValid() {
		t.byBinding[ref] = id
	}
}

// attachDecl sets id's declaration if it has none yet.
func (t *Table) attachDecl(id SymbolID, node ast.NodeID) {
	sym := t.Symbols.Get(id)
	if sym == nil || sym.Decl.IsValid() || !node.IsValid() {
		return
	}
	sym.Decl = node
	t.byDecl[node] = id
}

// migrateDecl moves the declaration association from old to replacement.
func (t *Table) migrateDecl(old, replacement ast.NodeID) {
	id, ok := t.byDecl[old]
	if !ok {
		return
	}
	delete(t.byDecl, old)
	if sym := t.Symbols.Get(id); sym != nil {
		sym.Decl = replacement
	}
	t.byDecl[replacement] = id
}
