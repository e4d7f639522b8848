package symbols

import (
	"xlate/internal/ast"
	"xlate/internal/binding"
)

// Resolver turns a binding into its symbol. *Context implements it.
type Resolver interface {
	Resolve(ref binding.Ref) SymbolID
}

// BuildScopes walks the subtree at root and returns the scope active at every
// scope-introducing node in it. parent is the scope enclosing root. Block
// scopes already present in existing are reused rather than allocated again
// when they still hang off the same enclosing scope, so rescanning a subtree
// is stable. existing is not modified.
func BuildScopes(t *Table, r Resolver, unit *ast.Unit, root ast.NodeID, parent ScopeID, existing map[ast.NodeID]ScopeID) map[ast.NodeID]ScopeID {
	b := scopeBuilder{t: t, r: r, unit: unit, existing: existing, out: make(map[ast.NodeID]ScopeID)}
	if !parent.IsValid() {
		parent = t.Global
	}
	b.visit(root, parent)
	return b.out
}

type scopeBuilder struct {
	t        *Table
	r        Resolver
	unit     *ast.Unit
	existing map[ast.NodeID]ScopeID
	out      map[ast.NodeID]ScopeID
}

func (b *scopeBuilder) visit(id ast.NodeID, current ScopeID) {
	n := b.unit.Node(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.NodeUnit:
		current = b.t.Global
		b.out[id] = current
	case ast.NodeTypeDecl, ast.NodeMethodDecl:
		if s := b.t.Symbols.Get(b.declared(id, n.Binding)); s != nil && s.Members.IsValid() {
			current = s.Members
		}
		b.out[id] = current
	case ast.NodeFieldDecl, ast.NodeVarDecl, ast.NodeParam:
		b.declared(id, n.Binding)
	case ast.NodeBlock, ast.NodeFor, ast.NodeCatch, ast.NodeLambda, ast.NodeSwitch:
		if s, ok := b.existing[id]; ok && b.t.Scopes.Get(s).Parent == current {
			current = s
		} else {
			current = b.t.Scopes.New(ScopeBlock, current, NoSymbolID, id)
		}
		b.out[id] = current
	}
	for _, child := range n.Children {
		b.visit(child, current)
	}
}

// declared resolves the binding declared at id and ties the symbol to the
// node when it has no declaration yet.
func (b *scopeBuilder) declared(id ast.NodeID, ref binding.Ref) SymbolID {
	if !ref.IsValid() {
		return NoSymbolID
	}
	sym := b.r.Resolve(ref)
	if sym.IsValid() {
		b.t.attachDecl(sym, id)
	}
	return sym
}
