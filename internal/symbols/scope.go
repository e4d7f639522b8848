package symbols

import (
	"xlate/internal/ast"
	"xlate/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeGlobal            // the single root
	ScopeType              // member scope of a type symbol
	ScopeMethod            // parameters and locals of a method
	ScopeBlock             // block, loop, catch, lambda, switch
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeType:
		return "type"
	case ScopeMethod:
		return "method"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is a named container of symbols with at most one parent. Scopes form
// a tree under the table's global scope even when the class graph is cyclic.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     SymbolID   // type or method owning the scope; none for blocks
	Node      ast.NodeID // AST node that opened the scope, when known
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID // every symbol ever defined here, in order
	Children  []ScopeID
}
