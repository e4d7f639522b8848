package symbols

import (
	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolType
	SymbolMethod
	SymbolVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolType:
		return "type"
	case SymbolMethod:
		return "method"
	case SymbolVariable:
		return "variable"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagPrimitive SymbolFlags = 1 << iota
	SymbolFlagArray
	SymbolFlagInterface
	SymbolFlagLocal
	SymbolFlagField
	SymbolFlagParam
	SymbolFlagConstructor
	SymbolFlagRenamed
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	names := [...]struct {
		flag  SymbolFlags
		label string
	}{
		{SymbolFlagPrimitive, "primitive"},
		{SymbolFlagArray, "array"},
		{SymbolFlagInterface, "interface"},
		{SymbolFlagLocal, "local"},
		{SymbolFlagField, "field"},
		{SymbolFlagParam, "param"},
		{SymbolFlagConstructor, "constructor"},
		{SymbolFlagRenamed, "renamed"},
	}
	for _, n := range names {
		if f&n.flag != 0 {
			labels = append(labels, n.label)
		}
	}
	return labels
}

// Symbol is the translator's persistent, renameable stand-in for a binding.
//
// Scope is fixed at construction. Members is the member scope of a type or
// the parameter/local scope of a method; variables have none.
type Symbol struct {
	Name     source.StringID
	Original source.StringID // declared name, kept across renames
	Kind     SymbolKind
	Scope    ScopeID
	Members  ScopeID
	Decl     ast.NodeID
	Binding  binding.Ref
	Flags    SymbolFlags
}
