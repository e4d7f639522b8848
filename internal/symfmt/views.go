// Package symfmt renders symbol tables, scope trees and renames as text,
// JSON or YAML.
package symfmt

import (
	"sort"

	"xlate/internal/diag"
	"xlate/internal/driver"
	"xlate/internal/naming"
	"xlate/internal/observ"
	"xlate/internal/source"
	"xlate/internal/symbols"
)

// SymbolView is the printable form of a symbol.
type SymbolView struct {
	ID        uint32   `json:"id" yaml:"id"`
	Kind      string   `json:"kind" yaml:"kind"`
	Name      string   `json:"name" yaml:"name"`
	Original  string   `json:"original,omitempty" yaml:"original,omitempty"`
	Qualified string   `json:"qualified,omitempty" yaml:"qualified,omitempty"`
	Binding   string   `json:"binding" yaml:"binding"`
	Scope     uint32   `json:"scope" yaml:"scope"`
	Members   uint32   `json:"members,omitempty" yaml:"members,omitempty"`
	Decl      uint32   `json:"decl,omitempty" yaml:"decl,omitempty"`
	Flags     []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// ScopeView is one node of the scope tree.
type ScopeView struct {
	ID       uint32      `json:"id" yaml:"id"`
	Kind     string      `json:"kind" yaml:"kind"`
	Owner    string      `json:"owner,omitempty" yaml:"owner,omitempty"`
	Node     uint32      `json:"node,omitempty" yaml:"node,omitempty"`
	Names    []string    `json:"names,omitempty" yaml:"names,omitempty"`
	Children []ScopeView `json:"children,omitempty" yaml:"children,omitempty"`
}

// RenameView is one applied rename.
type RenameView struct {
	Kind string `json:"kind" yaml:"kind"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// UnitView groups everything printed for one compilation unit.
type UnitView struct {
	Path        string         `json:"path" yaml:"path"`
	Symbols     []SymbolView   `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Scopes      *ScopeView     `json:"scopes,omitempty" yaml:"scopes,omitempty"`
	Renames     []RenameView   `json:"renames,omitempty" yaml:"renames,omitempty"`
	Diagnostics []string       `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Timing      *observ.Report `json:"timing,omitempty" yaml:"timing,omitempty"`
}

// Symbols lists every symbol of ctx in allocation order.
func Symbols(ctx *symbols.Context) []SymbolView {
	table := ctx.Table()
	u := ctx.Universe()
	out := make([]SymbolView, 0, table.Symbols.Len())
	for _, id := range table.Symbols.IDs() {
		sym := ctx.Symbol(id)
		view := SymbolView{
			ID:      uint32(id),
			Kind:    sym.Kind.String(),
			Name:    ctx.Name(id),
			Binding: sym.Binding.String(),
			Scope:   uint32(sym.Scope),
			Members: uint32(sym.Members),
			Decl:    uint32(sym.Decl),
			Flags:   sym.Flags.Strings(),
		}
		if sym.Original != sym.Name {
			view.Original = table.Strings.MustLookup(sym.Original)
		}
		if tid, ok := sym.Binding.Type(); ok {
			view.Qualified = u.QualifiedName(tid)
		}
		out = append(out, view)
	}
	return out
}

// ScopeTree renders the scope tree under the global scope.
func ScopeTree(ctx *symbols.Context) *ScopeView {
	view := scopeView(ctx, ctx.Global(), 0)
	return &view
}

func scopeView(ctx *symbols.Context, id symbols.ScopeID, depth int) ScopeView {
	scope := ctx.Scope(id)
	view := ScopeView{ID: uint32(id), Kind: scope.Kind.String(), Node: uint32(scope.Node)}
	if scope.Owner.IsValid() {
		view.Owner = ctx.Name(scope.Owner)
	}
	for _, sym := range scope.NameIndex {
		view.Names = append(view.Names, ctx.Name(sym))
	}
	sort.Strings(view.Names)
	// scopes form a tree, so depth is bounded by the arena size
	if depth > ctx.Table().Scopes.Len() {
		return view
	}
	for _, child := range scope.Children {
		view.Children = append(view.Children, scopeView(ctx, child, depth+1))
	}
	return view
}

// Renames converts applied renames.
func Renames(renames []naming.Rename) []RenameView {
	out := make([]RenameView, 0, len(renames))
	for _, r := range renames {
		out = append(out, RenameView{Kind: r.Kind.String(), From: r.From, To: r.To})
	}
	return out
}

// Diagnostics renders a bag one line per diagnostic, attributing every
// location to path.
func Diagnostics(bag *diag.Bag, path string) []string {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	pathOf := func(source.FileID) string { return path }
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, diag.FormatShort([]diag.Diagnostic{d}, pathOf, false))
	}
	return out
}

// Select picks the sections FromResult fills.
type Select struct {
	Symbols bool
	Scopes  bool
	Renames bool
	Timing  bool
}

// FromResult builds the view of one driver result. Diagnostics are always
// included; a result without a live context contributes only those.
func FromResult(res *driver.Result, sel Select) UnitView {
	view := UnitView{Path: res.Path, Diagnostics: Diagnostics(res.Bag, res.Path)}
	if res.Context == nil {
		return view
	}
	if sel.Symbols {
		view.Symbols = Symbols(res.Context)
	}
	if sel.Scopes {
		view.Scopes = ScopeTree(res.Context)
	}
	if sel.Renames {
		view.Renames = Renames(res.Renames)
	}
	if sel.Timing && len(res.Timing.Phases) > 0 {
		timing := res.Timing
		view.Timing = &timing
	}
	return view
}
