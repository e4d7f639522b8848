package naming

import (
	"fmt"

	"xlate/internal/binding"
	"xlate/internal/diag"
	"xlate/internal/source"
	"xlate/internal/symbols"
	"xlate/internal/trace"
)

// Rename records one name change made by Apply.
type Rename struct {
	Symbol symbols.SymbolID
	Kind   symbols.SymbolKind
	From   string
	To     string
}

// Apply renames every symbol of ctx in allocation order and returns the
// changes made. Reserved-word and bad-parameter renames are reported as
// info diagnostics.
func Apply(ctx *symbols.Context, n *Namer, r diag.Reporter, tracer trace.Tracer) []Rename {
	span := trace.Begin(tracer, trace.ScopePass, "naming.apply", 0)
	u := ctx.Universe()
	unit := ctx.Unit()
	var out []Rename
	for _, id := range ctx.Table().Symbols.IDs() {
		sym := ctx.Symbol(id)
		from := ctx.Name(id)
		var to string
		var code diag.Code
		switch sym.Kind {
		case symbols.SymbolType:
			tid, _ := sym.Binding.Type()
			to = n.TypeName(u, tid)
			if rec := u.Type(tid); rec != nil && !rec.DeclaringType.IsValid() && !rec.IsArray() && !rec.IsPrimitive() {
				if _, mapped := n.PackagePrefix(rec.Package); mapped {
					code = diag.NamePrefixMapping
				}
			}
		case symbols.SymbolMethod:
			mid, _ := sym.Binding.Method()
			if rec := u.Method(mid); rec != nil {
				to = n.MethodName(rec)
				if to != rec.Name {
					code = diag.NameReservedWord
				}
			}
		case symbols.SymbolVariable:
			vid, _ := sym.Binding.Var()
			if rec := u.Var(vid); rec != nil {
				to = n.VarName(rec)
				if to != rec.Name {
					code = reasonForVar(n, rec)
				}
			}
		}
		if to == "" || to == from {
			continue
		}
		ctx.Rename(id, to)
		out = append(out, Rename{Symbol: id, Kind: sym.Kind, From: from, To: to})
		if code != diag.UnknownCode {
			var primary source.Span
			if node := unit.Node(sym.Decl); node != nil {
				primary = node.Span
			}
			diag.ReportInfo(r, code, primary, fmt.Sprintf("%s %q renamed to %q", sym.Kind, from, to)).Emit()
		}
	}
	span.WithExtra("renamed", fmt.Sprint(len(out))).End("")
	return out
}

func reasonForVar(n *Namer, rec *binding.VarRecord) diag.Code {
	if rec.IsParam() && !n.IsReserved(rec.Name) && rec.Name != "initialize" {
		return diag.NameBadParameter
	}
	return diag.NameReservedWord
}
