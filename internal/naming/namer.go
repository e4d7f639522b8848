// Package naming computes target-language names for resolved symbols and
// applies them through the symbol context.
package naming

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"xlate/internal/binding"
)

// Config controls name generation. Zero values fall back to the defaults.
type Config struct {
	Reserved  []string
	BadParams []string
	// Prefixes maps a package to the prefix replacing its camel-cased
	// name. A key ending in ".*" covers the package and its subpackages.
	Prefixes map[string]string
	// Classes maps qualified type names to fixed target names.
	Classes   map[string]string
	Separator string
}

// Namer is not safe for concurrent use.
type Namer struct {
	reserved  map[string]struct{}
	badParams map[string]struct{}
	exact     map[string]string
	wildcards []wildcard
	classes   map[string]string
	sep       string
	title     cases.Caser

	full   map[binding.TypeID]string
	locals map[binding.TypeID]int
}

type wildcard struct{ pkg, prefix string }

// New builds a Namer from cfg.
func New(cfg Config) *Namer {
	n := &Namer{
		reserved:  toSet(cfg.Reserved, DefaultReserved),
		badParams: toSet(cfg.BadParams, DefaultBadParams),
		exact:     make(map[string]string),
		classes:   cfg.Classes,
		sep:       cfg.Separator,
		title:     cases.Title(language.Und, cases.NoLower),
		full:      make(map[binding.TypeID]string),
		locals:    make(map[binding.TypeID]int),
	}
	if n.sep == "" {
		n.sep = DefaultSeparator
	}
	for pkg, prefix := range cfg.Prefixes {
		if base, ok := strings.CutSuffix(pkg, ".*"); ok {
			n.wildcards = append(n.wildcards, wildcard{pkg: base, prefix: prefix})
			continue
		}
		n.exact[pkg] = prefix
	}
	// longest package wins
	sort.Slice(n.wildcards, func(i, j int) bool {
		if len(n.wildcards[i].pkg) != len(n.wildcards[j].pkg) {
			return len(n.wildcards[i].pkg) > len(n.wildcards[j].pkg)
		}
		return n.wildcards[i].pkg < n.wildcards[j].pkg
	})
	return n
}

func toSet(list, fallback []string) map[string]struct{} {
	if len(list) == 0 {
		list = fallback
	}
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		set[s] = struct{}{}
	}
	return set
}

// IsReserved reports whether name collides with a reserved identifier.
func (n *Namer) IsReserved(name string) bool {
	_, ok := n.reserved[name]
	return ok
}

// Capitalize upper-cases the first letter of s.
func (n *Namer) Capitalize(s string) string {
	return n.title.String(norm.NFC.String(s))
}

// CamelCase turns "java.util.logging" into "JavaUtilLogging".
func (n *Namer) CamelCase(qualified string) string {
	var sb strings.Builder
	for _, part := range strings.Split(qualified, ".") {
		sb.WriteString(n.Capitalize(part))
	}
	return sb.String()
}

// PackagePrefix returns the prefix for types declared in pkg and whether it
// came from a configured mapping.
func (n *Namer) PackagePrefix(pkg string) (string, bool) {
	if p, ok := n.exact[pkg]; ok {
		return p, true
	}
	for _, w := range n.wildcards {
		if pkg == w.pkg || strings.HasPrefix(pkg, w.pkg+".") {
			return w.prefix, true
		}
	}
	return n.CamelCase(pkg), false
}

// TypeName returns the full target name of a type: the package prefix plus
// the simple name for top-level types, the outer name plus the separator
// plus the inner name for nested ones. Local types get a per-outer ordinal,
// anonymous types only the ordinal. Arrays and primitives keep their names.
func (n *Namer) TypeName(u *binding.Universe, id binding.TypeID) string {
	id = u.TypeDecl(id)
	if name, ok := n.full[id]; ok {
		return name
	}
	rec := u.Type(id)
	if rec == nil {
		return ""
	}
	// placeholder guards malformed outer chains
	n.full[id] = rec.Name
	var name string
	switch {
	case rec.IsArray(), rec.IsPrimitive(), rec.IsVoid(), rec.IsNull():
		name = rec.Name
	case n.classes[u.QualifiedName(id)] != "":
		name = n.classes[u.QualifiedName(id)]
	case rec.DeclaringType.IsValid():
		outer := n.TypeName(u, rec.DeclaringType)
		sub := rec.Name
		if rec.IsLocal() {
			n.locals[rec.DeclaringType]++
			ordinal := n.locals[rec.DeclaringType]
			sub = fmt.Sprintf("%d%s", ordinal, rec.Name)
		}
		name = outer + n.sep + strings.ReplaceAll(sub, "$", n.sep)
	default:
		prefix, _ := n.PackagePrefix(rec.Package)
		name = prefix + strings.ReplaceAll(rec.Name, "$", n.sep)
	}
	n.full[id] = name
	return name
}

// MethodName returns the target name of a method.
func (n *Namer) MethodName(rec *binding.MethodRecord) string {
	if rec.Flags&binding.MethodConstructor != 0 {
		return rec.Name
	}
	if n.IsReserved(rec.Name) {
		return rec.Name + "_"
	}
	return rec.Name
}

// VarName returns the target name of a field, parameter or local.
func (n *Namer) VarName(rec *binding.VarRecord) string {
	switch {
	case rec.Name == "initialize":
		return "initialize_"
	case n.IsReserved(rec.Name):
		return rec.Name + "_"
	case rec.IsParam():
		if _, bad := n.badParams[rec.Name]; bad {
			return rec.Name + "Arg"
		}
	}
	return rec.Name
}
