package symbols

import (
	"fmt"

	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/diag"
	"xlate/internal/source"
	"xlate/internal/trace"
)

// Options configure a Context.
type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	Hints    Hints
	// Strings is shared with later passes when set. Not safe for concurrent
	// use, so parallel units need one interner each.
	Strings *source.Interner
	// Span is the parent trace span for events emitted by the context.
	Span uint64
}

// Context owns the symbol table and the scope table for one compilation
// unit. It is created by Session.Initialize and must not be used after
// Session.Cleanup.
type Context struct {
	universe *binding.Universe
	unit     *ast.Unit
	table    *Table
	scopes   map[ast.NodeID]ScopeID
	// types whose supertypes are being resolved
	supers   map[binding.TypeID]struct{}

	reporter diag.Reporter
	tracer   trace.Tracer
	span     uint64
	closed   bool
}

func newContext(u *binding.Universe, unit *ast.Unit, opts Options) *Context {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Context{
		universe: u,
		unit:     unit,
		table:    NewTable(opts.Hints, opts.Strings),
		scopes:   make(map[ast.NodeID]ScopeID),
		supers:   make(map[binding.TypeID]struct{}),
		reporter: opts.Reporter,
		tracer:   tracer,
		span:     opts.Span,
	}
}

func (c *Context) live() {
	if c == nil {
		panic("symbols: nil context")
	}
	if c.closed {
		panic("symbols: context used after cleanup")
	}
}

// Table exposes the symbol table.
func (c *Context) Table() *Table { c.live(); return c.table }

// Unit returns the compilation unit this context was initialized with.
func (c *Context) Unit() *ast.Unit { c.live(); return c.unit }

// Universe returns the binding model symbols are resolved from.
func (c *Context) Universe() *binding.Universe { c.live(); return c.universe }

// Global returns the root scope.
func (c *Context) Global() ScopeID { c.live(); return c.table.Global }

// Symbol returns the symbol for id or nil.
func (c *Context) Symbol(id SymbolID) *Symbol { c.live(); return c.table.Symbols.Get(id) }

// Scope returns the scope for id or nil.
func (c *Context) Scope(id ScopeID) *Scope { c.live(); return c.table.Scopes.Get(id) }

// Name returns the current name of id.
func (c *Context) Name(id SymbolID) string { c.live(); return c.table.Name(id) }

// Lookup resolves name starting at scope and walking outward.
func (c *Context) Lookup(scope ScopeID, name string) (SymbolID, bool) {
	c.live()
	return c.table.Lookup(scope, name)
}

// SymbolOf returns the already resolved symbol for ref without resolving.
func (c *Context) SymbolOf(ref binding.Ref) (SymbolID, bool) {
	c.live()
	return c.table.SymbolFor(c.universe.Decl(ref))
}

// ScopeEntries returns a copy of the scope table.
func (c *Context) ScopeEntries() map[ast.NodeID]ScopeID {
	c.live()
	out := make(map[ast.NodeID]ScopeID, len(c.scopes))
	for k, v := range c.scopes {
		out[k] = v
	}
	return out
}

// Resolve dispatches on the kind of ref.
func (c *Context) Resolve(ref binding.Ref) SymbolID {
	if id, ok := ref.Type(); ok {
		return c.ResolveType(id)
	}
	if id, ok := ref.Method(); ok {
		return c.ResolveMethod(id)
	}
	if id, ok := ref.Var(); ok {
		return c.ResolveVariable(id)
	}
	c.live()
	return NoSymbolID
}

// ResolveType returns the symbol for the declaration form of id, creating
// it and everything it depends on if needed. Void and null types have no
// symbol.
func (c *Context) ResolveType(id binding.TypeID) SymbolID {
	c.live()
	rec := c.universe.Type(id)
	if rec == nil || rec.IsVoid() || rec.IsNull() {
		return NoSymbolID
	}
	id = c.universe.TypeDecl(id)
	rec = c.universe.Type(id)
	ref := binding.TypeRef(id)
	if sym, ok := c.table.SymbolFor(ref); ok {
		return sym
	}

	if _, busy := c.supers[id]; busy {
		panic(fmt.Errorf("symbols: cyclic supertype chain at %s (%s)", ref, c.universe.QualifiedName(id)))
	}
	c.supers[id] = struct{}{}
	super := c.ResolveType(rec.Super)
	for _, iface := range rec.Interfaces {
		c.ResolveType(iface)
	}
	component := c.ResolveType(rec.Component)
	delete(c.supers, id)

	// any of the above may have come back around to this type
	if sym, ok := c.table.SymbolFor(ref); ok {
		return sym
	}

	home := c.table.Global
	switch {
	case rec.IsPrimitive():
	case rec.IsArray():
		if s := c.table.Symbols.Get(component); s != nil && s.Members.IsValid() {
			home = s.Members
		}
	case super.IsValid():
		home = c.table.Symbols.Get(super).Members
	case rec.DeclaringMethod.IsValid():
		method := c.ResolveMethod(rec.DeclaringMethod)
		if sym, ok := c.table.SymbolFor(ref); ok {
			return sym
		}
		if s := c.table.Symbols.Get(method); s != nil && s.Members.IsValid() {
			home = s.Members
		}
	}

	var flags SymbolFlags
	if rec.IsPrimitive() {
		flags |= SymbolFlagPrimitive
	}
	if rec.IsArray() {
		flags |= SymbolFlagArray
	}
	if rec.IsInterface() {
		flags |= SymbolFlagInterface
	}
	if rec.IsLocal() {
		flags |= SymbolFlagLocal
	}
	decl := c.unit.DeclarationOf(ref)
	sym := c.table.declare(Symbol{
		Name:    c.table.Strings.Intern(rec.Name),
		Kind:    SymbolType,
		Decl:    decl,
		Binding: ref,
		Flags:   flags,
	}, home)
	members := c.table.Scopes.New(ScopeType, home, sym, decl)
	c.table.Symbols.Get(sym).Members = members
	c.point("resolve.type", sym)

	for _, field := range rec.Fields {
		c.ResolveVariable(field)
	}
	for _, method := range rec.Methods {
		c.ResolveMethod(method)
	}
	return sym
}

// ResolveMethod returns the symbol for the declaration form of id. Methods
// without a declaring type are reported and left unresolved.
func (c *Context) ResolveMethod(id binding.MethodID) SymbolID {
	c.live()
	if c.universe.Method(id) == nil {
		return NoSymbolID
	}
	id = c.universe.MethodDecl(id)
	rec := c.universe.Method(id)
	ref := binding.MethodRef(id)
	if sym, ok := c.table.SymbolFor(ref); ok {
		return sym
	}

	owner := c.ResolveType(rec.DeclaringType)
	if sym, ok := c.table.SymbolFor(ref); ok {
		return sym
	}
	ownerSym := c.table.Symbols.Get(owner)
	if ownerSym == nil || !ownerSym.Members.IsValid() {
		c.unsupported(ref, fmt.Sprintf("method %q has no declaring type", rec.Name))
		return NoSymbolID
	}

	var flags SymbolFlags
	if rec.Flags&binding.MethodConstructor != 0 {
		flags |= SymbolFlagConstructor
	}
	decl := c.unit.DeclarationOf(ref)
	home := ownerSym.Members
	sym := c.table.declare(Symbol{
		Name:    c.table.Strings.Intern(rec.Name),
		Kind:    SymbolMethod,
		Decl:    decl,
		Binding: ref,
		Flags:   flags,
	}, home)
	own := c.table.Scopes.New(ScopeMethod, home, sym, decl)
	c.table.Symbols.Get(sym).Members = own
	c.point("resolve.method", sym)

	c.ResolveType(rec.Return)
	for _, param := range rec.Params {
		c.ResolveVariable(param)
	}
	return sym
}

// ResolveMethodNode resolves the method declared at node and rescans its
// subtree so blocks synthesized into the body get scope entries.
func (c *Context) ResolveMethodNode(node ast.NodeID) SymbolID {
	c.live()
	n := c.unit.Node(node)
	if n == nil || n.Kind != ast.NodeMethodDecl {
		panic(fmt.Errorf("symbols: node %d is not a method declaration", node))
	}
	method, ok := n.Binding.Method()
	if !ok {
		panic(fmt.Errorf("symbols: method node %d carries %s", node, n.Binding))
	}
	sym := c.ResolveMethod(method)
	if !sym.IsValid() {
		return NoSymbolID
	}
	c.table.attachDecl(sym, node)
	c.ScanAST(node)
	return sym
}

// ResolveVariable returns the symbol for the declaration form of id. The
// variable is homed in its declaring method's scope, or in its declaring
// type's member scope for fields. A variable with neither is malformed input
// and panics.
func (c *Context) ResolveVariable(id binding.VarID) SymbolID {
	c.live()
	if c.universe.Var(id) == nil {
		return NoSymbolID
	}
	id = c.universe.VarDecl(id)
	rec := c.universe.Var(id)
	ref := binding.VarRef(id)
	if sym, ok := c.table.SymbolFor(ref); ok {
		return sym
	}

	c.ResolveType(rec.Type)
	if sym, ok := c.table.SymbolFor(ref); ok {
		return sym
	}

	var home ScopeID
	switch {
	case rec.DeclaringMethod.IsValid():
		method := c.ResolveMethod(rec.DeclaringMethod)
		if sym, ok := c.table.SymbolFor(ref); ok {
			return sym
		}
		s := c.table.Symbols.Get(method)
		if s == nil {
			// declaring method was already reported as unsupported
			return NoSymbolID
		}
		home = s.Members
	case rec.DeclaringType.IsValid():
		owner := c.ResolveType(rec.DeclaringType)
		if sym, ok := c.table.SymbolFor(ref); ok {
			return sym
		}
		if s := c.table.Symbols.Get(owner); s != nil {
			home = s.Members
		}
	}
	if !home.IsValid() {
		panic(fmt.Errorf("symbols: variable %q (%s) has neither a declaring method nor a declaring type", rec.Name, ref))
	}

	var flags SymbolFlags
	if rec.IsField() {
		flags |= SymbolFlagField
	}
	if rec.IsParam() {
		flags |= SymbolFlagParam
	}
	sym := c.table.declare(Symbol{
		Name:    c.table.Strings.Intern(rec.Name),
		Kind:    SymbolVariable,
		Decl:    c.unit.DeclarationOf(ref),
		Binding: ref,
		Flags:   flags,
	}, home)
	c.point("resolve.var", sym)
	return sym
}

// ScanAST builds scope entries for the subtree at node and merges them into
// the scope table. Entries outside the subtree are untouched.
func (c *Context) ScanAST(node ast.NodeID) {
	c.live()
	if c.unit.Node(node) == nil {
		panic(fmt.Errorf("symbols: scan of unknown node %d", node))
	}
	span := trace.Begin(c.tracer, trace.ScopePass, "symbols.scan", c.span)
	parent := c.table.Global
	if p := c.unit.Parent(node); p.IsValid() {
		parent = c.GetScope(p)
	}
	added := BuildScopes(c.table, c, c.unit, node, parent, c.scopes)
	for k, v := range added {
		c.scopes[k] = v
	}
	span.WithExtra("entries", fmt.Sprint(len(added))).End("")
}

// GetScope returns the scope active at node, walking up parents until an
// entry is found. A node outside every registered scope panics.
func (c *Context) GetScope(node ast.NodeID) ScopeID {
	c.live()
	for steps, id := 0, node; id.IsValid() && steps <= c.unit.Len(); steps, id = steps+1, c.unit.Parent(id) {
		if s, ok := c.scopes[id]; ok {
			return s
		}
	}
	panic(fmt.Errorf("symbols: no scope for node %d", node))
}

// Substitute moves the scope entry and declaration association of old onto
// replacement. replacement must not already map to a different scope.
func (c *Context) Substitute(old, replacement ast.NodeID) {
	c.live()
	if s, ok := c.scopes[old]; ok {
		if prev, has := c.scopes[replacement]; has && prev != s {
			panic(fmt.Errorf("symbols: substitute %d -> %d: replacement already has %s, want %s", old, replacement, prev, s))
		}
		delete(c.scopes, old)
		c.scopes[replacement] = s
		if scope := c.table.Scopes.Get(s); scope != nil && scope.Node == old {
			scope.Node = replacement
		}
	}
	c.table.migrateDecl(old, replacement)
}

// Rename changes the name of id. Every holder of id sees the new name.
func (c *Context) Rename(id SymbolID, name string) {
	c.live()
	c.table.rename(id, name)
}

// SetBinding points id at a superseding binding.
func (c *Context) SetBinding(id SymbolID, ref binding.Ref) {
	c.live()
	c.table.rebind(id, ref)
}

func (c *Context) point(name string, sym SymbolID) {
	if !c.tracer.Enabled() {
		return
	}
	s := c.table.Symbols.Get(sym)
	trace.Point(c.tracer, trace.ScopeNode, name, fmt.Sprintf("%s %q in %s", s.Binding, c.table.Name(sym), s.Scope), c.span)
}

func (c *Context) unsupported(ref binding.Ref, msg string) {
	var span source.Span
	if n := c.unit.Node(c.unit.DeclarationOf(ref)); n != nil {
		span = n.Span
	}
	diag.ReportWarning(c.reporter, diag.SymUnsupportedFreeFunction, span, msg).Emit()
	trace.Point(c.tracer, trace.ScopeNode, "resolve.unsupported", msg, c.span)
}
