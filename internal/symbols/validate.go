package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	// Scopes: parent/child backlinks and a path to the global scope.
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scopeID == t.Global {
			if scope.Parent.IsValid() {
				errs = append(errs, fmt.Errorf("global scope %d has parent %d", scopeID, scope.Parent))
			}
		} else if !t.reachesGlobal(scopeID) {
			errs = append(errs, fmt.Errorf("scope %d does not reach the global scope", scopeID))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
			} else if !containsScope(t.Scopes.data[scope.Parent].Children, scopeID) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		}
		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || child == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid child %d", scopeID, child))
				continue
			}
			if t.Scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}

		// Name index entries must point at symbols homed here under that name.
		for name, id := range scope.NameIndex {
			sym := t.Symbols.Get(id)
			if sym == nil {
				errs = append(errs, fmt.Errorf("scope %d name index %d references missing symbol %d", scopeID, name, id))
				continue
			}
			if sym.Scope != scopeID {
				errs = append(errs, fmt.Errorf("scope %d name index %d references symbol %d homed in %d", scopeID, name, id, sym.Scope))
			}
			if sym.Name != name {
				errs = append(errs, fmt.Errorf("scope %d name index %d references symbol %d named %d", scopeID, name, id, sym.Name))
			}
		}
	}

	// Symbols: home scope lists them, binding index agrees.
	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		symbol := &t.Symbols.data[idx]
		if !symbol.Scope.IsValid() || int(symbol.Scope) >= len(t.Scopes.data) {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, symbol.Scope))
			continue
		}
		if !containsSymbol(t.Scopes.data[symbol.Scope].Symbols, symbolID) {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d list", symbolID, symbol.Scope))
		}
		if symbol.Members.IsValid() {
			members := t.Scopes.Get(symbol.Members)
			if members == nil || members.Owner != symbolID {
				errs = append(errs, fmt.Errorf("symbol %d member scope %d is not owned by it", symbolID, symbol.Members))
			}
		}
		if symbol.Binding.IsValid() {
			if got, ok := t.byBinding[symbol.Binding]; !ok || got != symbolID {
				errs = append(errs, fmt.Errorf("symbol %d binding %s indexed as %d", symbolID, symbol.Binding, got))
			}
		}
	}
	for ref, id := range t.byBinding {
		sym := t.Symbols.Get(id)
		if sym == nil || sym.Binding != ref {
			errs = append(errs, fmt.Errorf("binding %s indexed to stale symbol %d", ref, id))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func (t *Table) reachesGlobal(id ScopeID) bool {
	for steps := 0; id.IsValid() && steps <= len(t.Scopes.data); steps++ {
		if id == t.Global {
			return true
		}
		scope := t.Scopes.Get(id)
		if scope == nil {
			return false
		}
		id = scope.Parent
	}
	return false
}

func containsScope(list []ScopeID, id ScopeID) bool {
	for _, s := range list {
		if s == id {
			return true
		}
	}
	return false
}

func containsSymbol(list []SymbolID, id SymbolID) bool {
	for _, s := range list {
		if s == id {
			return true
		}
	}
	return false
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
