package symbols

import "fmt"

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

func (id ScopeID) String() string { return fmt.Sprintf("scope#%d", uint32(id)) }

// SymbolID identifies a symbol in the table arena. Every pass holds symbols
// by ID, so a rename is visible to all of them at once.
type SymbolID uint32

// NoSymbolID marks "no symbol": null and void types, unsupported bindings.
const NoSymbolID SymbolID = 0

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

func (id SymbolID) String() string { return fmt.Sprintf("sym#%d", uint32(id)) }
