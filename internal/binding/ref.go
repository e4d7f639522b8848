package binding

import "fmt"

// Kind discriminates the three binding variants handed over by the front end.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindType
	KindMethod
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindMethod:
		return "method"
	case KindVariable:
		return "variable"
	default:
		return "invalid"
	}
}

type (
	TypeID   uint32
	MethodID uint32
	VarID    uint32
)

const (
	NoTypeID   TypeID   = 0
	NoMethodID MethodID = 0
	NoVarID    VarID    = 0
)

func (id TypeID) IsValid() bool   { return id != NoTypeID }
func (id MethodID) IsValid() bool { return id != NoMethodID }
func (id VarID) IsValid() bool    { return id != NoVarID }

// Ref is the identity-stable handle for any binding. Equal Refs denote the
// same semantic entity, so Ref is safe to use as a map key.
type Ref struct {
	Kind Kind   `msgpack:"k"`
	ID   uint32 `msgpack:"i"`
}

// NoRef is the zero handle.
var NoRef = Ref{}

func TypeRef(id TypeID) Ref     { return Ref{Kind: KindType, ID: uint32(id)} }
func MethodRef(id MethodID) Ref { return Ref{Kind: KindMethod, ID: uint32(id)} }
func VarRef(id VarID) Ref       { return Ref{Kind: KindVariable, ID: uint32(id)} }

// IsValid reports whether r names an entity.
func (r Ref) IsValid() bool { return r.Kind != KindInvalid && r.ID != 0 }

// Type returns the type ID when r is a type binding.
func (r Ref) Type() (TypeID, bool) {
	if r.Kind != KindType {
		return NoTypeID, false
	}
	return TypeID(r.ID), true
}

// Method returns the method ID when r is a method binding.
func (r Ref) Method() (MethodID, bool) {
	if r.Kind != KindMethod {
		return NoMethodID, false
	}
	return MethodID(r.ID), true
}

// Var returns the variable ID when r is a variable binding.
func (r Ref) Var() (VarID, bool) {
	if r.Kind != KindVariable {
		return NoVarID, false
	}
	return VarID(r.ID), true
}

func (r Ref) String() string {
	if !r.IsValid() {
		return "<none>"
	}
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}
