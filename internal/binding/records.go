package binding

// TypeFlags describe the predicates the resolver asks of a type binding.
type TypeFlags uint16

const (
	TypeVoid TypeFlags = 1 << iota
	TypeNull
	TypePrimitive
	TypeArray
	TypeInterface
	TypeLocal
	TypeAnonymous
)

// MethodFlags classify method bindings.
type MethodFlags uint8

const (
	MethodConstructor MethodFlags = 1 << iota
	MethodStatic
)

// VarFlags classify variable bindings.
type VarFlags uint8

const (
	VarField VarFlags = 1 << iota
	VarParam
	VarStatic
)

// TypeRecord is the front end's view of a class, interface, primitive or
// array type. Decl points at the generic declaration when this record is a
// parameterized instantiation; NoTypeID means the record is its own
// declaration.
type TypeRecord struct {
	Name            string     `msgpack:"name"`
	Package         string     `msgpack:"pkg,omitempty"`
	Decl            TypeID     `msgpack:"decl,omitempty"`
	Super           TypeID     `msgpack:"super,omitempty"`
	Interfaces      []TypeID   `msgpack:"ifaces,omitempty"`
	Fields          []VarID    `msgpack:"fields,omitempty"`
	Methods         []MethodID `msgpack:"methods,omitempty"`
	Component       TypeID     `msgpack:"component,omitempty"`
	DeclaringType   TypeID     `msgpack:"outer,omitempty"`
	DeclaringMethod MethodID   `msgpack:"method,omitempty"`
	Flags           TypeFlags  `msgpack:"flags,omitempty"`
}

// MethodRecord describes a method or constructor.
type MethodRecord struct {
	Name          string      `msgpack:"name"`
	Decl          MethodID    `msgpack:"decl,omitempty"`
	DeclaringType TypeID      `msgpack:"owner,omitempty"`
	Return        TypeID      `msgpack:"ret,omitempty"`
	Params        []VarID     `msgpack:"params,omitempty"`
	Flags         MethodFlags `msgpack:"flags,omitempty"`
}

// VarRecord describes a field, parameter or local variable.
type VarRecord struct {
	Name            string   `msgpack:"name"`
	Decl            VarID    `msgpack:"decl,omitempty"`
	Type            TypeID   `msgpack:"type,omitempty"`
	DeclaringMethod MethodID `msgpack:"method,omitempty"`
	DeclaringType   TypeID   `msgpack:"owner,omitempty"`
	Flags           VarFlags `msgpack:"flags,omitempty"`
}

func (r *TypeRecord) IsVoid() bool      { return r.Flags&TypeVoid != 0 }
func (r *TypeRecord) IsNull() bool      { return r.Flags&TypeNull != 0 }
func (r *TypeRecord) IsPrimitive() bool { return r.Flags&TypePrimitive != 0 }
func (r *TypeRecord) IsArray() bool     { return r.Flags&TypeArray != 0 }
func (r *TypeRecord) IsInterface() bool { return r.Flags&TypeInterface != 0 }
func (r *TypeRecord) IsLocal() bool     { return r.Flags&(TypeLocal|TypeAnonymous) != 0 }
func (r *TypeRecord) IsAnonymous() bool { return r.Flags&TypeAnonymous != 0 }

func (r *VarRecord) IsField() bool { return r.Flags&VarField != 0 }
func (r *VarRecord) IsParam() bool { return r.Flags&VarParam != 0 }
