package binding

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Universe is the front end's semantic model for one translation run: three
// arenas of binding records addressed by 1-based IDs. Slot 0 of every arena
// is a sentinel so the zero ID never names a record.
type Universe struct {
	Types   []TypeRecord   `msgpack:"types"`
	Methods []MethodRecord `msgpack:"methods"`
	Vars    []VarRecord    `msgpack:"vars"`

	arrays map[TypeID]TypeID
}

// NewUniverse allocates an empty universe.
func NewUniverse() *Universe {
	return &Universe{
		Types:   make([]TypeRecord, 1, 64),
		Methods: make([]MethodRecord, 1, 64),
		Vars:    make([]VarRecord, 1, 64),
	}
}

func nextID(n int, what string) uint32 {
	value, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", what, err))
	}
	return value
}

// AddType stores rec and returns its ID.
func (u *Universe) AddType(rec TypeRecord) TypeID {
	id := TypeID(nextID(len(u.Types), "type"))
	u.Types = append(u.Types, rec)
	if rec.IsArray() && rec.Component.IsValid() && rec.Decl == NoTypeID {
		if u.arrays != nil {
			if _, ok := u.arrays[rec.Component]; !ok {
				u.arrays[rec.Component] = id
			}
		}
	}
	return id
}

// AddMethod stores rec and returns its ID.
func (u *Universe) AddMethod(rec MethodRecord) MethodID {
	id := MethodID(nextID(len(u.Methods), "method"))
	u.Methods = append(u.Methods, rec)
	return id
}

// AddVar stores rec and returns its ID.
func (u *Universe) AddVar(rec VarRecord) VarID {
	id := VarID(nextID(len(u.Vars), "variable"))
	u.Vars = append(u.Vars, rec)
	return id
}

// Type returns the record for id or nil.
func (u *Universe) Type(id TypeID) *TypeRecord {
	if !id.IsValid() || int(id) >= len(u.Types) {
		return nil
	}
	return &u.Types[id]
}

// Method returns the record for id or nil.
func (u *Universe) Method(id MethodID) *MethodRecord {
	if !id.IsValid() || int(id) >= len(u.Methods) {
		return nil
	}
	return &u.Methods[id]
}

// Var returns the record for id or nil.
func (u *Universe) Var(id VarID) *VarRecord {
	if !id.IsValid() || int(id) >= len(u.Vars) {
		return nil
	}
	return &u.Vars[id]
}

// TypeDecl follows Decl links to the declaration form of id. A chain that
// loops back on itself stops at the first repeated record.
func (u *Universe) TypeDecl(id TypeID) TypeID {
	for steps := 0; steps < len(u.Types); steps++ {
		rec := u.Type(id)
		if rec == nil || !rec.Decl.IsValid() || rec.Decl == id {
			return id
		}
		id = rec.Decl
	}
	return id
}

// MethodDecl follows Decl links to the declaration form of id.
func (u *Universe) MethodDecl(id MethodID) MethodID {
	for steps := 0; steps < len(u.Methods); steps++ {
		rec := u.Method(id)
		if rec == nil || !rec.Decl.IsValid() || rec.Decl == id {
			return id
		}
		id = rec.Decl
	}
	return id
}

// VarDecl follows Decl links to the declaration form of id.
func (u *Universe) VarDecl(id VarID) VarID {
	for steps := 0; steps < len(u.Vars); steps++ {
		rec := u.Var(id)
		if rec == nil || !rec.Decl.IsValid() || rec.Decl == id {
			return id
		}
		id = rec.Decl
	}
	return id
}

// Decl normalizes any ref to its declaration form.
func (u *Universe) Decl(ref Ref) Ref {
	switch ref.Kind {
	case KindType:
		return TypeRef(u.TypeDecl(TypeID(ref.ID)))
	case KindMethod:
		return MethodRef(u.MethodDecl(MethodID(ref.ID)))
	case KindVariable:
		return VarRef(u.VarDecl(VarID(ref.ID)))
	default:
		return ref
	}
}

// ArrayOf returns the array type whose component is component, creating it
// on first request.
func (u *Universe) ArrayOf(component TypeID) TypeID {
	component = u.TypeDecl(component)
	if u.arrays == nil {
		u.reindexArrays()
	}
	if id, ok := u.arrays[component]; ok {
		return id
	}
	name := "?"
	if rec := u.Type(component); rec != nil {
		name = rec.Name
	}
	return u.AddType(TypeRecord{
		Name:      name + "[]",
		Component: component,
		Flags:     TypeArray,
	})
}

func (u *Universe) reindexArrays() {
	u.arrays = make(map[TypeID]TypeID)
	for i := 1; i < len(u.Types); i++ {
		rec := &u.Types[i]
		if !rec.IsArray() || !rec.Component.IsValid() || rec.Decl.IsValid() {
			continue
		}
		if _, ok := u.arrays[rec.Component]; !ok {
			u.arrays[rec.Component] = TypeID(nextID(i, "type"))
		}
	}
}

// QualifiedName renders the source-language name of a type, for example
// "com.example.Outer.Inner" or "int[]".
func (u *Universe) QualifiedName(id TypeID) string {
	rec := u.Type(id)
	if rec == nil {
		return ""
	}
	if rec.IsArray() {
		return u.QualifiedName(rec.Component) + "[]"
	}
	parts := make([]string, 0, 4)
	seen := make(map[TypeID]struct{})
	cur := id
	for cur.IsValid() {
		if _, dup := seen[cur]; dup {
			break
		}
		seen[cur] = struct{}{}
		r := u.Type(cur)
		if r == nil {
			break
		}
		parts = append(parts, r.Name)
		if r.Package != "" && !r.DeclaringType.IsValid() {
			parts = append(parts, r.Package)
		}
		cur = r.DeclaringType
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// FindType looks a type declaration up by qualified name.
func (u *Universe) FindType(qualified string) (TypeID, bool) {
	for i := 1; i < len(u.Types); i++ {
		id := TypeID(nextID(i, "type"))
		if u.Types[i].Decl.IsValid() {
			continue
		}
		if u.QualifiedName(id) == qualified {
			return id, true
		}
	}
	return NoTypeID, false
}

// Name returns the declared simple name of any binding.
func (u *Universe) Name(ref Ref) string {
	switch ref.Kind {
	case KindType:
		if rec := u.Type(TypeID(ref.ID)); rec != nil {
			return rec.Name
		}
	case KindMethod:
		if rec := u.Method(MethodID(ref.ID)); rec != nil {
			return rec.Name
		}
	case KindVariable:
		if rec := u.Var(VarID(ref.ID)); rec != nil {
			return rec.Name
		}
	}
	return ""
}

// Len reports record counts per arena, sentinels excluded.
func (u *Universe) Len() (types, methods, vars int) {
	return len(u.Types) - 1, len(u.Methods) - 1, len(u.Vars) - 1
}

// EnsureSentinels restores the reserved slot 0 of each arena after a decoder
// produced empty slices.
func (u *Universe) EnsureSentinels() {
	if len(u.Types) == 0 {
		u.Types = make([]TypeRecord, 1)
	}
	if len(u.Methods) == 0 {
		u.Methods = make([]MethodRecord, 1)
	}
	if len(u.Vars) == 0 {
		u.Vars = make([]VarRecord, 1)
	}
	u.arrays = nil
}
