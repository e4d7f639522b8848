package binding

// Convenience constructors used by front-end adapters and tests. Each one
// keeps the owner's member lists in sync with the new record.

// AddClass declares a class type in pkg with the given superclass.
func (u *Universe) AddClass(pkg, name string, super TypeID) TypeID {
	return u.AddType(TypeRecord{Name: name, Package: pkg, Super: super})
}

// AddPrimitive declares a primitive type such as int.
func (u *Universe) AddPrimitive(name string) TypeID {
	return u.AddType(TypeRecord{Name: name, Flags: TypePrimitive})
}

// AddNested declares a member type of outer.
func (u *Universe) AddNested(outer TypeID, name string, super TypeID) TypeID {
	return u.AddType(TypeRecord{Name: name, Super: super, DeclaringType: outer})
}

// AddLocalType declares a local (or anonymous, when name is empty) type
// inside method.
func (u *Universe) AddLocalType(method MethodID, name string, super TypeID) TypeID {
	flags := TypeLocal
	if name == "" {
		flags = TypeAnonymous
	}
	var outer TypeID
	if m := u.Method(method); m != nil {
		outer = m.DeclaringType
	}
	return u.AddType(TypeRecord{
		Name:            name,
		Super:           super,
		DeclaringType:   outer,
		DeclaringMethod: method,
		Flags:           flags,
	})
}

// AddInterface appends iface to the declared interfaces of typ.
func (u *Universe) AddInterface(typ, iface TypeID) {
	if rec := u.Type(typ); rec != nil {
		rec.Interfaces = append(rec.Interfaces, iface)
	}
}

// AddField declares a field on owner.
func (u *Universe) AddField(owner TypeID, name string, typ TypeID) VarID {
	id := u.AddVar(VarRecord{Name: name, Type: typ, DeclaringType: owner, Flags: VarField})
	if rec := u.Type(owner); rec != nil {
		rec.Fields = append(rec.Fields, id)
	}
	return id
}

// AddMethodTo declares a method on owner. A zero owner produces a free
// function, which the resolver refuses to home.
func (u *Universe) AddMethodTo(owner TypeID, name string, ret TypeID) MethodID {
	id := u.AddMethod(MethodRecord{Name: name, DeclaringType: owner, Return: ret})
	if rec := u.Type(owner); rec != nil {
		rec.Methods = append(rec.Methods, id)
	}
	return id
}

// AddParam declares a parameter of method.
func (u *Universe) AddParam(method MethodID, name string, typ TypeID) VarID {
	id := u.AddVar(VarRecord{Name: name, Type: typ, DeclaringMethod: method, Flags: VarParam})
	if rec := u.Method(method); rec != nil {
		rec.Params = append(rec.Params, id)
	}
	return id
}

// AddLocal declares a local variable of method.
func (u *Universe) AddLocal(method MethodID, name string, typ TypeID) VarID {
	return u.AddVar(VarRecord{Name: name, Type: typ, DeclaringMethod: method})
}

// Instantiate records a parameterized form of decl, as the front end does
// for each distinct generic instantiation.
func (u *Universe) Instantiate(decl TypeID, display string) TypeID {
	rec := u.Type(decl)
	if rec == nil {
		return NoTypeID
	}
	inst := *rec
	inst.Name = display
	inst.Decl = decl
	inst.Interfaces = nil
	inst.Fields = nil
	inst.Methods = nil
	return u.AddType(inst)
}
