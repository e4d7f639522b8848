package model

import (
	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/source"
)

// Sample builds a small two-unit model:
//
//	// com/ex/Shape.java
//	package com.ex;
//	public abstract class Shape {
//	    Shape next;
//	    abstract double area();
//	    static class Cache { Shape[] items; }
//	}
//
//	// com/ex/Circle.java
//	package com.ex;
//	public class Circle extends Shape implements Runnable {
//	    double id;
//	    Circle(double in) { }
//	    double area() { for (int i;;) { double initialize; } }
//	    public void run() { new Runnable() { public void run() {} }; }
//	}
//
// It is what `xlate sample` writes and what the tests run the pipeline on.
func Sample() *Model {
	m := New()
	u := m.Universe

	object := u.AddClass("java.lang", "Object", binding.NoTypeID)
	runnable := u.AddType(binding.TypeRecord{Name: "Runnable", Package: "java.lang", Flags: binding.TypeInterface})
	ifaceRun := u.AddMethodTo(runnable, "run", binding.NoTypeID)
	voidT := u.AddType(binding.TypeRecord{Name: "void", Flags: binding.TypeVoid})
	u.Method(ifaceRun).Return = voidT
	double := u.AddPrimitive("double")
	intT := u.AddPrimitive("int")

	shape := u.AddClass("com.ex", "Shape", object)
	next := u.AddField(shape, "next", shape)
	area := u.AddMethodTo(shape, "area", double)
	cache := u.AddNested(shape, "Cache", object)
	items := u.AddField(cache, "items", u.ArrayOf(shape))

	circle := u.AddClass("com.ex", "Circle", shape)
	u.AddInterface(circle, runnable)
	id := u.AddField(circle, "id", double)
	ctor := u.AddMethodTo(circle, "Circle", binding.NoTypeID)
	u.Method(ctor).Flags |= binding.MethodConstructor
	in := u.AddParam(ctor, "in", double)
	circleArea := u.AddMethodTo(circle, "area", double)
	i := u.AddLocal(circleArea, "i", intT)
	init := u.AddLocal(circleArea, "initialize", double)
	run := u.AddMethodTo(circle, "run", voidT)
	anon := u.AddLocalType(run, "", object)
	u.AddInterface(anon, runnable)
	anonRun := u.AddMethodTo(anon, "run", voidT)

	shapeUnit := ast.NewUnit("com/ex/Shape.java", source.FileID(1))
	sd := shapeUnit.Add(shapeUnit.Root(), ast.NodeTypeDecl, binding.TypeRef(shape))
	shapeUnit.Add(sd, ast.NodeFieldDecl, binding.VarRef(next))
	shapeUnit.Add(sd, ast.NodeMethodDecl, binding.MethodRef(area))
	cd := shapeUnit.Add(sd, ast.NodeTypeDecl, binding.TypeRef(cache))
	shapeUnit.Add(cd, ast.NodeFieldDecl, binding.VarRef(items))
	m.AddUnit(shapeUnit)

	circleUnit := ast.NewUnit("com/ex/Circle.java", source.FileID(2))
	td := circleUnit.Add(circleUnit.Root(), ast.NodeTypeDecl, binding.TypeRef(circle))
	circleUnit.Add(td, ast.NodeFieldDecl, binding.VarRef(id))
	cm := circleUnit.Add(td, ast.NodeMethodDecl, binding.MethodRef(ctor))
	circleUnit.Add(cm, ast.NodeParam, binding.VarRef(in))
	circleUnit.Add(cm, ast.NodeBlock, binding.NoRef)
	am := circleUnit.Add(td, ast.NodeMethodDecl, binding.MethodRef(circleArea))
	body := circleUnit.Add(am, ast.NodeBlock, binding.NoRef)
	loop := circleUnit.Add(body, ast.NodeFor, binding.NoRef)
	circleUnit.Add(loop, ast.NodeVarDecl, binding.VarRef(i))
	inner := circleUnit.Add(loop, ast.NodeBlock, binding.NoRef)
	circleUnit.Add(inner, ast.NodeVarDecl, binding.VarRef(init))
	rm := circleUnit.Add(td, ast.NodeMethodDecl, binding.MethodRef(run))
	rb := circleUnit.Add(rm, ast.NodeBlock, binding.NoRef)
	expr := circleUnit.Add(rb, ast.NodeExpr, binding.NoRef)
	ad := circleUnit.Add(expr, ast.NodeTypeDecl, binding.TypeRef(anon))
	arm := circleUnit.Add(ad, ast.NodeMethodDecl, binding.MethodRef(anonRun))
	circleUnit.Add(arm, ast.NodeBlock, binding.NoRef)
	m.AddUnit(circleUnit)

	return m
}
