package model

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"xlate/internal/ast"
	"xlate/internal/binding"
)

func TestWriteReadFile(t *testing.T) {
	m := Sample()
	path := filepath.Join(t.TempDir(), "sample"+Ext)
	if err := WriteFile(path, m); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, digest, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if digest == (Digest{}) {
		t.Fatalf("zero digest")
	}
	if len(got.Units) != len(m.Units) {
		t.Fatalf("units = %d, want %d", len(got.Units), len(m.Units))
	}
	shape, ok := got.Universe.FindType("com.ex.Shape")
	if !ok {
		t.Fatalf("com.ex.Shape missing after decode")
	}
	unit, err := got.Unit(0)
	if err != nil {
		t.Fatalf("unit: %v", err)
	}
	if unit.DeclarationOf(binding.TypeRef(shape)) == ast.NoNodeID {
		t.Fatalf("declaration index not rebuilt")
	}
	// arrays are re-interned lazily after decode
	arr := got.Universe.ArrayOf(shape)
	if arr != m.Universe.ArrayOf(shape) {
		t.Fatalf("array interning lost: %d vs %d", arr, m.Universe.ArrayOf(shape))
	}
}

func TestDecodeRejectsSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&Model{Schema: Schema + 1}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err := Decode(&buf)
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestDecodeRestoresSentinels(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Model{Schema: Schema, Universe: &binding.Universe{}}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	m, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	types, methods, vars := m.Universe.Len()
	if types != 0 || methods != 0 || vars != 0 {
		t.Fatalf("expected empty universe, got %d/%d/%d", types, methods, vars)
	}
	if id := m.Universe.AddPrimitive("int"); id != 1 {
		t.Fatalf("first type id = %d, want 1", id)
	}
}

func TestUnitOutOfRange(t *testing.T) {
	if _, err := New().Unit(0); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUnitRejectsSelfRootedTree(t *testing.T) {
	m := New()
	m.Units = append(m.Units, UnitData{
		Path:  "Loop.java",
		Nodes: []ast.Node{{Kind: ast.NodeUnit, Parent: 1, Children: []ast.NodeID{1}}},
	})
	if _, err := m.Unit(0); err == nil {
		t.Fatalf("expected self-rooted unit to be rejected")
	}
}
