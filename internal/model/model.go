// Package model reads and writes the msgpack file a front end exports: the
// binding universe plus the AST of every compilation unit.
package model

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/source"
)

// Schema is bumped whenever the encoded layout changes.
const Schema uint16 = 1

// Ext is the conventional model file extension.
const Ext = ".xbm"

// ErrSchema reports a model written by an incompatible exporter.
var ErrSchema = errors.New("unsupported model schema")

// Model is the decoded file.
type Model struct {
	Schema   uint16            `msgpack:"schema"`
	Universe *binding.Universe `msgpack:"universe"`
	Units    []UnitData        `msgpack:"units"`
}

// UnitData is the serialized form of an ast.Unit.
type UnitData struct {
	Path  string     `msgpack:"path"`
	Nodes []ast.Node `msgpack:"nodes"`
}

// Digest identifies model content.
type Digest [sha256.Size]byte

// New returns an empty model with the current schema.
func New() *Model {
	return &Model{Schema: Schema, Universe: binding.NewUniverse()}
}

// AddUnit appends the serialized form of unit.
func (m *Model) AddUnit(unit *ast.Unit) {
	m.Units = append(m.Units, UnitData{Path: unit.Path, Nodes: unit.Nodes()})
}

// Unit rebuilds the i-th compilation unit. File IDs are 1-based unit
// positions.
func (m *Model) Unit(i int) (*ast.Unit, error) {
	if i < 0 || i >= len(m.Units) {
		return nil, fmt.Errorf("unit index %d out of range", i)
	}
	data := m.Units[i]
	return ast.FromNodes(data.Path, source.FileID(i+1), data.Nodes)
}

// Encode writes m to w.
func Encode(w io.Writer, m *Model) error {
	enc := msgpack.NewEncoder(w)
	enc.SetOmitEmpty(true)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// Decode reads a model from r and checks its schema.
func Decode(r io.Reader) (*Model, error) {
	var m Model
	if err := msgpack.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if m.Schema != Schema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, m.Schema, Schema)
	}
	if m.Universe == nil {
		m.Universe = binding.NewUniverse()
	}
	m.Universe.EnsureSentinels()
	return &m, nil
}

// ReadFile decodes the model at path and returns its digest.
func ReadFile(path string) (*Model, Digest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Digest{}, err
	}
	m, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, Digest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, sha256.Sum256(raw), nil
}

// WriteFile encodes m to path through a temporary file and an atomic rename.
func WriteFile(path string, m *Model) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// after a successful rename the temp name is gone
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if err := Encode(f, m); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
