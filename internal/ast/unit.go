package ast

import (
	"fmt"

	"xlate/internal/binding"
	"xlate/internal/source"
)

// Unit is one compilation unit: a node arena rooted at a NodeUnit node plus
// an index from declared bindings to their declaration nodes.
type Unit struct {
	Path  string
	File  source.FileID
	nodes *Arena[Node]
	root  NodeID
	decls map[binding.Ref]NodeID
}

// NewUnit creates a unit holding only its root node.
func NewUnit(path string, file source.FileID) *Unit {
	u := &Unit{
		Path:  path,
		File:  file,
		nodes: NewArena[Node](64),
		decls: make(map[binding.Ref]NodeID),
	}
	u.root = NodeID(u.nodes.Allocate(Node{Kind: NodeUnit, Span: source.Span{File: file}}))
	return u
}

// FromNodes rebuilds a unit from its serialized node list. nodes[0] must be
// the root.
func FromNodes(path string, file source.FileID, nodes []Node) (*Unit, error) {
	if len(nodes) == 0 || nodes[0].Kind != NodeUnit {
		return nil, fmt.Errorf("unit %s: first node must be the unit root", path)
	}
	u := &Unit{
		Path:  path,
		File:  file,
		nodes: NewArena[Node](uint(len(nodes))),
		decls: make(map[binding.Ref]NodeID),
	}
	for _, n := range nodes {
		n.Children = append([]NodeID(nil), n.Children...)
		id := NodeID(u.nodes.Allocate(n))
		u.index(id)
	}
	u.root = 1
	if err := u.checkTree(); err != nil {
		return nil, fmt.Errorf("unit %s: %w", path, err)
	}
	return u, nil
}

// checkTree verifies that parent and child links agree and form a tree
// under the root, with detached subtrees allowed alongside it.
func (u *Unit) checkTree() error {
	nodes := u.nodes.Slice()
	if nodes[0].Parent.IsValid() {
		return fmt.Errorf("root has parent %d", nodes[0].Parent)
	}
	listed := make([]bool, len(nodes)+1)
	for i, n := range nodes {
		parent := NodeID(i + 1)
		for _, child := range n.Children {
			c := u.Node(child)
			switch {
			case c == nil:
				return fmt.Errorf("node %d references missing child %d", parent, child)
			case child == u.root:
				return fmt.Errorf("node %d lists the root as a child", parent)
			case listed[child]:
				return fmt.Errorf("node %d is listed by more than one parent", child)
			case c.Parent != parent:
				return fmt.Errorf("node %d has parent %d, expected %d", child, c.Parent, parent)
			}
			listed[child] = true
		}
	}
	for i, n := range nodes[1:] {
		id := NodeID(i + 2)
		if n.Parent.IsValid() && !listed[id] {
			return fmt.Errorf("node %d claims parent %d which does not list it", id, n.Parent)
		}
		// every parent chain ends at the root or at a detached node
		cur, steps := id, 0
		for cur.IsValid() {
			if steps > len(nodes) {
				return fmt.Errorf("node %d is part of a parent cycle", id)
			}
			cur = u.Parent(cur)
			steps++
		}
	}
	return nil
}

// Nodes exposes the arena for serialization. Do not modify.
func (u *Unit) Nodes() []Node { return u.nodes.Slice() }

// Root returns the unit node.
func (u *Unit) Root() NodeID { return u.root }

// Len reports the number of allocated nodes, detached ones included.
func (u *Unit) Len() int { return u.nodes.Len() }

// NewNode allocates a detached node.
func (u *Unit) NewNode(kind NodeKind, ref binding.Ref, span source.Span) NodeID {
	id := NodeID(u.nodes.Allocate(Node{Kind: kind, Binding: ref, Span: span}))
	u.index(id)
	return id
}

func (u *Unit) index(id NodeID) {
	n := u.Node(id)
	if n == nil || !n.Kind.IsDeclaration() || !n.Binding.IsValid() {
		return
	}
	if _, ok := u.decls[n.Binding]; !ok {
		u.decls[n.Binding] = id
	}
}

// Node returns the node for id or nil.
func (u *Unit) Node(id NodeID) *Node {
	return u.nodes.Get(uint32(id))
}

// Parent returns the parent of id, NoNodeID for the root and detached nodes.
func (u *Unit) Parent(id NodeID) NodeID {
	if n := u.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// Append attaches child as the last child of parent.
func (u *Unit) Append(parent, child NodeID) {
	p, c := u.Node(parent), u.Node(child)
	if p == nil || c == nil {
		panic(fmt.Errorf("ast.Append: invalid node %d -> %d", parent, child))
	}
	if c.Parent.IsValid() || child == u.root {
		panic(fmt.Errorf("ast.Append: node %d is already attached", child))
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

// Add is NewNode followed by Append.
func (u *Unit) Add(parent NodeID, kind NodeKind, ref binding.Ref) NodeID {
	id := u.NewNode(kind, ref, source.Span{File: u.File})
	u.Append(parent, id)
	return id
}

// Detach unlinks id from its parent. The subtree stays intact.
func (u *Unit) Detach(id NodeID) {
	n := u.Node(id)
	if n == nil || !n.Parent.IsValid() {
		return
	}
	if p := u.Node(n.Parent); p != nil {
		for i, child := range p.Children {
			if child == id {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	n.Parent = NoNodeID
}

// Replace puts replacement into old's slot and detaches old. replacement must
// be detached. The declaration index follows the swap.
func (u *Unit) Replace(old, replacement NodeID) {
	o, r := u.Node(old), u.Node(replacement)
	if o == nil || r == nil {
		panic(fmt.Errorf("ast.Replace: invalid node %d -> %d", old, replacement))
	}
	if r.Parent.IsValid() {
		panic(fmt.Errorf("ast.Replace: replacement %d is already attached", replacement))
	}
	parent := o.Parent
	if p := u.Node(parent); p != nil {
		for i, child := range p.Children {
			if child == old {
				p.Children[i] = replacement
				break
			}
		}
	}
	r.Parent = parent
	o.Parent = NoNodeID

	for ref, id := range u.decls {
		if id == old {
			delete(u.decls, ref)
		}
	}
	u.index(replacement)
	if o.Binding.IsValid() && o.Kind.IsDeclaration() {
		if _, ok := u.decls[o.Binding]; !ok && o.Binding == r.Binding {
			u.decls[o.Binding] = replacement
		}
	}
}

// Reachable reports whether id is connected to the unit root.
func (u *Unit) Reachable(id NodeID) bool {
	for steps := 0; id.IsValid() && steps <= u.nodes.Len(); steps++ {
		if id == u.root {
			return true
		}
		id = u.Parent(id)
	}
	return false
}

// Walk visits the subtree at root in pre-order. Returning false from visit
// skips the node's children.
func (u *Unit) Walk(root NodeID, visit func(NodeID) bool) {
	n := u.Node(root)
	if n == nil {
		return
	}
	if !visit(root) {
		return
	}
	for _, child := range n.Children {
		u.Walk(child, visit)
	}
}

// DeclarationOf returns the node declaring ref in this unit, NoNodeID if the
// binding is declared elsewhere.
func (u *Unit) DeclarationOf(ref binding.Ref) NodeID {
	return u.decls[ref]
}
