package ast

import (
	"xlate/internal/binding"
	"xlate/internal/source"
)

// NodeKind enumerates the node categories the binding core cares about.
// Everything else the front end produces collapses into NodeStmt/NodeExpr.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	NodeUnit
	NodeTypeDecl
	NodeMethodDecl
	NodeFieldDecl
	NodeVarDecl
	NodeParam
	NodeBlock
	NodeFor
	NodeCatch
	NodeLambda
	NodeSwitch
	NodeStmt
	NodeExpr
)

func (k NodeKind) String() string {
	switch k {
	case NodeUnit:
		return "unit"
	case NodeTypeDecl:
		return "type"
	case NodeMethodDecl:
		return "method"
	case NodeFieldDecl:
		return "field"
	case NodeVarDecl:
		return "var"
	case NodeParam:
		return "param"
	case NodeBlock:
		return "block"
	case NodeFor:
		return "for"
	case NodeCatch:
		return "catch"
	case NodeLambda:
		return "lambda"
	case NodeSwitch:
		return "switch"
	case NodeStmt:
		return "stmt"
	case NodeExpr:
		return "expr"
	default:
		return "invalid"
	}
}

// IntroducesScope reports whether nodes of kind k open a lexical scope.
func (k NodeKind) IntroducesScope() bool {
	switch k {
	case NodeUnit, NodeTypeDecl, NodeMethodDecl, NodeBlock, NodeFor, NodeCatch, NodeLambda, NodeSwitch:
		return true
	default:
		return false
	}
}

// IsDeclaration reports whether nodes of kind k declare a binding.
func (k NodeKind) IsDeclaration() bool {
	switch k {
	case NodeTypeDecl, NodeMethodDecl, NodeFieldDecl, NodeVarDecl, NodeParam:
		return true
	default:
		return false
	}
}

// Node is one AST element. Binding is set on declarations and on any node
// the front end annotated with a resolved binding.
type Node struct {
	Kind     NodeKind    `msgpack:"kind"`
	Parent   NodeID      `msgpack:"parent,omitempty"`
	Children []NodeID    `msgpack:"children,omitempty"`
	Binding  binding.Ref `msgpack:"binding,omitempty"`
	Span     source.Span `msgpack:"span,omitempty"`
	Label    string      `msgpack:"label,omitempty"`
}
