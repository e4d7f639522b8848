package ast

// NodeID is the arena-assigned identity of a node. It is independent of the
// node's content, so replacing a node never aliases another node's ID.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
