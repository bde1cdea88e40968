package ast

// NoParent is the ParentId of the tree's root node, the only node with no
// parent.
const NoParent = -1

// Node is a completed node in the concrete syntax tree. Its children are
// not stored here — they live in the node-id map's child-order index — so
// that the same shape can describe both a finished Node and an
// in-progress context node (package parse) without a separate type for
// each.
type Node struct {
	Id              int
	Kind            NodeKind
	TokenIndexStart int
	TokenIndexEnd   int // exclusive
	IsLeaf          bool
	ParentId        int // NoParent for the root

	// Text is populated only for leaf kinds: the identifier name, the
	// generalized identifier's dotted/keyword-tolerant spelling, the
	// literal's source text, or the constant's fixed spelling.
	Text string
}
