// Package parse implements the in-progress parse tree (Context) and the
// node-id map that lets any completed-or-in-progress node be located by
// id, parent, ordered children, and kind (spec §4.3).
package parse

import "github.com/odvcencio/powerquery-parser/ast"

// ContextNode is an in-progress node: it shares ast.Node's identity
// (Id, Kind, ParentId) but has not yet had its token span or leaf text
// finalized — that only happens when EndContext closes it.
type ContextNode struct {
	Id               int
	Kind             ast.NodeKind
	ParentId         int
	TokenIndexStart  int
	AttributeCounter int
}

// Collection is the set of maps that together answer every structural
// query over a parse in progress: NodeIdMapCollection in spec terms.
type Collection struct {
	AstNodeById     map[int]ast.Node
	ContextNodeById map[int]ContextNode
	ChildIdsById    map[int][]int
	ParentIdById    map[int]int
	LeafIds         map[int]struct{}
	IdsByNodeKind   map[ast.NodeKind]map[int]struct{}
}

// NewCollection returns an empty Collection ready to receive the root
// context.
func NewCollection() *Collection {
	return &Collection{
		AstNodeById:     map[int]ast.Node{},
		ContextNodeById: map[int]ContextNode{},
		ChildIdsById:    map[int][]int{},
		ParentIdById:    map[int]int{},
		LeafIds:         map[int]struct{}{},
		IdsByNodeKind:   map[ast.NodeKind]map[int]struct{}{},
	}
}

// Kind returns the kind of id whether it denotes a completed or
// in-progress node, and false if id is unknown.
func (c *Collection) Kind(id int) (ast.NodeKind, bool) {
	if n, ok := c.AstNodeById[id]; ok {
		return n.Kind, true
	}
	if n, ok := c.ContextNodeById[id]; ok {
		return n.Kind, true
	}
	return ast.NodeKindUnknown, false
}

// Children returns the ordered child ids of parent (possibly empty).
func (c *Collection) Children(parent int) []int {
	return c.ChildIdsById[parent]
}

// Parent returns the parent id of child and true, or (0, false) if child
// is the root or unknown.
func (c *Collection) Parent(child int) (int, bool) {
	id, ok := c.ParentIdById[child]
	return id, ok
}

func (c *Collection) addToKindIndex(kind ast.NodeKind, id int) {
	set, ok := c.IdsByNodeKind[kind]
	if !ok {
		set = map[int]struct{}{}
		c.IdsByNodeKind[kind] = set
	}
	set[id] = struct{}{}
}

func (c *Collection) removeFromKindIndex(kind ast.NodeKind, id int) {
	if set, ok := c.IdsByNodeKind[kind]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(c.IdsByNodeKind, kind)
		}
	}
}

// IdsOfKind returns every id (ast or context) with the given kind —
// invariant I5.
func (c *Collection) IdsOfKind(kind ast.NodeKind) []int {
	set := c.IdsByNodeKind[kind]
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
