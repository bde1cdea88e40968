package parse

import "github.com/odvcencio/powerquery-parser/ast"

// XorNode is a reference that may denote either a completed ast.Node or an
// in-progress ContextNode, resolved through the same Collection. Inspection
// walks a mix of both without ever branching on which map owns a node.
type XorNode struct {
	id        int
	isContext bool
}

// AstXorNode wraps an id known to be (or become) an ast.Node reference.
func AstXorNode(id int) XorNode { return XorNode{id: id, isContext: false} }

// ContextXorNode wraps an id known to be (or become) a ContextNode
// reference.
func ContextXorNode(id int) XorNode { return XorNode{id: id, isContext: true} }

// Id returns the underlying node id regardless of which map owns it.
func (x XorNode) Id() int { return x.id }

// Kind resolves the node's kind by looking it up in whichever map
// currently owns x.Id(), ignoring the tag the node was constructed with —
// a node that has since completed is still found.
func (x XorNode) Kind(c *Collection) (ast.NodeKind, bool) {
	return c.Kind(x.id)
}

// TokenRange resolves [start, end) for the node, using the ast.Node's span
// if completed or the ContextNode's open-position-as-both-endpoints
// otherwise.
func (x XorNode) TokenRange(c *Collection) (start, end int, ok bool) {
	if n, found := c.AstNodeById[x.id]; found {
		return n.TokenIndexStart, n.TokenIndexEnd, true
	}
	if n, found := c.ContextNodeById[x.id]; found {
		return n.TokenIndexStart, n.TokenIndexStart, true
	}
	return 0, 0, false
}

// IsAst reports whether x currently resolves to a completed ast.Node.
func (x XorNode) IsAst(c *Collection) bool {
	_, ok := c.AstNodeById[x.id]
	return ok
}

// XorNodeOf returns the XorNode for id, tagged according to whichever map
// currently owns it.
func XorNodeOf(c *Collection, id int) (XorNode, bool) {
	if _, ok := c.AstNodeById[id]; ok {
		return AstXorNode(id), true
	}
	if _, ok := c.ContextNodeById[id]; ok {
		return ContextXorNode(id), true
	}
	return XorNode{}, false
}
