package parse

import (
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/snapshot"
)

// Context is the parser's single mutable handle onto the token stream and
// the in-progress tree. It is mutated only through the narrow operation
// set below (spec §4.3): startContext, endContext, deleteContext,
// readToken, peekToken, incrementAttributeCounter.
type Context struct {
	Collection *Collection
	Snapshot   snapshot.Snapshot

	nextId           int
	currentTokenIdx  int
	openStack        []int // ids, outermost first; top is current parent
	RootId           int
}

// NewContext creates a Context over snap with an empty Collection and no
// open nodes.
func NewContext(snap snapshot.Snapshot) *Context {
	return &Context{
		Collection: NewCollection(),
		Snapshot:   snap,
		RootId:     -1,
	}
}

// CurrentParent returns the id of the innermost still-open context, or
// (0, false) if nothing is open.
func (c *Context) CurrentParent() (int, bool) {
	if len(c.openStack) == 0 {
		return 0, false
	}
	return c.openStack[len(c.openStack)-1], true
}

// TokenIndex returns the index of the next unread token.
func (c *Context) TokenIndex() int { return c.currentTokenIdx }

// AtEnd reports whether every token in the snapshot has been consumed.
func (c *Context) AtEnd() bool { return c.currentTokenIdx >= len(c.Snapshot.Tokens) }

// PeekToken returns the token n positions ahead of the current read
// position (n=0 is the next unread token), and false if that is past the
// end of the stream.
func (c *Context) PeekToken(n int) (lexer.Token, bool) {
	idx := c.currentTokenIdx + n
	if idx < 0 || idx >= len(c.Snapshot.Tokens) {
		return lexer.Token{}, false
	}
	return c.Snapshot.Tokens[idx], true
}

// ReadToken consumes and returns the next token, or false at end of
// stream.
func (c *Context) ReadToken() (lexer.Token, bool) {
	tok, ok := c.PeekToken(0)
	if !ok {
		return lexer.Token{}, false
	}
	c.currentTokenIdx++
	return tok, true
}

// Seek rewinds or fast-forwards the read position directly. It exists for
// speculative reads that try one production, abandon it via DeleteContext,
// and retry a sibling production from the same starting token — the
// "(" disambiguation between a parenthesized expression and a function
// expression's parameter list is the canonical caller.
func (c *Context) Seek(tokenIdx int) {
	c.currentTokenIdx = tokenIdx
}

// StartContext pushes a new in-progress node of the given kind, parented
// to the currently open node (or unparented if this is the first call),
// and returns its id. Ids are assigned in strictly increasing order.
func (c *Context) StartContext(kind ast.NodeKind) int {
	id := c.nextId
	c.nextId++

	parentId := ast.NoParent
	if p, ok := c.CurrentParent(); ok {
		parentId = p
	} else {
		c.RootId = id
	}

	c.Collection.ContextNodeById[id] = ContextNode{
		Id:              id,
		Kind:            kind,
		ParentId:        parentId,
		TokenIndexStart: c.currentTokenIdx,
	}
	c.Collection.addToKindIndex(kind, id)

	if parentId != ast.NoParent {
		c.Collection.ChildIdsById[parentId] = append(c.Collection.ChildIdsById[parentId], id)
		c.Collection.ParentIdById[id] = parentId
	}

	c.openStack = append(c.openStack, id)
	return id
}

// EndContext closes the context node id (which must be the innermost open
// node), computing its token span from its children (or from the reader's
// current position, for a childless node) and moving it from
// contextNodeById to astNodeById.
func (c *Context) EndContext(id int) ast.Node {
	c.popOpen(id)

	ctxNode := c.Collection.ContextNodeById[id]
	children := c.Collection.ChildIdsById[id]

	tokenStart := ctxNode.TokenIndexStart
	tokenEnd := c.currentTokenIdx
	if len(children) > 0 {
		tokenStart = maxInt
		tokenEnd = 0
		for _, childId := range children {
			childStart, childEnd := c.span(childId)
			if childStart < tokenStart {
				tokenStart = childStart
			}
			if childEnd > tokenEnd {
				tokenEnd = childEnd
			}
		}
	}

	node := ast.Node{
		Id:              id,
		Kind:            ctxNode.Kind,
		TokenIndexStart: tokenStart,
		TokenIndexEnd:   tokenEnd,
		IsLeaf:          false,
		ParentId:        ctxNode.ParentId,
	}

	delete(c.Collection.ContextNodeById, id)
	c.Collection.AstNodeById[id] = node
	return node
}

// NewLeaf consumes exactly one token (already read at tokenIdx) and
// immediately registers a completed leaf ast.Node under the currently open
// context — leaves never pass through the context/in-progress state since
// they have no children to wait on.
func (c *Context) NewLeaf(kind ast.NodeKind, tokenIdx int, text string) ast.Node {
	id := c.nextId
	c.nextId++

	parentId := ast.NoParent
	if p, ok := c.CurrentParent(); ok {
		parentId = p
	} else {
		c.RootId = id
	}

	node := ast.Node{
		Id:              id,
		Kind:            kind,
		TokenIndexStart: tokenIdx,
		TokenIndexEnd:   tokenIdx + 1,
		IsLeaf:          true,
		ParentId:        parentId,
		Text:            text,
	}

	c.Collection.AstNodeById[id] = node
	c.Collection.LeafIds[id] = struct{}{}
	c.Collection.addToKindIndex(kind, id)

	if parentId != ast.NoParent {
		c.Collection.ChildIdsById[parentId] = append(c.Collection.ChildIdsById[parentId], id)
		c.Collection.ParentIdById[id] = parentId
	}

	return node
}

// DeleteContext abandons a speculative read: id (which must be the
// innermost open node, a pure look-ahead with no committed descendants
// other than ones opened after it) and everything nested inside it are
// erased from the collection, preserving invariant I3.
func (c *Context) DeleteContext(id int) {
	c.popOpen(id)
	c.deleteSubtree(id)
}

func (c *Context) deleteSubtree(id int) {
	for _, childId := range append([]int{}, c.Collection.ChildIdsById[id]...) {
		c.deleteSubtree(childId)
	}

	if kind, ok := c.Collection.Kind(id); ok {
		c.Collection.removeFromKindIndex(kind, id)
	}
	delete(c.Collection.AstNodeById, id)
	delete(c.Collection.ContextNodeById, id)
	delete(c.Collection.ChildIdsById, id)
	delete(c.Collection.LeafIds, id)

	if parentId, ok := c.Collection.ParentIdById[id]; ok {
		siblings := c.Collection.ChildIdsById[parentId]
		for i, sib := range siblings {
			if sib == id {
				c.Collection.ChildIdsById[parentId] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	delete(c.Collection.ParentIdById, id)
}

// AdoptPrefix reparents an already-completed node (typically the base of a
// postfix suffix — the callee of an InvokeExpression, the collection of an
// ItemAccessExpression, and so on) to be the first child of newParentId,
// which must be the currently-open innermost context. This is how postfix
// grammar (primary suffix-loop) attaches a node finished *before* its
// enclosing production existed, without rewriting the recursive-descent
// call shape into true left recursion.
func (c *Context) AdoptPrefix(newParentId, childId int) {
	oldParentId, hadParent := c.Collection.ParentIdById[childId]
	if hadParent {
		siblings := c.Collection.ChildIdsById[oldParentId]
		for i, sib := range siblings {
			if sib == childId {
				c.Collection.ChildIdsById[oldParentId] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	} else if c.RootId == childId {
		c.RootId = newParentId
	}

	c.Collection.ParentIdById[childId] = newParentId
	c.Collection.ChildIdsById[newParentId] = append([]int{childId}, c.Collection.ChildIdsById[newParentId]...)

	if n, ok := c.Collection.AstNodeById[childId]; ok {
		n.ParentId = newParentId
		c.Collection.AstNodeById[childId] = n
	} else if n, ok := c.Collection.ContextNodeById[childId]; ok {
		n.ParentId = newParentId
		c.Collection.ContextNodeById[childId] = n
	}

	// The adopted child's span predates newParentId's own recorded start
	// (it was read before newParentId existed), so the span bookkeeping
	// needs to widen to stay consistent with invariant I6 once newParentId
	// completes.
	childStart, _ := c.span(childId)
	if n, ok := c.Collection.ContextNodeById[newParentId]; ok {
		if childStart < n.TokenIndexStart {
			n.TokenIndexStart = childStart
			c.Collection.ContextNodeById[newParentId] = n
		}
	} else if n, ok := c.Collection.AstNodeById[newParentId]; ok {
		if childStart < n.TokenIndexStart {
			n.TokenIndexStart = childStart
			c.Collection.AstNodeById[newParentId] = n
		}
	}
}

// IncrementAttributeCounter records that the context at id has begun
// reading its next grammar-ordered child slot, so a structural error can
// report which position the parser had reached.
func (c *Context) IncrementAttributeCounter(id int) int {
	node := c.Collection.ContextNodeById[id]
	node.AttributeCounter++
	c.Collection.ContextNodeById[id] = node
	return node.AttributeCounter
}

func (c *Context) popOpen(id int) {
	n := len(c.openStack)
	if n == 0 || c.openStack[n-1] != id {
		panic("parse: EndContext/DeleteContext called out of order")
	}
	c.openStack = c.openStack[:n-1]
}

// span returns the [start, end) token interval of a node, whether
// completed or (exceptionally, mid-abandon) still in progress.
func (c *Context) span(id int) (int, int) {
	if n, ok := c.Collection.AstNodeById[id]; ok {
		return n.TokenIndexStart, n.TokenIndexEnd
	}
	if n, ok := c.Collection.ContextNodeById[id]; ok {
		return n.TokenIndexStart, n.TokenIndexStart
	}
	return 0, 0
}

const maxInt = int(^uint(0) >> 1)
