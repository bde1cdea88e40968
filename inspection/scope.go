// Package inspection answers "what do you know about this position"
// queries over a parse's ancestry (spec §4.6): which names are visible,
// what invocation the cursor sits inside, and what an editor should offer
// to complete next. It builds entirely on activenode.ActiveNode and
// parse.Collection — it never re-walks tokens or re-runs the parser.
package inspection

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/odvcencio/powerquery-parser/activenode"
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/parse"
)

// Scope is the ordered set of names visible at a position, each mapped to
// the node id that introduced it. Order matters for autocomplete ranking:
// names closer to the cursor's own containing construct should sort first.
type Scope struct {
	m *orderedmap.OrderedMap[string, int]
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{m: orderedmap.New[string, int]()}
}

// Names returns every visible name, oldest (first-inserted) first.
func (s *Scope) Names() []string {
	names := make([]string, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Lookup reports whether name is visible and, if so, the node id that
// introduced it.
func (s *Scope) Lookup(name string) (int, bool) {
	return s.m.Get(name)
}

// Len reports how many names are visible.
func (s *Scope) Len() int {
	return s.m.Len()
}

func (s *Scope) addIfAbsent(name string, originId int) {
	if _, exists := s.m.Get(name); exists {
		return
	}
	s.m.Set(name, originId)
}

// farFuture is the sentinel "end index" assigned to a still-open
// (ContextNode) binding: such a binding can never be "to the left" of the
// cursor, because it has not finished being declared yet, so a container's
// earlier-siblings test never admits it. A binding whose own value holds
// the cursor is still visible there: ComputeScope adds it through the
// IdentifierPairedExpression/SectionMember case, not through this test.
const farFuture = int(^uint(0) >> 1)

// ComputeScope implements §4.6's per-container visibility rules by walking
// an ActiveNode's ancestry deepest-first. Each ancestor kind contributes
// names through a uniform test — "did this candidate's token span end at
// or before the active leaf's own token" — which handles "only earlier
// siblings are visible" (let bindings, record keys, section members,
// invoke arguments); an in-progress binding's TokenIndexEnd is never
// resolvable, so it fails that test. The binding whose value holds the
// cursor is added by its own ancestor case instead, so its name is
// visible to its own value (the recursive-binding rule).
func ComputeScope(c *parse.Collection, node activenode.ActiveNode) *Scope {
	scope := NewScope()
	if !node.InBounds {
		return scope
	}
	posTokenIdx := leafTokenIndex(c, node.LeafId)

	for _, anc := range node.Ancestry {
		switch activenode.KindOf(c, anc) {
		case ast.NodeKindIdentifierExpression:
			if name, ok := identifierExpressionName(c, anc.Id()); ok {
				scope.addIfAbsent(name, anc.Id())
			}

		case ast.NodeKindEachExpression:
			scope.addIfAbsent("_", anc.Id())

		case ast.NodeKindIdentifierPairedExpression, ast.NodeKindSectionMember:
			// The active position is somewhere inside this binding's own
			// value expression — its own name is visible to itself, the
			// same recursive-binding rule a let/record/section member
			// gets in the language proper (`let a = () => a() in a`).
			if name, ok := declaredName(c, anc.Id()); ok {
				scope.addIfAbsent(name, anc.Id())
			}

		case ast.NodeKindLetExpression:
			children := c.Children(anc.Id())
			if len(children) >= 2 {
				addQualifying(c, csvArrayElements(c, children[1]), posTokenIdx, scope)
			}

		case ast.NodeKindFunctionExpression:
			children := c.Children(anc.Id())
			if len(children) >= 1 {
				paramListChildren := c.Children(children[0])
				if len(paramListChildren) >= 1 {
					addQualifying(c, csvArrayElements(c, paramListChildren[0]), posTokenIdx, scope)
				}
			}

		case ast.NodeKindRecordExpression, ast.NodeKindRecordLiteral:
			children := c.Children(anc.Id())
			if len(children) >= 1 {
				addQualifying(c, csvArrayElements(c, children[0]), posTokenIdx, scope)
			}

		case ast.NodeKindSection:
			children := c.Children(anc.Id())
			if len(children) >= 1 {
				membersId := children[len(children)-1]
				if kind, ok := c.Kind(membersId); ok && kind == ast.NodeKindCsvArray {
					addQualifying(c, csvArrayElements(c, membersId), posTokenIdx, scope)
				}
			}

		case ast.NodeKindInvokeExpression:
			children := c.Children(anc.Id())
			if len(children) >= 2 {
				baseId, argsArrayId := children[0], children[1]
				addQualifying(c, csvArrayElements(c, argsArrayId), posTokenIdx, scope)
				if kind, ok := c.Kind(baseId); ok && kind == ast.NodeKindIdentifierExpression {
					if name, ok := identifierExpressionName(c, baseId); ok {
						scope.addIfAbsent(name, baseId)
					}
				}
			}
		}
	}
	return scope
}

func leafTokenIndex(c *parse.Collection, leafId int) int {
	if n, ok := c.AstNodeById[leafId]; ok {
		return n.TokenIndexStart
	}
	return farFuture
}

// csvArrayElements returns a CsvArray's notional elements in left-to-right
// order, unwrapping the Csv wrapper readCsv introduces (support.go) when
// present. Section-member lists are built as a flat CsvArray without that
// wrapper (no commas involved), so children already are the elements.
func csvArrayElements(c *parse.Collection, csvArrayId int) []int {
	children := c.Children(csvArrayId)
	out := make([]int, 0, len(children))
	for _, id := range children {
		if kind, ok := c.Kind(id); ok && kind == ast.NodeKindCsv {
			grand := c.Children(id)
			if len(grand) > 0 {
				out = append(out, grand[0])
				continue
			}
		}
		out = append(out, id)
	}
	return out
}

// nodeLastTokenIndex returns the index of the last token a completed
// element spans, or farFuture for one still open. Comparing last-token
// (inclusive) rather than TokenIndexEnd (exclusive) against the active
// leaf's own index is what lets a binding become visible the instant the
// cursor rests on the binding's own closing token, not only strictly
// after it — section-member scope (spec's S4) depends on this: cursor on
// a member's trailing ";" sees that member's own name as already bound.
func nodeLastTokenIndex(c *parse.Collection, id int) int {
	if n, ok := c.AstNodeById[id]; ok {
		return n.TokenIndexEnd - 1
	}
	return farFuture
}

func addQualifying(c *parse.Collection, elements []int, posTokenIdx int, scope *Scope) {
	for _, elemId := range elements {
		if nodeLastTokenIndex(c, elemId) > posTokenIdx {
			continue
		}
		if name, ok := declaredName(c, elemId); ok {
			scope.addIfAbsent(name, elemId)
		}
	}
}

// declaredName extracts the name a scope-contributing element introduces,
// or false for an element kind that doesn't bind anything (a literal or
// arithmetic expression passed as an invoke argument, for instance).
func declaredName(c *parse.Collection, elementId int) (string, bool) {
	kind, ok := c.Kind(elementId)
	if !ok {
		return "", false
	}
	switch kind {
	case ast.NodeKindIdentifierPairedExpression:
		children := c.Children(elementId)
		if len(children) == 0 {
			return "", false
		}
		leaf, ok := c.AstNodeById[children[0]]
		if !ok {
			return "", false
		}
		return leaf.Text, true

	case ast.NodeKindParameter:
		for _, childId := range c.Children(elementId) {
			if k, ok := c.Kind(childId); ok && k == ast.NodeKindIdentifier {
				if leaf, ok := c.AstNodeById[childId]; ok {
					return leaf.Text, true
				}
			}
		}
		return "", false

	case ast.NodeKindSectionMember:
		for _, childId := range c.Children(elementId) {
			if name, ok := declaredName(c, childId); ok {
				return name, true
			}
		}
		return "", false

	case ast.NodeKindIdentifierExpression:
		return identifierExpressionName(c, elementId)

	default:
		return "", false
	}
}

// identifierExpressionName reads an IdentifierExpression's own name,
// restoring the "@" prefix when the identifier was written escaped
// (`@in`, `@type`, ...).
func identifierExpressionName(c *parse.Collection, id int) (string, bool) {
	children := c.Children(id)
	if len(children) == 0 {
		return "", false
	}
	leafId := children[len(children)-1]
	leaf, ok := c.AstNodeById[leafId]
	if !ok {
		return "", false
	}
	name := leaf.Text
	if len(children) > 1 {
		if k, ok := c.Kind(children[0]); ok && k == ast.NodeKindConstant {
			if prefix, ok := c.AstNodeById[children[0]]; ok && prefix.Text == "@" {
				name = "@" + name
			}
		}
	}
	return name, true
}
