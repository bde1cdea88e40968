package inspection

import (
	"github.com/odvcencio/powerquery-parser/activenode"
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/parse"
)

// InvokeInfo describes the nearest enclosing InvokeExpression the active
// position sits inside, so an editor can show a parameter-hint tooltip
// (spec §4.6).
type InvokeInfo struct {
	// Name is the invoked function's own name when the base expression is
	// a plain identifier (nil for `(fn())(1)`-style dynamic callees).
	Name *string
	// NumArguments is the number of comma-separated arguments already
	// present, regardless of the cursor's position among them.
	NumArguments int
	// PositionArgumentIndex is the zero-based index of the argument slot
	// the cursor currently occupies.
	PositionArgumentIndex int
}

// ComputeInvoke walks node's ancestry inside-out (i.e. innermost first,
// matching Ancestry's own deepest-first order) and reports the first
// InvokeExpression found, or nil if the position isn't inside one.
func ComputeInvoke(c *parse.Collection, node activenode.ActiveNode) *InvokeInfo {
	if !node.InBounds {
		return nil
	}
	posTokenIdx := leafTokenIndex(c, node.LeafId)

	for _, anc := range node.Ancestry {
		if activenode.KindOf(c, anc) != ast.NodeKindInvokeExpression {
			continue
		}
		children := c.Children(anc.Id())
		if len(children) < 2 {
			return nil
		}
		baseId, argsArrayId := children[0], children[1]
		args := csvArrayElements(c, argsArrayId)

		info := &InvokeInfo{
			Name:         nil,
			NumArguments: len(args),
		}
		if name, ok := calleeName(c, baseId); ok {
			info.Name = &name
		}
		info.PositionArgumentIndex = positionArgumentIndex(c, args, posTokenIdx)
		return info
	}
	return nil
}

// calleeName reports the plain identifier name of an invoke's base
// expression, or false for anything more complex ((f())(1), a[...](1)).
func calleeName(c *parse.Collection, baseId int) (string, bool) {
	kind, ok := c.Kind(baseId)
	if !ok || kind != ast.NodeKindIdentifierExpression {
		return "", false
	}
	return identifierExpressionName(c, baseId)
}

// positionArgumentIndex counts how many argument slots end at or before
// the active token, which is the slot the cursor is either inside of or
// has just finished typing past a comma from — an exclusive comparison
// against TokenIndexEnd, unlike scope visibility's inclusive one, since an
// argument's own last token is still that argument's own slot, not the
// next one.
func positionArgumentIndex(c *parse.Collection, args []int, posTokenIdx int) int {
	idx := 0
	for _, argId := range args {
		n, ok := c.AstNodeById[argId]
		if !ok {
			break
		}
		if n.TokenIndexEnd <= posTokenIdx {
			idx++
			continue
		}
		break
	}
	return idx
}
