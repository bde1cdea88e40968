// Package activenode resolves a Position against a parse's node id map,
// producing the ancestry inspection walks (spec §4.5). It never mutates
// the collection it is given; it only reads leafIds, childIdsById, and
// parentIdById.
package activenode

import (
	"sort"

	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/parse"
	"github.com/odvcencio/powerquery-parser/text"
)

// Classification discriminates where a position falls relative to the
// leaf token the resolver picked as closest.
type Classification int

const (
	OnLeadingWhitespace Classification = iota
	OnTokenStart
	Inside
	OnTokenEnd
	OnTrailingWhitespace
)

func (c Classification) String() string {
	switch c {
	case OnLeadingWhitespace:
		return "OnLeadingWhitespace"
	case OnTokenStart:
		return "OnTokenStart"
	case Inside:
		return "Inside"
	case OnTokenEnd:
		return "OnTokenEnd"
	case OnTrailingWhitespace:
		return "OnTrailingWhitespace"
	default:
		return "Unknown"
	}
}

// ActiveNode is the result of resolving a Position: whether it fell
// within the document's token range, the ancestor chain from the chosen
// leaf up to the root (deepest-first), and how the position relates to
// that leaf's token.
type ActiveNode struct {
	InBounds       bool
	Ancestry       []parse.XorNode
	Classification Classification
	LeafId         int
}

// Resolve implements spec §4.5's four-step algorithm: binary search the
// leaf set by token index for the leaf nearest pos, bail out of bounds,
// otherwise walk parentIdById to build the ancestry and classify pos
// against the chosen leaf's token span.
func Resolve(collection *parse.Collection, tokens []lexer.Token, pos text.Position) ActiveNode {
	leaves := sortedLeafTokenIndices(collection)
	if len(leaves) == 0 || len(tokens) == 0 {
		return ActiveNode{InBounds: false}
	}

	first := tokens[leaves[0].tokenIndex]
	last := tokens[leaves[len(leaves)-1].tokenIndex]
	if pos.Less(first.PositionStart) || last.PositionEnd.Less(pos) {
		return ActiveNode{InBounds: false}
	}

	// Binary search for the rightmost leaf whose token starts at or
	// before pos.
	at := sort.Search(len(leaves), func(i int) bool {
		return pos.Less(tokens[leaves[i].tokenIndex].PositionStart)
	}) - 1
	if at < 0 {
		at = 0
	}

	tok := tokens[leaves[at].tokenIndex]
	leafId := leaves[at].id
	classification := classify(pos, tok)

	// pos sits strictly after this token's end and there is a following
	// leaf: the gap between the two is attributed to the *next* leaf as
	// leading whitespace, since inspection cares more about what is about
	// to be typed than what was just finished.
	if classification == OnTrailingWhitespace && at+1 < len(leaves) {
		nextTok := tokens[leaves[at+1].tokenIndex]
		if pos.Less(nextTok.PositionStart) {
			at++
			leafId = leaves[at].id
			tok = nextTok
			classification = OnLeadingWhitespace
		}
	}

	return ActiveNode{
		InBounds:       true,
		Ancestry:       ancestry(collection, leafId),
		Classification: classification,
		LeafId:         leafId,
	}
}

func classify(pos text.Position, tok lexer.Token) Classification {
	switch {
	case pos.Less(tok.PositionStart):
		return OnLeadingWhitespace
	case pos.CodeUnit == tok.PositionStart.CodeUnit:
		return OnTokenStart
	case pos.CodeUnit == tok.PositionEnd.CodeUnit:
		return OnTokenEnd
	case pos.Less(tok.PositionEnd):
		return Inside
	default:
		return OnTrailingWhitespace
	}
}

// ancestry walks parentIdById from leafId up to the root, returning the
// chain deepest-first (the leaf itself is ancestry[0]).
func ancestry(collection *parse.Collection, leafId int) []parse.XorNode {
	var chain []parse.XorNode
	id := leafId
	for {
		node, ok := parse.XorNodeOf(collection, id)
		if !ok {
			break
		}
		chain = append(chain, node)
		parentId, ok := collection.Parent(id)
		if !ok {
			break
		}
		id = parentId
	}
	return chain
}

type leafToken struct {
	id         int
	tokenIndex int
}

// sortedLeafTokenIndices returns every leaf in LeafIds paired with the
// token index it owns (its TokenIndexStart — every leaf spans exactly
// one token), ascending by token index. Token index order and id order
// coincide for leaves built during a normal left-to-right parse, but the
// sort is explicit rather than assumed so a reordering reader strategy
// still resolves correctly.
func sortedLeafTokenIndices(collection *parse.Collection) []leafToken {
	leaves := make([]leafToken, 0, len(collection.LeafIds))
	for id := range collection.LeafIds {
		node, ok := collection.AstNodeById[id]
		if !ok {
			continue
		}
		leaves = append(leaves, leafToken{id: id, tokenIndex: node.TokenIndexStart})
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].tokenIndex < leaves[j].tokenIndex })
	return leaves
}

// KindOf is a small convenience used by inspection: resolve a XorNode's
// kind, defaulting to ast.NodeKindUnknown when the id has since been
// deleted (a speculative read abandoned mid-resolution).
func KindOf(collection *parse.Collection, node parse.XorNode) ast.NodeKind {
	kind, ok := node.Kind(collection)
	if !ok {
		return ast.NodeKindUnknown
	}
	return kind
}
