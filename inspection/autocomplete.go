package inspection

import (
	"github.com/odvcencio/powerquery-parser/activenode"
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/parse"
)

// AutocompleteKeyword offers the reserved words that could legally follow
// the active position, read off the innermost ancestor that constrains
// what comes next (spec §4.6's keyword table). Nothing here is a full
// first-set computation — it's the same small, practical table an editor
// actually needs: the keyword that continues a construct already open.
func AutocompleteKeyword(c *parse.Collection, node activenode.ActiveNode) []string {
	if !node.InBounds || len(node.Ancestry) == 0 {
		return nil
	}

	var out []string
	seen := map[string]struct{}{}
	add := func(words ...string) {
		for _, w := range words {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}

	for _, anc := range node.Ancestry {
		switch activenode.KindOf(c, anc) {
		case ast.NodeKindIfExpression:
			add("then", "else")
		case ast.NodeKindTryExpression:
			add("otherwise")
		case ast.NodeKindLetExpression:
			add("in")
		case ast.NodeKindEachExpression:
			add("each")
		case ast.NodeKindErrorHandlingExpression:
			add("otherwise")
		case ast.NodeKindDocument, ast.NodeKindSection:
			add("let", "if", "each", "try", "error", "type", "section", "shared")
		}
	}
	if len(out) == 0 {
		add("let", "if", "each", "try", "error", "type", "not")
	}
	return out
}

// StartOfDocumentKeywords is the keyword set offered at the very start of
// an empty document, where there is no ancestry to dispatch on at all
// (spec §8's empty-input boundary case): every keyword that can open
// either a bare expression or a section document.
func StartOfDocumentKeywords() []string {
	return []string{"let", "if", "each", "try", "error", "type", "section", "shared"}
}

// AutocompletePrimitiveType offers lexer.PrimitiveTypeNames whenever the
// active position sits inside a type-expression production, since that is
// the only place a bare primitive-type name is a legal continuation.
func AutocompletePrimitiveType(c *parse.Collection, node activenode.ActiveNode) []string {
	if !node.InBounds {
		return nil
	}
	for _, anc := range node.Ancestry {
		switch activenode.KindOf(c, anc) {
		case ast.NodeKindTypeExpression, ast.NodeKindPrimaryType, ast.NodeKindNullableType,
			ast.NodeKindAsNullablePrimitiveType, ast.NodeKindAsExpression, ast.NodeKindIsExpression:
			names := make([]string, len(lexer.PrimitiveTypeNames))
			copy(names, lexer.PrimitiveTypeNames)
			return names
		}
	}
	return nil
}

// AutocompleteLanguageConstant offers "optional"/"nullable" exactly where
// the grammar treats them as contextual keywords rather than reserved
// words: the start of a Parameter (optional) and the start of an
// AsNullablePrimitiveType's primitive type (nullable).
func AutocompleteLanguageConstant(c *parse.Collection, node activenode.ActiveNode) []string {
	if !node.InBounds {
		return nil
	}
	for _, anc := range node.Ancestry {
		switch activenode.KindOf(c, anc) {
		case ast.NodeKindParameter:
			return []string{lexer.LanguageConstantOptional}
		case ast.NodeKindAsNullablePrimitiveType:
			return []string{lexer.LanguageConstantNullable}
		}
	}
	return nil
}
