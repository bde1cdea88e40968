package parser

import (
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
)

// binaryLevel names one rung of the infix operator precedence ladder used
// by both the recursive-descent chain (recursive.go, one rule function per
// rung) and the combinatorial reader's flat precedence-climbing loop
// (combinator.go). Looser binds lower in this slice.
type binaryLevel struct {
	kind ast.NodeKind
	ops  map[lexer.TokenKind]struct{}
}

func ops(kinds ...lexer.TokenKind) map[lexer.TokenKind]struct{} {
	m := make(map[lexer.TokenKind]struct{}, len(kinds))
	for _, k := range kinds {
		m[k] = struct{}{}
	}
	return m
}

// binaryLevels is ordered loosest-to-tightest: index 0 is tried first by
// the combinatorial reader's precedence climb, and is the outermost call
// in the recursive-descent chain.
var binaryLevels = []binaryLevel{
	{kind: ast.NodeKindLogicalExpression, ops: ops(lexer.TokenKindKeywordOr)},
	{kind: ast.NodeKindLogicalExpression, ops: ops(lexer.TokenKindKeywordAnd)},
	{kind: ast.NodeKindEqualityExpression, ops: ops(lexer.TokenKindEqual, lexer.TokenKindNotEqual)},
	{kind: ast.NodeKindRelationalExpression, ops: ops(
		lexer.TokenKindLessThan, lexer.TokenKindLessThanEqualTo,
		lexer.TokenKindGreaterThan, lexer.TokenKindGreaterThanEqualTo,
	)},
	{kind: ast.NodeKindArithmeticExpression, ops: ops(lexer.TokenKindPlus, lexer.TokenKindMinus, lexer.TokenKindAmpersand)},
	{kind: ast.NodeKindArithmeticExpression, ops: ops(lexer.TokenKindAsterisk, lexer.TokenKindDivision)},
}
