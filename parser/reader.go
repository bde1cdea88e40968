// Package parser reads a token snapshot into a parse tree through a
// Reader: a record of function fields, one per grammar rule, rather than
// a type hierarchy. Two tables are provided — NewRecursiveDescentReader
// and NewCombinatorialReader — built from the same underlying rule
// functions where the strategies agree, and diverging only in how binary
// operator expressions are read. Swapping a single rule is a matter of
// reassigning one field on the table the caller already has; nothing here
// dispatches through an interface or a subclass.
package parser

import (
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/parse"
)

type ruleFunc func(*state) (ast.Node, error)

// Reader is the full grammar rule table. Every field has the same shape —
// read the current state and return the node produced, or an error — so a
// caller can override one rule in place and every other rule that calls
// through r.ReadXxx(s) observes the substitution on its next recursive
// call.
type Reader struct {
	ReadDocument        ruleFunc
	ReadSectionDocument ruleFunc
	ReadSectionMembers  ruleFunc
	ReadSectionMember   ruleFunc

	ReadExpression            ruleFunc
	ReadLogicalExpression     ruleFunc
	ReadIsExpression          ruleFunc
	ReadAsExpression          ruleFunc
	ReadEqualityExpression    ruleFunc
	ReadRelationalExpression  ruleFunc
	ReadArithmeticExpression  ruleFunc
	ReadMetadataExpression    ruleFunc
	ReadUnaryExpression       ruleFunc
	ReadTypeExpression        ruleFunc
	ReadPrimaryExpression     ruleFunc
	ReadLiteralExpression     ruleFunc
	ReadIdentifierExpression  ruleFunc
	ReadParenthesizedExpression ruleFunc

	ReadInvokeExpression        func(*state, ast.Node) (ast.Node, error)
	ReadItemAccessExpression    func(*state, ast.Node) (ast.Node, error)
	ReadFieldSelector           func(*state, bool) (ast.Node, error)
	ReadFieldProjection         func(*state, ast.Node) (ast.Node, error)
	ReadListExpression          ruleFunc
	ReadRecordExpression        ruleFunc
	ReadRecordLiteral           ruleFunc

	ReadFunctionExpression ruleFunc
	ReadParameterList      ruleFunc
	ReadParameter          ruleFunc

	ReadEachExpression ruleFunc
	ReadLetExpression  ruleFunc
	ReadIfExpression   ruleFunc

	ReadErrorRaisingExpression  ruleFunc
	ReadErrorHandlingExpression ruleFunc

	ReadType            ruleFunc
	ReadPrimaryType     ruleFunc
	ReadRecordType      ruleFunc
	ReadTableType       ruleFunc
	ReadListType        ruleFunc
	ReadFunctionType    ruleFunc
	ReadNullableType    ruleFunc

	ReadIdentifierPairedExpression           ruleFunc
	ReadGeneralizedIdentifierPairedExpression ruleFunc
}

// Parse runs r.ReadDocument over ctx and returns the completed root node,
// or an error wrapping ctx so its partial tree remains inspectable.
func Parse(ctx *parse.Context, r *Reader) (ast.Node, error) {
	s := &state{ctx: ctx, r: r}
	node, err := r.ReadDocument(s)
	if err != nil {
		return ast.Node{}, wrap(ctx, err)
	}
	if !ctx.AtEnd() {
		tok, _ := ctx.PeekToken(0)
		return node, wrap(ctx, &UnusedTokensRemainError{Actual: tok})
	}
	return node, nil
}
