package parser

import (
	"fmt"

	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/parse"
	"github.com/odvcencio/powerquery-parser/text"
)

// ParseError wraps every rule failure with the parse state it happened in
// — state.Collection's partial tree is exactly what inspection consumes
// after a failed parse (spec §4.3/§7).
type ParseError struct {
	State *parse.Context
	Inner error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parser: %v", e.Inner) }
func (e *ParseError) Unwrap() error { return e.Inner }

func wrap(ctx *parse.Context, inner error) error {
	if inner == nil {
		return nil
	}
	return &ParseError{State: ctx, Inner: inner}
}

// ExpectedTokenKindError names one expected token kind against the actual
// token found (or end-of-stream).
type ExpectedTokenKindError struct {
	Expected lexer.TokenKind
	Actual   *lexer.Token
	Position text.Position
}

func (e *ExpectedTokenKindError) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("expected %v, found end of input", e.Expected)
	}
	return fmt.Sprintf("expected %v, found %v %q at %+v", e.Expected, e.Actual.Kind, e.Actual.Data, e.Actual.PositionStart)
}

// ExpectedAnyTokenKindError names a set of acceptable token kinds, none of
// which matched.
type ExpectedAnyTokenKindError struct {
	Expected []lexer.TokenKind
	Actual   *lexer.Token
	Position text.Position
}

func (e *ExpectedAnyTokenKindError) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("expected one of %v, found end of input", e.Expected)
	}
	return fmt.Sprintf("expected one of %v, found %v %q at %+v", e.Expected, e.Actual.Kind, e.Actual.Data, e.Actual.PositionStart)
}

// ExpectedGeneralizedIdentifierError is raised when a generalized
// identifier (a run of identifier/keyword tokens) was required but the
// next token cannot start one.
type ExpectedGeneralizedIdentifierError struct {
	Position text.Position
}

func (e *ExpectedGeneralizedIdentifierError) Error() string {
	return fmt.Sprintf("expected a generalized identifier at %+v", e.Position)
}

// CsvContinuationKind discriminates the two ExpectedCsvContinuation cases
// the source ambiguity note (spec §9) calls out.
type CsvContinuationKind int

const (
	CsvContinuationDanglingComma CsvContinuationKind = iota
	CsvContinuationLetExpression
)

// ExpectedCsvContinuationError is raised for a trailing comma with no
// following element, or a let-expression with no bindings at all.
//
// Policy (spec §9 open question, decided here): a trailing comma is always
// reported as DanglingComma *except* when it is the comma separating "let"
// from an empty binding list with no identifier at all (i.e. "let in ..."
// or "let , in ...") — that specific shape is LetExpression, since there
// is no comma to dangle on, only an absent first binding. A case like
// "let a = 1, in 1" (a comma followed directly by "in") is DanglingComma:
// a binding was started and abandoned, which is a different failure than
// a let with zero bindings.
type ExpectedCsvContinuationError struct {
	Kind     CsvContinuationKind
	Position text.Position
}

func (e *ExpectedCsvContinuationError) Error() string {
	if e.Kind == CsvContinuationLetExpression {
		return fmt.Sprintf("let expression requires at least one binding at %+v", e.Position)
	}
	return fmt.Sprintf("dangling comma at %+v", e.Position)
}

// InvalidLiteralError is raised when a literal token's text cannot form
// a literal expression of the kind implied by its lexical category.
type InvalidLiteralError struct {
	Actual   lexer.Token
	Position text.Position
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("invalid literal %q at %+v", e.Actual.Data, e.Position)
}

// InvalidPrimitiveTypeError is raised when "type" syntax requires a
// primitive type name and the actual identifier is not one.
type InvalidPrimitiveTypeError struct {
	Actual   lexer.Token
	Position text.Position
}

func (e *InvalidPrimitiveTypeError) Error() string {
	return fmt.Sprintf("invalid primitive type %q at %+v", e.Actual.Data, e.Position)
}

// RequiredParameterAfterOptionalParameterError is raised when a
// non-optional parameter follows an optional one in a parameter list.
type RequiredParameterAfterOptionalParameterError struct {
	Actual lexer.Token
}

func (e *RequiredParameterAfterOptionalParameterError) Error() string {
	return fmt.Sprintf("required parameter %q follows an optional parameter", e.Actual.Data)
}

// UnterminatedBracketError/UnterminatedParenthesesError carry the opening
// token as context for an opened-but-never-closed `[`/`(`.
type UnterminatedBracketError struct {
	Opening lexer.Token
}

func (e *UnterminatedBracketError) Error() string {
	return fmt.Sprintf("unterminated bracket opened at %+v", e.Opening.PositionStart)
}

type UnterminatedParenthesesError struct {
	Opening lexer.Token
}

func (e *UnterminatedParenthesesError) Error() string {
	return fmt.Sprintf("unterminated parenthesis opened at %+v", e.Opening.PositionStart)
}

// UnusedTokensRemainError is raised when a document-level parse completes
// but tokens remain in the stream.
type UnusedTokensRemainError struct {
	Actual lexer.Token
}

func (e *UnusedTokensRemainError) Error() string {
	return fmt.Sprintf("unused tokens remain starting at %+v", e.Actual.PositionStart)
}

// CancellationError is raised when a cooperative cancellation token was
// observed set; it carries the partial id map exactly as any other parse
// error (spec §5).
type CancellationError struct{}

func (e *CancellationError) Error() string { return "parse cancelled" }
