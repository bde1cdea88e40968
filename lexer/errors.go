package lexer

import (
	"fmt"

	"github.com/odvcencio/powerquery-parser/text"
)

// BadLineNumberKind discriminates the ways a line index can be invalid.
type BadLineNumberKind int

const (
	BadLineNumberGreaterThanNumLines BadLineNumberKind = iota
	BadLineNumberLessThanZero
)

// BadLineNumberError is returned by any API call naming a line out of range.
type BadLineNumberError struct {
	Kind       BadLineNumberKind
	LineNumber int
	NumLines   int
}

func (e *BadLineNumberError) Error() string {
	switch e.Kind {
	case BadLineNumberLessThanZero:
		return fmt.Sprintf("lexer: line number %d is less than zero", e.LineNumber)
	default:
		return fmt.Sprintf("lexer: line number %d exceeds line count %d", e.LineNumber, e.NumLines)
	}
}

// BadRangeKind enumerates the seven ways a Range can fail validation.
type BadRangeKind int

const (
	BadRangeSameLineLineCodeUnitStartHigher BadRangeKind = iota
	BadRangeLineNumberStartGreaterThanLineNumberEnd
	BadRangeLineNumberStartLessThanZero
	BadRangeLineNumberStartGreaterThanNumLines
	BadRangeLineNumberEndGreaterThanNumLines
	BadRangeLineCodeUnitStartGreaterThanLineLength
	BadRangeLineCodeUnitEndGreaterThanLineLength
)

// Range names a span of text by (line, code-unit) endpoints, used by
// tryUpdateRange.
type Range struct {
	Start text.Position
	End   text.Position
}

// BadRangeError is returned when a Range passed to tryUpdateRange is
// inconsistent with the LexerState it is applied against.
type BadRangeError struct {
	Kind  BadRangeKind
	Range Range
}

func (e *BadRangeError) Error() string {
	return fmt.Sprintf("lexer: invalid range %+v (%d)", e.Range, e.Kind)
}

// ExpectedKind names what a partial numeric/hex/identifier read wanted.
type ExpectedKind int

const (
	ExpectedHexLiteral ExpectedKind = iota
	ExpectedKeywordOrIdentifier
	ExpectedNumeric
)

// ExpectedError reports a partial read that never produced a well-formed
// token of the kind it started.
type ExpectedError struct {
	Kind     ExpectedKind
	Position text.Position
}

func (e *ExpectedError) Error() string {
	return fmt.Sprintf("lexer: expected %v at %+v", e.Kind, e.Position)
}

// UnterminatedMultilineTokenKind names which multi-line construct never closed.
type UnterminatedMultilineTokenKind int

const (
	UnterminatedMultilineComment UnterminatedMultilineTokenKind = iota
	UnterminatedQuotedIdentifier
	UnterminatedString
)

// UnterminatedMultilineTokenError is returned when a string, quoted
// identifier, or block comment never finds its closing delimiter before
// end of document.
type UnterminatedMultilineTokenError struct {
	Kind            UnterminatedMultilineTokenKind
	OpeningPosition text.Position
}

func (e *UnterminatedMultilineTokenError) Error() string {
	return fmt.Sprintf("lexer: unterminated multiline token opened at %+v", e.OpeningPosition)
}

// UnexpectedReadError is returned when a code unit begins no token the
// lexer recognizes.
type UnexpectedReadError struct {
	Position text.Position
}

func (e *UnexpectedReadError) Error() string {
	return fmt.Sprintf("lexer: unexpected character at %+v", e.Position)
}

// UnexpectedEofError is returned when a line terminator was required but
// the input ended first.
type UnexpectedEofError struct {
	Position text.Position
}

func (e *UnexpectedEofError) Error() string {
	return fmt.Sprintf("lexer: unexpected end of input at %+v", e.Position)
}

// LineError is any one of the per-line lex failures above, attached to a
// single line index in an errorLineMap.
type LineError struct {
	LineNumber int
	Inner      error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("lexer: line %d: %v", e.LineNumber, e.Inner)
}

func (e *LineError) Unwrap() error { return e.Inner }
