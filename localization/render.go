package localization

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/parser"
	"github.com/odvcencio/powerquery-parser/task"
)

// Render executes the template registered for tag in locale against data,
// returning the rendered message. data is typically a struct literal
// mirroring one of the core error types' exported fields; text/template
// reads its fields directly, the same way Tangerg-lynx's prompt templates
// render a map/struct of named values.
func Render(locale string, tag Tag, data any) (string, error) {
	src, ok := templateFor(locale, tag)
	if !ok {
		return "", fmt.Errorf("localization: no message template for tag %q", tag)
	}

	tmpl, err := template.New(string(tag)).Parse(src)
	if err != nil {
		return "", fmt.Errorf("localization: parsing template for tag %q: %w", tag, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("localization: rendering tag %q: %w", tag, err)
	}
	return sb.String(), nil
}

// Message renders whichever structured error this module raised into a
// locale-appropriate string. It unwraps task.LexError and
// parser.ParseError wrappers first and renders a task.CommonError from its
// own message or kind; anything else is dispatched on its concrete lexer/
// parser error type. The second return is false for an error
// this package doesn't recognize (a caller should fall back to err.Error()
// in that case, not treat it as a localization failure).
func Message(locale string, err error) (string, bool) {
	for {
		switch e := err.(type) {
		case *task.LexError:
			err = e.Inner
		case *parser.ParseError:
			err = e.Inner
		case *task.CommonError:
			return commonMessage(locale, e)
		default:
			return dispatch(locale, err)
		}
	}
}

func commonMessage(locale string, e *task.CommonError) (string, bool) {
	if e.Message != "" {
		return e.Message, true
	}
	switch e.Kind {
	case task.CommonErrorCancellation:
		return "the operation was cancelled", true
	case task.CommonErrorInvalidPosition:
		return "the position is outside the document", true
	default:
		return "an internal invariant was violated", true
	}
}

func dispatch(locale string, err error) (string, bool) {
	switch e := err.(type) {
	case *lexer.LineError:
		msg, ok := dispatch(locale, e.Inner)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("line %d: %s", e.LineNumber, msg), true

	case *lexer.BadLineNumberError:
		tag := TagBadLineNumberGreaterThanNumLines
		if e.Kind == lexer.BadLineNumberLessThanZero {
			tag = TagBadLineNumberLessThanZero
		}
		return render(locale, tag, e)

	case *lexer.BadRangeError:
		return render(locale, badRangeTag(e.Kind), e)

	case *lexer.ExpectedError:
		return render(locale, expectedKindTag(e.Kind), e)

	case *lexer.UnterminatedMultilineTokenError:
		return render(locale, unterminatedMultilineTag(e.Kind), e)

	case *lexer.UnexpectedReadError:
		return render(locale, TagUnexpectedRead, e)

	case *lexer.UnexpectedEofError:
		return render(locale, TagEndOfStream, e)

	case *parser.ExpectedTokenKindError:
		return render(locale, TagExpectedTokenKind, e)

	case *parser.ExpectedAnyTokenKindError:
		return render(locale, TagExpectedAnyTokenKind, e)

	case *parser.ExpectedGeneralizedIdentifierError:
		return render(locale, TagExpectedGeneralizedIdentifier, e)

	case *parser.ExpectedCsvContinuationError:
		tag := TagExpectedCsvContinuationDanglingComma
		if e.Kind == parser.CsvContinuationLetExpression {
			tag = TagExpectedCsvContinuationLetExpression
		}
		return render(locale, tag, e)

	case *parser.InvalidLiteralError:
		return render(locale, TagInvalidLiteral, e)

	case *parser.InvalidPrimitiveTypeError:
		return render(locale, TagInvalidPrimitiveType, e)

	case *parser.RequiredParameterAfterOptionalParameterError:
		return render(locale, TagRequiredParameterAfterOptional, e)

	case *parser.UnterminatedBracketError:
		return render(locale, TagUnterminatedBracket, e)

	case *parser.UnterminatedParenthesesError:
		return render(locale, TagUnterminatedParenthesis, e)

	case *parser.UnusedTokensRemainError:
		return render(locale, TagUnusedTokens, e)

	default:
		return "", false
	}
}

func render(locale string, tag Tag, data any) (string, bool) {
	msg, err := Render(locale, tag, data)
	if err != nil {
		return "", false
	}
	return msg, true
}

func badRangeTag(kind lexer.BadRangeKind) Tag {
	switch kind {
	case lexer.BadRangeSameLineLineCodeUnitStartHigher:
		return TagBadRangeSameLineLineCodeUnitStartHigher
	case lexer.BadRangeLineNumberStartGreaterThanLineNumberEnd:
		return TagBadRangeLineNumberStartGreaterThanLineNumberEnd
	case lexer.BadRangeLineNumberStartLessThanZero:
		return TagBadRangeLineNumberStartLessThanZero
	case lexer.BadRangeLineNumberStartGreaterThanNumLines:
		return TagBadRangeLineNumberStartGreaterThanNumLines
	case lexer.BadRangeLineNumberEndGreaterThanNumLines:
		return TagBadRangeLineNumberEndGreaterThanNumLines
	case lexer.BadRangeLineCodeUnitStartGreaterThanLineLength:
		return TagBadRangeLineCodeUnitStartGreaterThanLineLength
	default:
		return TagBadRangeLineCodeUnitEndGreaterThanLineLength
	}
}

func expectedKindTag(kind lexer.ExpectedKind) Tag {
	switch kind {
	case lexer.ExpectedHexLiteral:
		return TagExpectedHexLiteral
	case lexer.ExpectedKeywordOrIdentifier:
		return TagExpectedKeywordOrIdentifier
	default:
		return TagExpectedNumeric
	}
}

func unterminatedMultilineTag(kind lexer.UnterminatedMultilineTokenKind) Tag {
	switch kind {
	case lexer.UnterminatedMultilineComment:
		return TagUnterminatedMultilineComment
	case lexer.UnterminatedQuotedIdentifier:
		return TagUnterminatedQuotedIdentifier
	default:
		return TagUnterminatedMultilineString
	}
}
