package lexer

import "github.com/odvcencio/powerquery-parser/text"

// TokenKind enumerates every lexical category the lexer can produce.
type TokenKind int

const (
	TokenKindUnknown TokenKind = iota

	// Literals and identifiers.
	TokenKindIdentifier
	TokenKindGeneralizedIdentifier // only produced by the parser from runs of identifiers/keywords; never emitted by the lexer itself
	TokenKindNumericLiteral
	TokenKindHexLiteral
	TokenKindTextLiteral
	TokenKindKeywordNull

	// Keywords.
	TokenKindKeywordAnd
	TokenKindKeywordAs
	TokenKindKeywordEach
	TokenKindKeywordElse
	TokenKindKeywordError
	TokenKindKeywordFalse
	TokenKindKeywordIf
	TokenKindKeywordIn
	TokenKindKeywordIs
	TokenKindKeywordLet
	TokenKindKeywordMeta
	TokenKindKeywordNot
	TokenKindKeywordOr
	TokenKindKeywordOtherwise
	TokenKindKeywordSection
	TokenKindKeywordShared
	TokenKindKeywordThen
	TokenKindKeywordTrue
	TokenKindKeywordTry
	TokenKindKeywordType
	TokenKindKeywordHashSections
	TokenKindKeywordHashShared

	// Punctuators.
	TokenKindLeftParenthesis
	TokenKindRightParenthesis
	TokenKindLeftBracket
	TokenKindRightBracket
	TokenKindLeftBrace
	TokenKindRightBrace
	TokenKindComma
	TokenKindSemicolon
	TokenKindColon
	TokenKindAtSign
	TokenKindQuestionMark
	TokenKindEqual
	TokenKindNotEqual // <>
	TokenKindLessThan
	TokenKindLessThanEqualTo
	TokenKindGreaterThan
	TokenKindGreaterThanEqualTo
	TokenKindPlus
	TokenKindMinus
	TokenKindAsterisk
	TokenKindDivision
	TokenKindAmpersand
	TokenKindDotDot       // ..
	TokenKindEllipsis     // ...
	TokenKindFatArrow     // =>
	TokenKindDot          // .

	TokenKindEof
)

var tokenKindNames = map[TokenKind]string{
	TokenKindUnknown:                "Unknown",
	TokenKindIdentifier:             "Identifier",
	TokenKindGeneralizedIdentifier:  "GeneralizedIdentifier",
	TokenKindNumericLiteral:         "NumericLiteral",
	TokenKindHexLiteral:             "HexLiteral",
	TokenKindTextLiteral:            "TextLiteral",
	TokenKindKeywordNull:            "NullLiteral",
	TokenKindKeywordAnd:             "KeywordAnd",
	TokenKindKeywordAs:              "KeywordAs",
	TokenKindKeywordEach:            "KeywordEach",
	TokenKindKeywordElse:            "KeywordElse",
	TokenKindKeywordError:           "KeywordError",
	TokenKindKeywordFalse:           "KeywordFalse",
	TokenKindKeywordIf:              "KeywordIf",
	TokenKindKeywordIn:              "KeywordIn",
	TokenKindKeywordIs:              "KeywordIs",
	TokenKindKeywordLet:             "KeywordLet",
	TokenKindKeywordMeta:            "KeywordMeta",
	TokenKindKeywordNot:             "KeywordNot",
	TokenKindKeywordOr:              "KeywordOr",
	TokenKindKeywordOtherwise:       "KeywordOtherwise",
	TokenKindKeywordSection:         "KeywordSection",
	TokenKindKeywordShared:          "KeywordShared",
	TokenKindKeywordThen:            "KeywordThen",
	TokenKindKeywordTrue:            "KeywordTrue",
	TokenKindKeywordTry:             "KeywordTry",
	TokenKindKeywordType:            "KeywordType",
	TokenKindKeywordHashSections:    "KeywordHashSections",
	TokenKindKeywordHashShared:      "KeywordHashShared",
	TokenKindLeftParenthesis:        "LeftParenthesis",
	TokenKindRightParenthesis:       "RightParenthesis",
	TokenKindLeftBracket:            "LeftBracket",
	TokenKindRightBracket:           "RightBracket",
	TokenKindLeftBrace:              "LeftBrace",
	TokenKindRightBrace:             "RightBrace",
	TokenKindComma:                  "Comma",
	TokenKindSemicolon:              "Semicolon",
	TokenKindColon:                  "Colon",
	TokenKindAtSign:                 "AtSign",
	TokenKindQuestionMark:           "QuestionMark",
	TokenKindEqual:                  "Equal",
	TokenKindNotEqual:               "NotEqual",
	TokenKindLessThan:               "LessThan",
	TokenKindLessThanEqualTo:        "LessThanEqualTo",
	TokenKindGreaterThan:            "GreaterThan",
	TokenKindGreaterThanEqualTo:     "GreaterThanEqualTo",
	TokenKindPlus:                   "Plus",
	TokenKindMinus:                  "Minus",
	TokenKindAsterisk:               "Asterisk",
	TokenKindDivision:               "Division",
	TokenKindAmpersand:              "Ampersand",
	TokenKindDotDot:                 "DotDot",
	TokenKindEllipsis:               "Ellipsis",
	TokenKindFatArrow:               "FatArrow",
	TokenKindDot:                    "Dot",
	TokenKindEof:                    "Eof",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Keywords is the fixed reserved-word table; identifiers whose text
// matches one of these are reclassified at lex time.
var Keywords = map[string]TokenKind{
	"and":       TokenKindKeywordAnd,
	"as":        TokenKindKeywordAs,
	"each":      TokenKindKeywordEach,
	"else":      TokenKindKeywordElse,
	"error":     TokenKindKeywordError,
	"false":     TokenKindKeywordFalse,
	"if":        TokenKindKeywordIf,
	"in":        TokenKindKeywordIn,
	"is":        TokenKindKeywordIs,
	"let":       TokenKindKeywordLet,
	"meta":      TokenKindKeywordMeta,
	"not":       TokenKindKeywordNot,
	"null":      TokenKindKeywordNull,
	"or":        TokenKindKeywordOr,
	"otherwise": TokenKindKeywordOtherwise,
	"section":   TokenKindKeywordSection,
	"shared":    TokenKindKeywordShared,
	"then":      TokenKindKeywordThen,
	"true":      TokenKindKeywordTrue,
	"try":       TokenKindKeywordTry,
	"type":      TokenKindKeywordType,
}

// PrimitiveTypeNames is the closed set of primitive type keywords
// recognized for type-expression parsing and autocomplete (§4.6).
var PrimitiveTypeNames = []string{
	"action", "any", "anynonnull", "binary", "date", "datetime",
	"datetimezone", "duration", "function", "list", "logical", "none",
	"null", "number", "record", "table", "text", "time", "type",
}

// LanguageConstants are the non-reserved contextual keywords offered by
// the language-constant autocomplete provider (§4.6).
const (
	LanguageConstantNullable = "nullable"
	LanguageConstantOptional = "optional"
)

// Token is a tagged record carrying its classification, source slice, and
// absolute start/end positions.
type Token struct {
	Kind          TokenKind
	Data          string
	PositionStart text.Position
	PositionEnd   text.Position
}
