package parser

import (
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/parse"
	"github.com/odvcencio/powerquery-parser/text"
)

// state is the mutable handle every rule function receives: the parse
// context plus the Reader table it should recurse through, so a caller who
// swapped out one rule sees that substitution honored by every recursive
// call below it, not just the top-level entry point.
type state struct {
	ctx *parse.Context
	r   *Reader
}

func expect(s *state, kind lexer.TokenKind) (lexer.Token, error) {
	tok, ok := s.ctx.PeekToken(0)
	if !ok || tok.Kind != kind {
		var actual *lexer.Token
		if ok {
			actual = &tok
		}
		pos := eofPosition(s)
		if ok {
			pos = tok.PositionStart
		}
		return lexer.Token{}, &ExpectedTokenKindError{Expected: kind, Actual: actual, Position: pos}
	}
	s.ctx.ReadToken()
	return tok, nil
}

func expectAny(s *state, kinds ...lexer.TokenKind) (lexer.Token, error) {
	tok, ok := s.ctx.PeekToken(0)
	if ok {
		for _, k := range kinds {
			if tok.Kind == k {
				s.ctx.ReadToken()
				return tok, nil
			}
		}
	}
	var actual *lexer.Token
	if ok {
		actual = &tok
	}
	pos := eofPosition(s)
	if ok {
		pos = tok.PositionStart
	}
	return lexer.Token{}, &ExpectedAnyTokenKindError{Expected: kinds, Actual: actual, Position: pos}
}

// deleteUnlessPreserved drops id's context on failure, unless cause is one
// of the unterminated-delimiter errors: those mean a real child subtree was
// already built before the missing close was discovered, and the parser
// does not unwind on error (spec's non-unwinding partial-tree guarantee) —
// every ancestor on the way back up the call stack leaves its own context
// standing too, so the open bracket/paren/brace and everything inside it
// stays reachable for inspection.
func deleteUnlessPreserved(s *state, id int, cause error) {
	if isPreservingError(cause) {
		return
	}
	s.ctx.DeleteContext(id)
}

func isPreservingError(err error) bool {
	switch err.(type) {
	case *UnterminatedBracketError, *UnterminatedParenthesesError:
		return true
	default:
		return false
	}
}

func peekIsAny(s *state, kinds ...lexer.TokenKind) bool {
	tok, ok := s.ctx.PeekToken(0)
	if !ok {
		return false
	}
	for _, k := range kinds {
		if tok.Kind == k {
			return true
		}
	}
	return false
}

func eofPosition(s *state) (pos text.Position) {
	if n := len(s.ctx.Snapshot.Tokens); n > 0 {
		return s.ctx.Snapshot.Tokens[n-1].PositionEnd
	}
	return pos
}

// constant reads and expects exactly kind, emitting a Constant leaf spelled
// out with the token's literal source text.
func constant(s *state, kind lexer.TokenKind) (ast.Node, error) {
	tok, err := expect(s, kind)
	if err != nil {
		return ast.Node{}, err
	}
	return s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, tok.Data), nil
}

func maybeConstant(s *state, kind lexer.TokenKind) (ast.Node, bool) {
	if !peekIsAny(s, kind) {
		return ast.Node{}, false
	}
	tok, _ := s.ctx.ReadToken()
	return s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, tok.Data), true
}

// generalizedIdentifierTokenKinds is the set of token kinds allowed to
// appear inside a generalized identifier: identifiers plus every reserved
// keyword, since M permits keywords as field names (spec §2 glossary).
var generalizedIdentifierTokenKinds = map[lexer.TokenKind]struct{}{
	lexer.TokenKindIdentifier: {},
}

func init() {
	for _, kind := range lexer.Keywords {
		generalizedIdentifierTokenKinds[kind] = struct{}{}
	}
}

func isGeneralizedIdentifierStart(s *state) bool {
	tok, ok := s.ctx.PeekToken(0)
	if !ok {
		return false
	}
	_, allowed := generalizedIdentifierTokenKinds[tok.Kind]
	return allowed || tok.Kind == lexer.TokenKindDot
}

// readGeneralizedIdentifier consumes a run of identifier/keyword tokens
// optionally joined by "." and emits a single leaf with the joined text
// (spec §2: "dotted, keyword-tolerant name").
func readGeneralizedIdentifier(s *state) (ast.Node, error) {
	if !isGeneralizedIdentifierStart(s) {
		pos := eofPosition(s)
		if tok, ok := s.ctx.PeekToken(0); ok {
			pos = tok.PositionStart
		}
		return ast.Node{}, &ExpectedGeneralizedIdentifierError{Position: pos}
	}

	startIdx := s.ctx.TokenIndex()
	text := ""
	for {
		tok, ok := s.ctx.PeekToken(0)
		if !ok {
			break
		}
		_, isWord := generalizedIdentifierTokenKinds[tok.Kind]
		if !isWord && tok.Kind != lexer.TokenKindDot {
			break
		}
		s.ctx.ReadToken()
		text += tok.Data
		if tok.Kind == lexer.TokenKindDot {
			continue
		}
		next, ok := s.ctx.PeekToken(0)
		if !ok || next.Kind != lexer.TokenKindDot {
			break
		}
	}

	return s.ctx.NewLeaf(ast.NodeKindGeneralizedIdentifier, startIdx, text), nil
}

// readCsv reads a comma-separated, possibly-empty sequence of elements via
// readOne, wrapping the result in a CsvArray/Csv pair of context nodes so
// each element's trailing-comma presence is preserved for inspection
// (invoke-argument boundaries, spec §4.2).
func readCsv(s *state, allowEmpty bool, emptyKind CsvContinuationKind, readOne func(*state) (ast.Node, error)) (ast.Node, error) {
	arrayId := s.ctx.StartContext(ast.NodeKindCsvArray)

	first := true
	for {
		offset := 0
		if !first {
			tok, hasNext := s.ctx.PeekToken(0)
			if !hasNext || tok.Kind != lexer.TokenKindComma {
				break
			}
			offset = 1 // the element starts after the not-yet-consumed comma
		}

		if !canStartCsvElement(s, offset) {
			if first {
				if allowEmpty {
					break
				}
				pos := eofPosition(s)
				if t, ok := s.ctx.PeekToken(0); ok {
					pos = t.PositionStart
				}
				s.ctx.DeleteContext(arrayId)
				return ast.Node{}, &ExpectedCsvContinuationError{Kind: emptyKind, Position: pos}
			}
			pos := eofPosition(s)
			if t, ok := s.ctx.PeekToken(0); ok {
				pos = t.PositionStart
			}
			s.ctx.DeleteContext(arrayId)
			return ast.Node{}, &ExpectedCsvContinuationError{Kind: CsvContinuationDanglingComma, Position: pos}
		}

		csvId := s.ctx.StartContext(ast.NodeKindCsv)
		if !first {
			constant(s, lexer.TokenKindComma)
		}
		if _, err := readOne(s); err != nil {
			deleteUnlessPreserved(s, csvId, err)
			deleteUnlessPreserved(s, arrayId, err)
			return ast.Node{}, err
		}
		s.ctx.EndContext(csvId)
		first = false
	}

	return s.ctx.EndContext(arrayId), nil
}

// canStartCsvElement is a conservative first-set check used to decide
// whether a Csv loop should keep iterating instead of treating the next
// token as a hard parse error. It intentionally only excludes punctuation
// that can never begin an expression/parameter/field pair, rather than
// maintaining parallel first-sets per readOne callback. offset is how many
// tokens ahead of the read position the element would start.
func canStartCsvElement(s *state, offset int) bool {
	tok, ok := s.ctx.PeekToken(offset)
	if !ok {
		return false
	}
	switch tok.Kind {
	case lexer.TokenKindRightParenthesis, lexer.TokenKindRightBracket, lexer.TokenKindRightBrace,
		lexer.TokenKindComma, lexer.TokenKindSemicolon, lexer.TokenKindEof,
		lexer.TokenKindKeywordIn: // only legal after a let-expression's binding list, never the start of one
		return false
	default:
		return true
	}
}
