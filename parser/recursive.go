package parser

import (
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
)

// NewRecursiveDescentReader returns a Reader whose binary-expression rungs
// are read by straight-line mutual recursion, one function per precedence
// level, each calling directly into the next-tighter level's field on r.
func NewRecursiveDescentReader() *Reader {
	r := &Reader{}
	populateSharedRules(r)

	r.ReadLogicalExpression = rdLogicalExpression
	r.ReadEqualityExpression = func(s *state) (ast.Node, error) {
		return rdBinaryLevel(s, 2, func(s *state) (ast.Node, error) { return s.r.ReadRelationalExpression(s) })
	}
	r.ReadRelationalExpression = func(s *state) (ast.Node, error) {
		return rdBinaryLevel(s, 3, func(s *state) (ast.Node, error) { return s.r.ReadArithmeticExpression(s) })
	}
	r.ReadArithmeticExpression = rdArithmeticAdditive

	return r
}

// populateSharedRules fills in every field that both reader strategies
// implement identically — document/section structure, the keyword-led
// expression forms, primaries and their suffixes, and the type grammar.
// Only the infix-operator rungs differ between the two constructors.
func populateSharedRules(r *Reader) {
	r.ReadDocument = rdDocument
	r.ReadSectionDocument = rdSectionDocument
	r.ReadSectionMembers = rdSectionMembers
	r.ReadSectionMember = rdSectionMember

	r.ReadExpression = rdExpression
	r.ReadIsExpression = rdIsExpression
	r.ReadAsExpression = rdAsExpression
	r.ReadMetadataExpression = rdMetadataExpression
	r.ReadUnaryExpression = rdUnaryExpression
	r.ReadTypeExpression = rdTypeExpression
	r.ReadPrimaryExpression = rdPrimaryExpression
	r.ReadLiteralExpression = rdLiteralExpression
	r.ReadIdentifierExpression = rdIdentifierExpression
	r.ReadParenthesizedExpression = rdParenthesizedExpression

	r.ReadInvokeExpression = rdInvokeExpression
	r.ReadItemAccessExpression = rdItemAccessExpression
	r.ReadFieldSelector = rdFieldSelector
	r.ReadFieldProjection = rdFieldProjection
	r.ReadListExpression = rdListExpression
	r.ReadRecordExpression = rdRecordExpression
	r.ReadRecordLiteral = rdRecordLiteral

	r.ReadFunctionExpression = rdFunctionExpression
	r.ReadParameterList = rdParameterList
	r.ReadParameter = rdParameter

	r.ReadEachExpression = rdEachExpression
	r.ReadLetExpression = rdLetExpression
	r.ReadIfExpression = rdIfExpression

	r.ReadErrorRaisingExpression = rdErrorRaisingExpression
	r.ReadErrorHandlingExpression = rdErrorHandlingExpression

	r.ReadType = rdType
	r.ReadPrimaryType = rdPrimaryType
	r.ReadRecordType = rdRecordType
	r.ReadTableType = rdTableType
	r.ReadListType = rdListType
	r.ReadFunctionType = rdFunctionType
	r.ReadNullableType = rdNullableType

	r.ReadIdentifierPairedExpression = rdIdentifierPairedExpression
	r.ReadGeneralizedIdentifierPairedExpression = rdGeneralizedIdentifierPairedExpression
}

// --- document / section -----------------------------------------------

func rdDocument(s *state) (ast.Node, error) {
	docId := s.ctx.StartContext(ast.NodeKindDocument)

	if s.ctx.AtEnd() {
		return s.ctx.EndContext(docId), nil
	}

	if peekIsAny(s, lexer.TokenKindKeywordSection) {
		if _, err := s.r.ReadSectionDocument(s); err != nil {
			deleteUnlessPreserved(s, docId, err)
			return ast.Node{}, err
		}
		return s.ctx.EndContext(docId), nil
	}

	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, docId, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(docId), nil
}

// rdRecordLiteral reads a "[" GeneralizedIdentifierPairedExpression csv "]"
// attribute record, the form that can precede "section" and each section
// member (spec annotation on ast.NodeKindSection /
// ast.NodeKindSectionMember). It is structurally identical to
// rdRecordExpression but keys are generalized identifiers (keywords
// allowed) rather than plain identifiers.
func rdRecordLiteral(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindRecordLiteral)
	opening, err := expect(s, lexer.TokenKindLeftBracket)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := readCsv(s, true, CsvContinuationDanglingComma, s.r.ReadGeneralizedIdentifierPairedExpression); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightBracket); err != nil {
		return ast.Node{}, wrapUnterminatedBracket(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

// maybeLiteralAttributes reads an optional leading attribute record ahead
// of "section" or a section member. A "[" here is unambiguous: neither
// position can otherwise start a record-expression or any other
// bracket-led production.
func maybeLiteralAttributes(s *state) error {
	if !peekIsAny(s, lexer.TokenKindLeftBracket) {
		return nil
	}
	_, err := s.r.ReadRecordLiteral(s)
	return err
}

func rdSectionDocument(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindSection)
	if err := maybeLiteralAttributes(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := constant(s, lexer.TokenKindKeywordSection); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if peekIsAny(s, lexer.TokenKindIdentifier) {
		if _, err := readGeneralizedIdentifier(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
	}
	if _, err := constant(s, lexer.TokenKindSemicolon); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadSectionMembers(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdSectionMembers(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindCsvArray)
	for peekIsAny(s, lexer.TokenKindKeywordShared, lexer.TokenKindIdentifier, lexer.TokenKindLeftBracket) {
		if _, err := s.r.ReadSectionMember(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
	}
	return s.ctx.EndContext(id), nil
}

func rdSectionMember(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindSectionMember)
	if err := maybeLiteralAttributes(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	maybeConstant(s, lexer.TokenKindKeywordShared)
	if _, err := s.r.ReadIdentifierPairedExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := constant(s, lexer.TokenKindSemicolon); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

// --- expression dispatch -----------------------------------------------

func rdExpression(s *state) (ast.Node, error) {
	switch {
	case peekIsAny(s, lexer.TokenKindKeywordEach):
		return s.r.ReadEachExpression(s)
	case peekIsAny(s, lexer.TokenKindKeywordLet):
		return s.r.ReadLetExpression(s)
	case peekIsAny(s, lexer.TokenKindKeywordIf):
		return s.r.ReadIfExpression(s)
	case peekIsAny(s, lexer.TokenKindKeywordError):
		return s.r.ReadErrorRaisingExpression(s)
	case peekIsAny(s, lexer.TokenKindKeywordTry):
		return s.r.ReadErrorHandlingExpression(s)
	case peekIsAny(s, lexer.TokenKindLeftParenthesis):
		if node, ok, err := tryFunctionExpression(s); ok {
			return node, err
		}
		return s.r.ReadLogicalExpression(s)
	default:
		return s.r.ReadLogicalExpression(s)
	}
}

// tryFunctionExpression speculatively reads a ParameterList ("as" Type)?
// "=>" Expression starting at "(" — the only production that can follow a
// ParameterList besides a parenthesized expression's close-paren. On any
// mismatch the attempt is rolled back via Seek/DeleteContext and ok=false,
// leaving the caller to retry the same tokens as a ParenthesizedExpression.
func tryFunctionExpression(s *state) (ast.Node, bool, error) {
	startTok := s.ctx.TokenIndex()
	id := s.ctx.StartContext(ast.NodeKindFunctionExpression)

	if _, err := s.r.ReadParameterList(s); err != nil {
		if isPreservingError(err) {
			return ast.Node{}, true, err
		}
		s.ctx.DeleteContext(id)
		s.ctx.Seek(startTok)
		return ast.Node{}, false, nil
	}

	if peekIsAny(s, lexer.TokenKindKeywordAs) {
		asId := s.ctx.StartContext(ast.NodeKindAsNullablePrimitiveType)
		constant(s, lexer.TokenKindKeywordAs)
		if _, err := s.r.ReadType(s); err != nil {
			s.ctx.DeleteContext(asId)
			s.ctx.DeleteContext(id)
			s.ctx.Seek(startTok)
			return ast.Node{}, false, nil
		}
		s.ctx.EndContext(asId)
	}

	if !peekIsAny(s, lexer.TokenKindFatArrow) {
		s.ctx.DeleteContext(id)
		s.ctx.Seek(startTok)
		return ast.Node{}, false, nil
	}
	constant(s, lexer.TokenKindFatArrow)

	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, true, err
	}
	node := s.ctx.EndContext(id)
	return node, true, nil
}

func rdFunctionExpression(s *state) (ast.Node, error) {
	node, ok, err := tryFunctionExpression(s)
	if !ok {
		pos := eofPosition(s)
		if t, peeked := s.ctx.PeekToken(0); peeked {
			pos = t.PositionStart
		}
		return ast.Node{}, &ExpectedTokenKindError{Expected: lexer.TokenKindLeftParenthesis, Position: pos}
	}
	return node, err
}

// --- keyword-led expression forms --------------------------------------

func rdEachExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindEachExpression)
	if _, err := constant(s, lexer.TokenKindKeywordEach); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdLetExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindLetExpression)
	if _, err := constant(s, lexer.TokenKindKeywordLet); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := readCsv(s, false, CsvContinuationLetExpression, s.r.ReadIdentifierPairedExpression); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := constant(s, lexer.TokenKindKeywordIn); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdIfExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindIfExpression)
	if _, err := constant(s, lexer.TokenKindKeywordIf); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := constant(s, lexer.TokenKindKeywordThen); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := constant(s, lexer.TokenKindKeywordElse); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdErrorRaisingExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindErrorRaisingExpression)
	if _, err := constant(s, lexer.TokenKindKeywordError); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdErrorHandlingExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindErrorHandlingExpression)
	if _, err := constant(s, lexer.TokenKindKeywordTry); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if peekIsAny(s, lexer.TokenKindKeywordOtherwise) {
		otherwiseId := s.ctx.StartContext(ast.NodeKindOtherwiseExpression)
		constant(s, lexer.TokenKindKeywordOtherwise)
		if _, err := s.r.ReadExpression(s); err != nil {
			deleteUnlessPreserved(s, otherwiseId, err)
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
		s.ctx.EndContext(otherwiseId)
	}
	return s.ctx.EndContext(id), nil
}

// --- binary operator chain ----------------------------------------------

func rdLogicalExpression(s *state) (ast.Node, error) {
	return rdBinaryLevel(s, 0, func(s *state) (ast.Node, error) {
		return rdBinaryLevel(s, 1, rdIsAsChain)
	})
}

func rdIsAsChain(s *state) (ast.Node, error) { return s.r.ReadIsExpression(s) }

func rdIsExpression(s *state) (ast.Node, error) {
	left, err := s.r.ReadAsExpression(s)
	if err != nil {
		return ast.Node{}, err
	}
	for peekIsAny(s, lexer.TokenKindKeywordIs) {
		id := s.ctx.StartContext(ast.NodeKindIsExpression)
		constant(s, lexer.TokenKindKeywordIs)
		if _, err := s.r.ReadType(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
		left = s.ctx.EndContext(id)
	}
	return left, nil
}

func rdAsExpression(s *state) (ast.Node, error) {
	left, err := s.r.ReadEqualityExpression(s)
	if err != nil {
		return ast.Node{}, err
	}
	for peekIsAny(s, lexer.TokenKindKeywordAs) {
		id := s.ctx.StartContext(ast.NodeKindAsExpression)
		constant(s, lexer.TokenKindKeywordAs)
		if _, err := s.r.ReadType(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
		left = s.ctx.EndContext(id)
	}
	return left, nil
}

// rdBinaryLevel reads a left-associative chain at binaryLevels[levelIdx]:
// next() for the operand one rung tighter, then a loop absorbing any
// matching operator followed by another operand at the same rung.
func rdBinaryLevel(s *state, levelIdx int, next func(*state) (ast.Node, error)) (ast.Node, error) {
	level := binaryLevels[levelIdx]
	left, err := next(s)
	if err != nil {
		return ast.Node{}, err
	}
	for {
		tok, ok := s.ctx.PeekToken(0)
		if !ok {
			break
		}
		if _, matches := level.ops[tok.Kind]; !matches {
			break
		}
		id := s.ctx.StartContext(level.kind)
		opTok, _ := s.ctx.ReadToken()
		s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, opTok.Data)
		if _, err := next(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
		left = s.ctx.EndContext(id)
	}
	return left, nil
}

func rdArithmeticAdditive(s *state) (ast.Node, error) { return rdBinaryLevel(s, 4, rdArithmeticMultiplicative) }

func rdArithmeticMultiplicative(s *state) (ast.Node, error) { return rdBinaryLevel(s, 5, rdMetadataChain) }

func rdMetadataChain(s *state) (ast.Node, error) { return s.r.ReadMetadataExpression(s) }

func rdMetadataExpression(s *state) (ast.Node, error) {
	left, err := s.r.ReadUnaryExpression(s)
	if err != nil {
		return ast.Node{}, err
	}
	for peekIsAny(s, lexer.TokenKindKeywordMeta) {
		id := s.ctx.StartContext(ast.NodeKindMetadataExpression)
		constant(s, lexer.TokenKindKeywordMeta)
		if _, err := s.r.ReadUnaryExpression(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
		left = s.ctx.EndContext(id)
	}
	return left, nil
}

var unaryOperators = map[lexer.TokenKind]struct{}{
	lexer.TokenKindPlus:       {},
	lexer.TokenKindMinus:      {},
	lexer.TokenKindKeywordNot: {},
}

func rdUnaryExpression(s *state) (ast.Node, error) {
	tok, ok := s.ctx.PeekToken(0)
	if !ok {
		return s.r.ReadTypeExpression(s)
	}
	if _, isUnary := unaryOperators[tok.Kind]; !isUnary {
		return s.r.ReadTypeExpression(s)
	}

	id := s.ctx.StartContext(ast.NodeKindUnaryExpression)
	opTok, _ := s.ctx.ReadToken()
	s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, opTok.Data)
	if _, err := rdUnaryExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdTypeExpression(s *state) (ast.Node, error) {
	if !peekIsAny(s, lexer.TokenKindKeywordType) {
		return s.r.ReadPrimaryExpression(s)
	}
	id := s.ctx.StartContext(ast.NodeKindTypeExpression)
	constant(s, lexer.TokenKindKeywordType)
	if _, err := s.r.ReadType(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

// --- primary expressions and suffixes -----------------------------------

var literalTokenKinds = map[lexer.TokenKind]struct{}{
	lexer.TokenKindNumericLiteral: {},
	lexer.TokenKindHexLiteral:     {},
	lexer.TokenKindTextLiteral:    {},
	lexer.TokenKindKeywordNull:    {},
	lexer.TokenKindKeywordTrue:    {},
	lexer.TokenKindKeywordFalse:   {},
}

func rdLiteralExpression(s *state) (ast.Node, error) {
	tok, ok := s.ctx.PeekToken(0)
	if !ok {
		return ast.Node{}, &InvalidLiteralError{Position: eofPosition(s)}
	}
	if _, isLiteral := literalTokenKinds[tok.Kind]; !isLiteral {
		return ast.Node{}, &InvalidLiteralError{Actual: tok, Position: tok.PositionStart}
	}
	s.ctx.ReadToken()
	return s.ctx.NewLeaf(ast.NodeKindLiteralExpression, s.ctx.TokenIndex()-1, tok.Data), nil
}

func rdIdentifierExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindIdentifierExpression)
	maybeConstant(s, lexer.TokenKindAtSign)
	tok, err := expect(s, lexer.TokenKindIdentifier)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	s.ctx.NewLeaf(ast.NodeKindIdentifier, s.ctx.TokenIndex()-1, tok.Data)
	return s.ctx.EndContext(id), nil
}

func rdParenthesizedExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindParenthesizedExpression)
	opening, err := expect(s, lexer.TokenKindLeftParenthesis)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightParenthesis); err != nil {
		return ast.Node{}, wrapUnterminatedParen(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

func wrapUnterminatedParen(opening lexer.Token, cause error) error {
	if _, isExpected := cause.(*ExpectedTokenKindError); isExpected {
		return &UnterminatedParenthesesError{Opening: opening}
	}
	return cause
}

func rdPrimaryExpression(s *state) (ast.Node, error) {
	base, err := rdPrimaryBase(s)
	if err != nil {
		return ast.Node{}, err
	}
	return rdPrimarySuffixLoop(s, base)
}

func rdPrimaryBase(s *state) (ast.Node, error) {
	tok, ok := s.ctx.PeekToken(0)
	if !ok {
		return ast.Node{}, &ExpectedAnyTokenKindError{Position: eofPosition(s)}
	}

	switch tok.Kind {
	case lexer.TokenKindLeftParenthesis:
		return s.r.ReadParenthesizedExpression(s)
	case lexer.TokenKindLeftBrace:
		return s.r.ReadListExpression(s)
	case lexer.TokenKindLeftBracket:
		return s.r.ReadRecordExpression(s)
	case lexer.TokenKindAtSign, lexer.TokenKindIdentifier:
		return s.r.ReadIdentifierExpression(s)
	default:
		if _, isLiteral := literalTokenKinds[tok.Kind]; isLiteral {
			return s.r.ReadLiteralExpression(s)
		}
	}
	return ast.Node{}, &ExpectedAnyTokenKindError{Actual: &tok, Position: tok.PositionStart}
}

// rdPrimarySuffixLoop repeatedly attaches InvokeExpression "(", list-style
// ItemAccessExpression "{", and bracket-style FieldSelector/FieldProjection
// "[" suffixes onto base until none apply, implementing left-recursive
// postfix grammar without actual left recursion.
func rdPrimarySuffixLoop(s *state, base ast.Node) (ast.Node, error) {
	for {
		tok, ok := s.ctx.PeekToken(0)
		if !ok {
			return base, nil
		}
		var err error
		switch tok.Kind {
		case lexer.TokenKindLeftParenthesis:
			base, err = s.r.ReadInvokeExpression(s, base)
		case lexer.TokenKindLeftBrace:
			base, err = s.r.ReadItemAccessExpression(s, base)
		case lexer.TokenKindLeftBracket:
			base, err = rdBracketSuffix(s, base)
		default:
			return base, nil
		}
		if err != nil {
			return ast.Node{}, err
		}
	}
}

// rdBracketSuffix disambiguates FieldSelector ("[" GeneralizedIdentifier
// "]") from FieldProjection ("[" Csv<FieldSelector> "]") by checking
// whether the token right after "[" is itself "[".
func rdBracketSuffix(s *state, base ast.Node) (ast.Node, error) {
	if next, ok := s.ctx.PeekToken(1); ok && next.Kind == lexer.TokenKindLeftBracket {
		return s.r.ReadFieldProjection(s, base)
	}
	node, err := s.r.ReadFieldSelector(s, true)
	if err != nil {
		return ast.Node{}, err
	}
	s.ctx.AdoptPrefix(node.Id, base.Id)
	return node, nil
}

func rdInvokeExpression(s *state, base ast.Node) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindInvokeExpression)
	s.ctx.AdoptPrefix(id, base.Id)
	opening, err := expect(s, lexer.TokenKindLeftParenthesis)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := readCsv(s, true, CsvContinuationDanglingComma, s.r.ReadExpression); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightParenthesis); err != nil {
		return ast.Node{}, wrapUnterminatedParen(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

func rdItemAccessExpression(s *state, base ast.Node) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindItemAccessExpression)
	s.ctx.AdoptPrefix(id, base.Id)
	opening, err := expect(s, lexer.TokenKindLeftBrace)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if peekIsAny(s, lexer.TokenKindComma) {
		constant(s, lexer.TokenKindComma)
		if _, err := s.r.ReadExpression(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
	}
	if _, err := expect(s, lexer.TokenKindRightBrace); err != nil {
		return ast.Node{}, wrapUnterminatedBrace(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

func wrapUnterminatedBrace(opening lexer.Token, cause error) error {
	if _, isExpected := cause.(*ExpectedTokenKindError); isExpected {
		return &UnterminatedBracketError{Opening: opening}
	}
	return cause
}

func rdFieldSelector(s *state, allowOptional bool) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindFieldSelector)
	opening, err := expect(s, lexer.TokenKindLeftBracket)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := readGeneralizedIdentifier(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightBracket); err != nil {
		return ast.Node{}, wrapUnterminatedBracket(opening, err)
	}
	if allowOptional {
		maybeConstant(s, lexer.TokenKindQuestionMark)
	}
	return s.ctx.EndContext(id), nil
}

func wrapUnterminatedBracket(opening lexer.Token, cause error) error {
	if _, isExpected := cause.(*ExpectedTokenKindError); isExpected {
		return &UnterminatedBracketError{Opening: opening}
	}
	return cause
}

func rdFieldProjection(s *state, base ast.Node) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindFieldProjection)
	s.ctx.AdoptPrefix(id, base.Id)
	opening, err := expect(s, lexer.TokenKindLeftBracket)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	readOne := func(s *state) (ast.Node, error) { return s.r.ReadFieldSelector(s, false) }
	if _, err := readCsv(s, false, CsvContinuationDanglingComma, readOne); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightBracket); err != nil {
		return ast.Node{}, wrapUnterminatedBracket(opening, err)
	}
	maybeConstant(s, lexer.TokenKindQuestionMark)
	return s.ctx.EndContext(id), nil
}

func rdListExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindListExpression)
	opening, err := expect(s, lexer.TokenKindLeftBrace)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := readCsv(s, true, CsvContinuationDanglingComma, s.r.ReadExpression); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightBrace); err != nil {
		return ast.Node{}, wrapUnterminatedBrace(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

func rdRecordExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindRecordExpression)
	opening, err := expect(s, lexer.TokenKindLeftBracket)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := readCsv(s, true, CsvContinuationDanglingComma, s.r.ReadIdentifierPairedExpression); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightBracket); err != nil {
		return ast.Node{}, wrapUnterminatedBracket(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

// --- functions and parameters -------------------------------------------

func rdParameterList(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindParameterList)
	opening, err := expect(s, lexer.TokenKindLeftParenthesis)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	seenOptional := false
	readOne := func(s *state) (ast.Node, error) {
		startTok, _ := s.ctx.PeekToken(0)
		node, err := s.r.ReadParameter(s)
		if err != nil {
			return node, err
		}
		isOptional := startTok.Kind == lexer.TokenKindIdentifier && startTok.Data == lexer.LanguageConstantOptional
		if isOptional {
			seenOptional = true
		} else if seenOptional {
			return node, &RequiredParameterAfterOptionalParameterError{Actual: startTok}
		}
		return node, nil
	}
	if _, err := readCsv(s, true, CsvContinuationDanglingComma, readOne); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightParenthesis); err != nil {
		return ast.Node{}, wrapUnterminatedParen(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

func rdParameter(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindParameter)
	if tok, ok := s.ctx.PeekToken(0); ok && tok.Kind == lexer.TokenKindIdentifier && tok.Data == lexer.LanguageConstantOptional {
		s.ctx.ReadToken()
		s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, tok.Data)
	}
	tok, err := expect(s, lexer.TokenKindIdentifier)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	s.ctx.NewLeaf(ast.NodeKindIdentifier, s.ctx.TokenIndex()-1, tok.Data)
	if peekIsAny(s, lexer.TokenKindKeywordAs) {
		asId := s.ctx.StartContext(ast.NodeKindAsNullablePrimitiveType)
		constant(s, lexer.TokenKindKeywordAs)
		if _, err := s.r.ReadType(s); err != nil {
			deleteUnlessPreserved(s, asId, err)
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
		s.ctx.EndContext(asId)
	}
	return s.ctx.EndContext(id), nil
}

// --- paired-identifier productions ---------------------------------------

func rdIdentifierPairedExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindIdentifierPairedExpression)
	tok, err := expect(s, lexer.TokenKindIdentifier)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	s.ctx.NewLeaf(ast.NodeKindIdentifier, s.ctx.TokenIndex()-1, tok.Data)
	if _, err := constant(s, lexer.TokenKindEqual); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdGeneralizedIdentifierPairedExpression(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindIdentifierPairedExpression)
	if _, err := readGeneralizedIdentifier(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := constant(s, lexer.TokenKindEqual); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadExpression(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

// --- type grammar ---------------------------------------------------------

func rdType(s *state) (ast.Node, error) {
	tok, ok := s.ctx.PeekToken(0)
	if !ok {
		return ast.Node{}, &InvalidPrimitiveTypeError{Position: eofPosition(s)}
	}

	switch {
	case tok.Kind == lexer.TokenKindLeftBracket:
		return s.r.ReadRecordType(s)
	case tok.Kind == lexer.TokenKindLeftBrace:
		return s.r.ReadListType(s)
	case tok.Kind == lexer.TokenKindIdentifier && tok.Data == lexer.LanguageConstantNullable:
		return s.r.ReadNullableType(s)
	case tok.Kind == lexer.TokenKindIdentifier && tok.Data == "function":
		return s.r.ReadFunctionType(s)
	case tok.Kind == lexer.TokenKindIdentifier && tok.Data == "table":
		return s.r.ReadTableType(s)
	default:
		return s.r.ReadPrimaryType(s)
	}
}

func rdPrimaryType(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindPrimaryType)
	tok, err := expect(s, lexer.TokenKindIdentifier)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if !isPrimitiveTypeName(tok.Data) {
		s.ctx.DeleteContext(id)
		return ast.Node{}, &InvalidPrimitiveTypeError{Actual: tok, Position: tok.PositionStart}
	}
	s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, tok.Data)
	return s.ctx.EndContext(id), nil
}

func isPrimitiveTypeName(name string) bool {
	for _, n := range lexer.PrimitiveTypeNames {
		if n == name {
			return true
		}
	}
	return false
}

func rdNullableType(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindNullableType)
	tok, err := expect(s, lexer.TokenKindIdentifier)
	if err != nil || tok.Data != lexer.LanguageConstantNullable {
		s.ctx.DeleteContext(id)
		if err == nil {
			err = &InvalidPrimitiveTypeError{Actual: tok, Position: tok.PositionStart}
		}
		return ast.Node{}, err
	}
	s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, tok.Data)
	if _, err := s.r.ReadType(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdRecordType(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindRecordType)
	opening, err := expect(s, lexer.TokenKindLeftBracket)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	readOne := func(s *state) (ast.Node, error) {
		pairId := s.ctx.StartContext(ast.NodeKindGeneralizedIdentifierPairedType)
		if _, err := readGeneralizedIdentifier(s); err != nil {
			deleteUnlessPreserved(s, pairId, err)
			return ast.Node{}, err
		}
		if peekIsAny(s, lexer.TokenKindEqual) {
			constant(s, lexer.TokenKindEqual)
			if _, err := s.r.ReadType(s); err != nil {
				deleteUnlessPreserved(s, pairId, err)
				return ast.Node{}, err
			}
		}
		return s.ctx.EndContext(pairId), nil
	}
	if _, err := readCsv(s, true, CsvContinuationDanglingComma, readOne); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightBracket); err != nil {
		return ast.Node{}, wrapUnterminatedBracket(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

func rdListType(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindListType)
	opening, err := expect(s, lexer.TokenKindLeftBrace)
	if err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadType(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := expect(s, lexer.TokenKindRightBrace); err != nil {
		return ast.Node{}, wrapUnterminatedBrace(opening, err)
	}
	return s.ctx.EndContext(id), nil
}

func rdFunctionType(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindFunctionType)
	tok, err := expect(s, lexer.TokenKindIdentifier)
	if err != nil || tok.Data != "function" {
		s.ctx.DeleteContext(id)
		if err == nil {
			err = &InvalidPrimitiveTypeError{Actual: tok, Position: tok.PositionStart}
		}
		return ast.Node{}, err
	}
	s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, tok.Data)
	if _, err := s.r.ReadParameterList(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := constant(s, lexer.TokenKindKeywordAs); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	if _, err := s.r.ReadType(s); err != nil {
		deleteUnlessPreserved(s, id, err)
		return ast.Node{}, err
	}
	return s.ctx.EndContext(id), nil
}

func rdTableType(s *state) (ast.Node, error) {
	id := s.ctx.StartContext(ast.NodeKindTableType)
	tok, err := expect(s, lexer.TokenKindIdentifier)
	if err != nil || tok.Data != "table" {
		s.ctx.DeleteContext(id)
		if err == nil {
			err = &InvalidPrimitiveTypeError{Actual: tok, Position: tok.PositionStart}
		}
		return ast.Node{}, err
	}
	s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, tok.Data)
	if peekIsAny(s, lexer.TokenKindLeftBracket) {
		if _, err := s.r.ReadRecordType(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
	} else {
		if _, err := s.r.ReadPrimaryType(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
	}
	return s.ctx.EndContext(id), nil
}
