package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/odvcencio/powerquery-parser/text"
)

// LineMode is the multi-line continuation state a line is lexed under and
// leaves behind for the following line.
type LineMode int

const (
	LineModeNormal LineMode = iota
	LineModeInsideString
	LineModeInsideQuotedIdentifier
	LineModeInsideMultilineComment
)

// LexerLine is the per-line unit of lex state: the line's own text (without
// its terminator), the document position its first code unit occupies, the
// tokens produced while scanning it, the mode it was entered and left
// under, and any per-line error.
type LexerLine struct {
	Text          string
	PositionStart text.Position
	Tokens        []Token
	Comments      []LineComment
	ModeEnter     LineMode
	ModeLeave     LineMode
	Err           error

	// openPosition is the position at which the last multi-line construct
	// (string/quoted identifier/comment) opened on this line; a line that
	// only continues a construct opened earlier leaves it unset.
	// ErrorLineMap walks back to the opening line so an
	// UnterminatedMultilineTokenError reports where the construct opened
	// rather than where the document ended.
	openPosition text.Position
}

// LineCommentKind discriminates a line comment ("//...") from a block
// comment ("/*...*/") fragment recorded on a LexerLine.
type LineCommentKind int

const (
	LineCommentKindLine LineCommentKind = iota
	LineCommentKindMultiline
)

// LineComment is the portion of a (possibly multi-line) comment that falls
// on a single LexerLine. Snapshot stitches consecutive multiline fragments
// back into one logical Comment.
type LineComment struct {
	Kind          LineCommentKind
	Data          string
	PositionStart text.Position
	PositionEnd   text.Position
	// Continues is true when this fragment's block comment did not close on
	// this line (its continuation lives on the next line's first fragment).
	Continues bool
	// Continued is true when this fragment is itself a continuation of a
	// block comment opened on an earlier line.
	Continued bool
}

// LexerState is an ordered sequence of LexerLine plus the terminator they
// were split on.
type LexerState struct {
	Lines          []LexerLine
	LineTerminator string
}

// ErrorLineMap returns the line index -> error map for every line that
// failed to lex, plus an UnterminatedMultilineTokenError on the last line
// when the document ends inside a string, quoted identifier or block
// comment. An empty map means the state lexes cleanly.
func (s LexerState) ErrorLineMap() map[int]error {
	errs := map[int]error{}
	for i := range s.Lines {
		if s.Lines[i].Err != nil {
			errs[i] = s.Lines[i].Err
		}
	}
	if n := len(s.Lines); n > 0 && s.Lines[n-1].Err == nil && s.Lines[n-1].ModeLeave != LineModeNormal {
		mode := s.Lines[n-1].ModeLeave
		opener := n - 1 // skip back over lines that only continue the construct
		for opener > 0 && s.Lines[opener].ModeEnter == mode && len(s.Lines[opener].Tokens) == 0 && len(s.Lines[opener].Comments) <= 1 {
			opener--
		}
		kind := map[LineMode]UnterminatedMultilineTokenKind{LineModeInsideString: UnterminatedString, LineModeInsideQuotedIdentifier: UnterminatedQuotedIdentifier, LineModeInsideMultilineComment: UnterminatedMultilineComment}[mode]
		errs[n-1] = &LineError{LineNumber: n - 1, Inner: &UnterminatedMultilineTokenError{Kind: kind, OpeningPosition: s.Lines[opener].openPosition}}
	}
	return errs
}

// LexFromSplit splits text into lines by lineTerminator (defaulting to
// "\n") and lexes each independently, starting in LineModeNormal.
func LexFromSplit(input string, lineTerminator string) LexerState {
	if lineTerminator == "" {
		lineTerminator = text.DefaultLineTerminator
	}
	rawLines := text.SplitLines(input, lineTerminator)

	state := LexerState{LineTerminator: lineTerminator}
	codeUnit := 0
	mode := LineModeNormal
	for i, raw := range rawLines {
		start := text.Position{CodeUnit: codeUnit, LineNumber: i, LineCodeUnit: 0}
		line := lexLine(raw, mode, start)
		state.Lines = append(state.Lines, line)
		mode = line.ModeLeave
		codeUnit += text.CodeUnitLen(raw) + text.CodeUnitLen(lineTerminator)
	}
	return state
}

// relexFrom re-lexes state.Lines[from:] after Lines[from].Text has already
// been updated, propagating entering-mode changes to subsequent lines and
// stopping as soon as a relexed line's leaving mode matches what it
// previously recorded.
func relexFrom(state LexerState, from int) LexerState {
	codeUnit := 0
	if from > 0 {
		prev := state.Lines[from-1]
		codeUnit = prev.PositionStart.CodeUnit + text.CodeUnitLen(prev.Text) + text.CodeUnitLen(state.LineTerminator)
	}
	mode := LineModeNormal
	if from > 0 {
		mode = state.Lines[from-1].ModeLeave
	}

	next := LexerState{LineTerminator: state.LineTerminator, Lines: append([]LexerLine{}, state.Lines[:from]...)}
	for i := from; i < len(state.Lines); i++ {
		old := state.Lines[i]
		start := text.Position{CodeUnit: codeUnit, LineNumber: i, LineCodeUnit: 0}
		relexed := lexLine(old.Text, mode, start)
		next.Lines = append(next.Lines, relexed)

		sameLeaveMode := relexed.ModeLeave == old.ModeLeave
		mode = relexed.ModeLeave
		codeUnit += text.CodeUnitLen(old.Text) + text.CodeUnitLen(state.LineTerminator)

		if sameLeaveMode && i > from {
			// Every line after this one is unaffected: entering mode is
			// unchanged and so is the line's own text.
			next.Lines = append(next.Lines, state.Lines[i+1:]...)
			return renumberFrom(next, i+1, codeUnit)
		}
	}
	return next
}

// renumberFrom fixes up PositionStart.LineNumber/CodeUnit for lines whose
// text was untouched by relexFrom but whose absolute offsets may have
// shifted because an earlier line's length changed.
func renumberFrom(state LexerState, from int, codeUnit int) LexerState {
	for i := from; i < len(state.Lines); i++ {
		line := state.Lines[i]
		delta := codeUnit - line.PositionStart.CodeUnit
		if delta != 0 {
			line = shiftLine(line, delta, i)
			state.Lines[i] = line
		} else if line.PositionStart.LineNumber != i {
			line = shiftLine(line, 0, i)
			state.Lines[i] = line
		}
		codeUnit += text.CodeUnitLen(line.Text) + text.CodeUnitLen(state.LineTerminator)
	}
	return state
}

func shiftLine(line LexerLine, codeUnitDelta int, newLineNumber int) LexerLine {
	line.PositionStart.CodeUnit += codeUnitDelta
	line.PositionStart.LineNumber = newLineNumber
	for i := range line.Tokens {
		line.Tokens[i].PositionStart.CodeUnit += codeUnitDelta
		line.Tokens[i].PositionStart.LineNumber = newLineNumber
		line.Tokens[i].PositionEnd.CodeUnit += codeUnitDelta
		line.Tokens[i].PositionEnd.LineNumber = newLineNumber
	}
	line.openPosition.CodeUnit += codeUnitDelta
	line.openPosition.LineNumber = newLineNumber
	return line
}

// TryAppend lexes text as additional lines appended to the end of state.
func TryAppend(state LexerState, appendedText string) (LexerState, error) {
	from := len(state.Lines)
	raw := text.SplitLines(appendedText, state.LineTerminator)

	next := LexerState{LineTerminator: state.LineTerminator, Lines: append([]LexerLine{}, state.Lines...)}
	for _, l := range raw {
		next.Lines = append(next.Lines, LexerLine{Text: l})
	}
	return relexFrom(next, from), nil
}

// TryUpdateLine replaces the text of the line at index and re-lexes from
// there onward.
func TryUpdateLine(state LexerState, index int, newText string) (LexerState, error) {
	if err := checkLineNumber(index, len(state.Lines)); err != nil {
		return state, err
	}
	next := LexerState{LineTerminator: state.LineTerminator, Lines: append([]LexerLine{}, state.Lines...)}
	next.Lines[index] = LexerLine{Text: newText}
	return relexFrom(next, index), nil
}

// TryDeleteLine removes the line at index and re-lexes from there onward.
func TryDeleteLine(state LexerState, index int) (LexerState, error) {
	if err := checkLineNumber(index, len(state.Lines)); err != nil {
		return state, err
	}
	next := LexerState{LineTerminator: state.LineTerminator}
	next.Lines = append(next.Lines, state.Lines[:index]...)
	next.Lines = append(next.Lines, state.Lines[index+1:]...)
	return relexFrom(next, index), nil
}

// TryUpdateRange replaces the text spanning rng with newText, collapsing
// any lines the range touches into however many lines newText splits into,
// then re-lexes from the first touched line onward.
func TryUpdateRange(state LexerState, rng Range, newText string) (LexerState, error) {
	if err := validateRange(state, rng); err != nil {
		return state, err
	}

	startLine := rng.Start.LineNumber
	endLine := rng.End.LineNumber

	before := state.Lines[startLine].Text[:codeUnitToByteOffset(state.Lines[startLine].Text, rng.Start.LineCodeUnit)]
	after := state.Lines[endLine].Text[codeUnitToByteOffset(state.Lines[endLine].Text, rng.End.LineCodeUnit):]
	merged := before + newText + after
	replacementLines := text.SplitLines(merged, state.LineTerminator)

	next := LexerState{LineTerminator: state.LineTerminator}
	next.Lines = append(next.Lines, state.Lines[:startLine]...)
	for _, l := range replacementLines {
		next.Lines = append(next.Lines, LexerLine{Text: l})
	}
	next.Lines = append(next.Lines, state.Lines[endLine+1:]...)

	return relexFrom(next, startLine), nil
}

// codeUnitToByteOffset converts a UTF-16 code-unit offset within lineText
// into the equivalent byte offset.
func codeUnitToByteOffset(lineText string, codeUnits int) int {
	byteOff := 0
	seen := 0
	for byteOff < len(lineText) && seen < codeUnits {
		r, size := utf8.DecodeRuneInString(lineText[byteOff:])
		seen += utf16WidthOf(r)
		byteOff += size
	}
	return byteOff
}

func checkLineNumber(index, numLines int) error {
	if index < 0 {
		return &BadLineNumberError{Kind: BadLineNumberLessThanZero, LineNumber: index, NumLines: numLines}
	}
	if index >= numLines {
		return &BadLineNumberError{Kind: BadLineNumberGreaterThanNumLines, LineNumber: index, NumLines: numLines}
	}
	return nil
}

func validateRange(state LexerState, rng Range) error {
	numLines := len(state.Lines)
	switch {
	case rng.Start.LineNumber < 0:
		return &BadRangeError{Kind: BadRangeLineNumberStartLessThanZero, Range: rng}
	case rng.Start.LineNumber >= numLines:
		return &BadRangeError{Kind: BadRangeLineNumberStartGreaterThanNumLines, Range: rng}
	case rng.End.LineNumber >= numLines:
		return &BadRangeError{Kind: BadRangeLineNumberEndGreaterThanNumLines, Range: rng}
	case rng.Start.LineNumber > rng.End.LineNumber:
		return &BadRangeError{Kind: BadRangeLineNumberStartGreaterThanLineNumberEnd, Range: rng}
	}

	startLineLen := text.CodeUnitLen(state.Lines[rng.Start.LineNumber].Text)
	endLineLen := text.CodeUnitLen(state.Lines[rng.End.LineNumber].Text)

	switch {
	case rng.Start.LineCodeUnit > startLineLen:
		return &BadRangeError{Kind: BadRangeLineCodeUnitStartGreaterThanLineLength, Range: rng}
	case rng.End.LineCodeUnit > endLineLen:
		return &BadRangeError{Kind: BadRangeLineCodeUnitEndGreaterThanLineLength, Range: rng}
	case rng.Start.LineNumber == rng.End.LineNumber && rng.Start.LineCodeUnit > rng.End.LineCodeUnit:
		return &BadRangeError{Kind: BadRangeSameLineLineCodeUnitStartHigher, Range: rng}
	}
	return nil
}

// multiCharPunctuators must be matched greedily, longest first.
var multiCharPunctuators = []struct {
	text string
	kind TokenKind
}{
	{"...", TokenKindEllipsis},
	{"..", TokenKindDotDot},
	{"=>", TokenKindFatArrow},
	{"<=", TokenKindLessThanEqualTo},
	{">=", TokenKindGreaterThanEqualTo},
	{"<>", TokenKindNotEqual},
}

var singleCharPunctuators = map[rune]TokenKind{
	'(': TokenKindLeftParenthesis,
	')': TokenKindRightParenthesis,
	'[': TokenKindLeftBracket,
	']': TokenKindRightBracket,
	'{': TokenKindLeftBrace,
	'}': TokenKindRightBrace,
	',': TokenKindComma,
	';': TokenKindSemicolon,
	':': TokenKindColon,
	'@': TokenKindAtSign,
	'?': TokenKindQuestionMark,
	'=': TokenKindEqual,
	'<': TokenKindLessThan,
	'>': TokenKindGreaterThan,
	'+': TokenKindPlus,
	'-': TokenKindMinus,
	'*': TokenKindAsterisk,
	'/': TokenKindDivision,
	'&': TokenKindAmpersand,
	'.': TokenKindDot,
}

// cursor walks a single line's text, tracking both byte offset and the
// UTF-16 code-unit offset used by Position.
type cursor struct {
	text     string
	byteOff  int
	codeUnit int
}

func (c *cursor) eof() bool { return c.byteOff >= len(c.text) }

func (c *cursor) peek() (rune, int) {
	if c.eof() {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(c.text[c.byteOff:])
	return r, size
}

func (c *cursor) peekAt(byteOff int) (rune, int) {
	if byteOff >= len(c.text) {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(c.text[byteOff:])
	return r, size
}

func (c *cursor) advance(size int, r rune) {
	c.byteOff += size
	c.codeUnit += utf16WidthOf(r)
}

func utf16WidthOf(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func (c *cursor) position(lineStart text.Position) text.Position {
	return text.Position{
		CodeUnit:     lineStart.CodeUnit + c.codeUnit,
		LineNumber:   lineStart.LineNumber,
		LineCodeUnit: c.codeUnit,
	}
}

// lexLine tokenizes a single line's text starting in enterMode, returning
// the LexerLine with whatever tokens it produced and the mode it leaves
// under.
func lexLine(lineText string, enterMode LineMode, lineStart text.Position) LexerLine {
	line := LexerLine{
		Text:          lineText,
		PositionStart: lineStart,
		ModeEnter:     enterMode,
		ModeLeave:     enterMode,
	}

	c := &cursor{text: lineText}
	mode := enterMode

	switch mode {
	case LineModeInsideString, LineModeInsideQuotedIdentifier:
		if ok := scanStringBody(c, lineStart, &line, '"'); !ok {
			line.ModeLeave = mode
			return line
		}
		closingKind := TokenKindTextLiteral
		if mode == LineModeInsideQuotedIdentifier {
			closingKind = TokenKindIdentifier
		}
		emit(&line, closingKind, c.text[:c.byteOff], lineStart, c.position(lineStart))
		mode = LineModeNormal
	case LineModeInsideMultilineComment:
		closed := scanBlockCommentBody(c, lineStart, &line)
		line.Comments = append(line.Comments, LineComment{
			Kind:          LineCommentKindMultiline,
			Data:          c.text[:c.byteOff],
			PositionStart: lineStart,
			PositionEnd:   c.position(lineStart),
			Continued:     true,
			Continues:     !closed,
		})
		if !closed {
			line.ModeLeave = LineModeInsideMultilineComment
			return line
		}
		mode = LineModeNormal
	}

	for !c.eof() {
		if lexOne(c, lineStart, &line, &mode) {
			if mode != LineModeNormal {
				line.ModeLeave = mode
				return line
			}
			continue
		}
	}

	line.ModeLeave = LineModeNormal
	return line
}

// lexOne classifies and consumes exactly one token (or one run of
// whitespace) starting at c's current position. It returns false only when
// it has emitted a terminal error for the line; mode is updated in place
// when a multi-line construct is opened and runs off the end of the line.
func lexOne(c *cursor, lineStart text.Position, line *LexerLine, mode *LineMode) bool {
	startPos := c.position(lineStart)
	r, size := c.peek()

	switch {
	case unicode.IsSpace(r):
		for {
			r2, size2 := c.peek()
			if size2 == 0 || !unicode.IsSpace(r2) {
				break
			}
			c.advance(size2, r2)
		}
		return true

	case r == '/' && peekIs(c, 1, '/'):
		startByte := c.byteOff
		c.byteOff = len(c.text)
		line.Comments = append(line.Comments, LineComment{
			Kind:          LineCommentKindLine,
			Data:          c.text[startByte:],
			PositionStart: startPos,
			PositionEnd:   c.position(lineStart),
		})
		return true

	case r == '/' && peekIs(c, 1, '*'):
		startByte := c.byteOff
		c.advance(size, r)
		r2, size2 := c.peek()
		c.advance(size2, r2)
		line.openPosition = startPos
		closed := scanBlockCommentBody(c, lineStart, line)
		line.Comments = append(line.Comments, LineComment{
			Kind:          LineCommentKindMultiline,
			Data:          c.text[startByte:c.byteOff],
			PositionStart: startPos,
			PositionEnd:   c.position(lineStart),
			Continues:     !closed,
		})
		if !closed {
			*mode = LineModeInsideMultilineComment
		}
		return true

	case r == '"':
		startByte := c.byteOff
		c.advance(size, r)
		line.openPosition = startPos
		if !scanStringBody(c, lineStart, line, '"') {
			*mode = LineModeInsideString
			return true
		}
		emit(line, TokenKindTextLiteral, c.text[startByte:c.byteOff], startPos, c.position(lineStart))
		return true

	case r == '#' && peekIs(c, 1, '"'):
		startByte := c.byteOff
		c.advance(size, r)
		r2, size2 := c.peek()
		c.advance(size2, r2)
		line.openPosition = startPos
		if !scanStringBody(c, lineStart, line, '"') {
			*mode = LineModeInsideQuotedIdentifier
			return true
		}
		emit(line, TokenKindIdentifier, c.text[startByte:c.byteOff], startPos, c.position(lineStart))
		return true

	case r == '0' && (peekIs(c, 1, 'x') || peekIs(c, 1, 'X')):
		return scanHex(c, lineStart, line, startPos)

	case unicode.IsDigit(r):
		return scanNumeric(c, lineStart, line, startPos)

	case r == '.' && startsDigit(c, 1):
		return scanNumeric(c, lineStart, line, startPos)

	case isIdentifierStart(r):
		return scanIdentifierOrKeyword(c, lineStart, line, startPos)

	default:
		for _, mp := range multiCharPunctuators {
			if hasPrefixAt(c, mp.text) {
				consumeLiteral(c, mp.text)
				emit(line, mp.kind, mp.text, startPos, c.position(lineStart))
				return true
			}
		}
		if kind, ok := singleCharPunctuators[r]; ok {
			c.advance(size, r)
			emit(line, kind, string(r), startPos, c.position(lineStart))
			return true
		}

		line.Err = &LineError{LineNumber: lineStart.LineNumber, Inner: &UnexpectedReadError{Position: startPos}}
		c.byteOff = len(c.text)
		return true
	}
}

func peekIs(c *cursor, offsetRunes int, want rune) bool {
	off := c.byteOff
	for i := 0; i < offsetRunes; i++ {
		_, size := c.peekAt(off)
		if size == 0 {
			return false
		}
		off += size
	}
	r, size := c.peekAt(off)
	return size > 0 && r == want
}

func startsDigit(c *cursor, offsetRunes int) bool {
	off := c.byteOff
	for i := 0; i < offsetRunes; i++ {
		_, size := c.peekAt(off)
		if size == 0 {
			return false
		}
		off += size
	}
	r, size := c.peekAt(off)
	return size > 0 && unicode.IsDigit(r)
}

func hasPrefixAt(c *cursor, s string) bool {
	return strings.HasPrefix(c.text[c.byteOff:], s)
}

func consumeLiteral(c *cursor, s string) {
	for _, r := range s {
		c.advance(utf8.RuneLen(r), r)
	}
}

func emit(line *LexerLine, kind TokenKind, data string, start, end text.Position) {
	line.Tokens = append(line.Tokens, Token{Kind: kind, Data: data, PositionStart: start, PositionEnd: end})
}

// scanStringBody scans until an unescaped closing quote (doubled quote is
// the escape) or end of line. It returns true if the string closed on this
// line, false if it ran off the end (mode must then be carried forward).
func scanStringBody(c *cursor, lineStart text.Position, line *LexerLine, quote rune) bool {
	for {
		r, size := c.peek()
		if size == 0 {
			return false
		}
		if r == quote {
			// Doubled quote is an escaped literal quote inside the body.
			if peekIs(c, 1, quote) {
				c.advance(size, r)
				r2, size2 := c.peek()
				c.advance(size2, r2)
				continue
			}
			c.advance(size, r)
			return true
		}
		c.advance(size, r)
	}
}

// scanBlockCommentBody scans until "*/" or end of line.
func scanBlockCommentBody(c *cursor, lineStart text.Position, line *LexerLine) bool {
	for {
		r, size := c.peek()
		if size == 0 {
			return false
		}
		if r == '*' && peekIs(c, 1, '/') {
			c.advance(size, r)
			r2, size2 := c.peek()
			c.advance(size2, r2)
			return true
		}
		c.advance(size, r)
	}
}

func scanHex(c *cursor, lineStart text.Position, line *LexerLine, startPos text.Position) bool {
	startByte := c.byteOff
	r, size := c.peek()
	c.advance(size, r) // '0'
	r, size = c.peek()
	c.advance(size, r) // 'x'/'X'

	digits := 0
	for {
		r, size = c.peek()
		if size == 0 || !isHexDigit(r) {
			break
		}
		c.advance(size, r)
		digits++
	}
	if digits == 0 {
		line.Err = &LineError{LineNumber: lineStart.LineNumber, Inner: &ExpectedError{Kind: ExpectedHexLiteral, Position: c.position(lineStart)}}
		c.byteOff = len(c.text)
		return true
	}
	emit(line, TokenKindHexLiteral, c.text[startByte:c.byteOff], startPos, c.position(lineStart))
	return true
}

func scanNumeric(c *cursor, lineStart text.Position, line *LexerLine, startPos text.Position) bool {
	startByte := c.byteOff
	for {
		r, size := c.peek()
		if size == 0 || !unicode.IsDigit(r) {
			break
		}
		c.advance(size, r)
	}
	if r, size := c.peek(); size > 0 && r == '.' {
		if startsDigit(c, 1) || startByte != c.byteOff {
			c.advance(size, r)
			for {
				r2, size2 := c.peek()
				if size2 == 0 || !unicode.IsDigit(r2) {
					break
				}
				c.advance(size2, r2)
			}
		}
	}
	if r, size := c.peek(); size > 0 && (r == 'e' || r == 'E') {
		save := c.byteOff
		saveUnit := c.codeUnit
		c.advance(size, r)
		if r2, size2 := c.peek(); size2 > 0 && (r2 == '+' || r2 == '-') {
			c.advance(size2, r2)
		}
		digits := 0
		for {
			r2, size2 := c.peek()
			if size2 == 0 || !unicode.IsDigit(r2) {
				break
			}
			c.advance(size2, r2)
			digits++
		}
		if digits == 0 {
			c.byteOff = save
			c.codeUnit = saveUnit
		}
	}

	if c.byteOff == startByte {
		line.Err = &LineError{LineNumber: lineStart.LineNumber, Inner: &ExpectedError{Kind: ExpectedNumeric, Position: startPos}}
		c.byteOff = len(c.text)
		return true
	}
	emit(line, TokenKindNumericLiteral, c.text[startByte:c.byteOff], startPos, c.position(lineStart))
	return true
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierContinue(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func scanIdentifierOrKeyword(c *cursor, lineStart text.Position, line *LexerLine, startPos text.Position) bool {
	startByte := c.byteOff
	for {
		r, size := c.peek()
		if size == 0 || !isIdentifierContinue(r) {
			break
		}
		c.advance(size, r)
	}
	word := c.text[startByte:c.byteOff]
	kind := TokenKindIdentifier
	if kw, ok := Keywords[word]; ok {
		kind = kw
	}
	emit(line, kind, word, startPos, c.position(lineStart))
	return true
}
