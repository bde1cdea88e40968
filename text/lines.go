package text

import (
	"strings"
	"unicode/utf16"
)

// DefaultLineTerminator is used when a caller does not configure one.
const DefaultLineTerminator = "\n"

// SplitLines splits text into lines by terminator. The terminator itself is
// stripped from each returned line. Splitting is purely textual: a line
// that would contain the terminator as part of a string or comment token is
// still split here — the lexer is responsible for stitching such tokens
// back into one logical unit at Snapshot time.
//
// An empty text yields a single empty line (matching a fresh, untitled
// document: it always has at least one line to lex). A trailing terminator
// yields a final empty line, so that appending a line terminator at the end
// of a document is observably different from not appending one.
func SplitLines(input string, terminator string) []string {
	if terminator == "" {
		terminator = DefaultLineTerminator
	}
	return strings.Split(input, terminator)
}

// CodeUnitLen returns the length of s measured in UTF-16 code units.
func CodeUnitLen(s string) int {
	total := 0
	for _, r := range s {
		total += utf16Width(r)
	}
	return total
}

// CodeUnitsToUTF16 converts s to its UTF-16 code unit sequence, the
// coordinate system Position.LineCodeUnit is expressed in.
func CodeUnitsToUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// PositionAtLineColumn resolves a 1-based (line, column) pair — the
// coordinate system a human types at a terminal, matching line:column CLI
// arguments — against src, returning the Position ActiveNode.Resolve and
// every other consumer of Position actually expects: a 0-based LineNumber,
// a 0-based LineCodeUnit, and an absolute CodeUnit computed the same way
// the lexer accumulates one line's starting offset from the ones before it
// (lexer.go: each line's CodeUnit is the previous line's CodeUnit plus its
// text length plus one terminator's length).
//
// line and column below 1 are clamped to 1; a line past the end of src is
// clamped to the last line.
func PositionAtLineColumn(src string, terminator string, line int, column int) Position {
	if terminator == "" {
		terminator = DefaultLineTerminator
	}
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}

	lines := SplitLines(src, terminator)
	lineIndex := line - 1
	if lineIndex >= len(lines) {
		lineIndex = len(lines) - 1
	}

	codeUnit := 0
	for i := 0; i < lineIndex; i++ {
		codeUnit += CodeUnitLen(lines[i]) + CodeUnitLen(terminator)
	}

	lineCodeUnit := column - 1
	if maxCol := CodeUnitLen(lines[lineIndex]); lineCodeUnit > maxCol {
		lineCodeUnit = maxCol
	}

	return Position{
		CodeUnit:     codeUnit + lineCodeUnit,
		LineNumber:   lineIndex,
		LineCodeUnit: lineCodeUnit,
	}
}
