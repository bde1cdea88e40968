// Package text holds the line-splitting and position primitives every
// other package builds on: Position is the coordinate system the lexer,
// parser, and inspection layers all speak.
package text

import (
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Position is an absolute UTF-16 code-unit offset, a 0-based line index,
// and the code-unit offset of that same point within its line.
type Position struct {
	CodeUnit     int
	LineNumber   int
	LineCodeUnit int
}

// Less reports whether p sorts strictly before other.
func (p Position) Less(other Position) bool {
	return p.CodeUnit < other.CodeUnit
}

// LessOrEqual reports whether p sorts at or before other.
func (p Position) LessOrEqual(other Position) bool {
	return p.CodeUnit <= other.CodeUnit
}

// String renders p as "line:column" (both 1-based for display), the form
// every error message and localization template in this module uses.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.LineNumber+1, p.LineCodeUnit+1)
}

// GraphemeColumn derives the grapheme-cluster column of p within lineText,
// for use in human-facing error messages only — every other computation
// in this module uses the UTF-16 code-unit offsets in Position directly.
//
// lineText is the line's text, NOT including its terminator. codeUnits is
// measured in UTF-16 code units to match Position.LineCodeUnit.
func GraphemeColumn(lineText string, codeUnits int) int {
	if codeUnits <= 0 {
		return 0
	}

	// Walk UTF-16 code units forward to the byte offset codeUnits denotes,
	// then count grapheme clusters up to that byte offset.
	byteOffset := 0
	seenUnits := 0
	for byteOffset < len(lineText) && seenUnits < codeUnits {
		r, size := utf8.DecodeRuneInString(lineText[byteOffset:])
		seenUnits += utf16Width(r)
		byteOffset += size
	}

	column := 0
	state := -1
	remaining := lineText[:byteOffset]
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		if cluster == "" {
			break
		}
		column++
	}
	return column
}

func utf16Width(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}
