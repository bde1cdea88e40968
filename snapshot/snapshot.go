// Package snapshot collapses a clean lexer.LexerState into the flat token
// and comment sequences the parser consumes.
package snapshot

import (
	"github.com/odvcencio/powerquery-parser/lexer"
)

// Snapshot is an error-free, consolidated view of a LexerState: a flat
// token sequence and a flat comment sequence, both in absolute document
// order. Multi-line strings, quoted identifiers, and block comments appear
// as a single entry spanning their original lines.
type Snapshot struct {
	Tokens   []lexer.Token
	Comments []Comment

	// LeadingComments[i] lists the comments immediately preceding Tokens[i]
	// (no other token between them). TrailingComments[i] lists the
	// comments immediately following Tokens[i] on the same line.
	LeadingComments  map[int][]int
	TrailingComments map[int][]int
}

// SnapshotError is returned by TrySnapshot when the underlying
// LexerState did not lex cleanly.
type SnapshotError struct {
	ErrorLineMap map[int]error
}

func (e *SnapshotError) Error() string {
	return "snapshot: lexer state has per-line errors"
}

// TrySnapshot collapses state into a Snapshot, or fails with the state's
// errorLineMap if any line has an error.
func TrySnapshot(state lexer.LexerState) (Snapshot, error) {
	if errs := state.ErrorLineMap(); len(errs) != 0 {
		return Snapshot{}, &SnapshotError{ErrorLineMap: errs}
	}
	return newSnapshot(state), nil
}

func newSnapshot(state lexer.LexerState) Snapshot {
	snap := Snapshot{
		LeadingComments:  map[int][]int{},
		TrailingComments: map[int][]int{},
	}

	var pendingMultiline *Comment

	flushPending := func() {
		if pendingMultiline != nil {
			snap.Comments = append(snap.Comments, *pendingMultiline)
			pendingMultiline = nil
		}
	}

	for _, line := range state.Lines {
		for _, tok := range line.Tokens {
			snap.Tokens = append(snap.Tokens, tok)
		}
		for _, lc := range line.Comments {
			switch {
			case lc.Kind == lexer.LineCommentKindLine:
				flushPending()
				snap.Comments = append(snap.Comments, Comment{
					Kind:          CommentKindLine,
					Data:          lc.Data,
					PositionStart: lc.PositionStart,
					PositionEnd:   lc.PositionEnd,
				})
			case lc.Continued && pendingMultiline != nil:
				pendingMultiline.Data += state.LineTerminator + lc.Data
				pendingMultiline.PositionEnd = lc.PositionEnd
				pendingMultiline.ContainsNewline = true
				if !lc.Continues {
					flushPending()
				}
			default:
				c := Comment{
					Kind:          CommentKindMultiline,
					Data:          lc.Data,
					PositionStart: lc.PositionStart,
					PositionEnd:   lc.PositionEnd,
				}
				if lc.Continues {
					pendingMultiline = &c
				} else {
					snap.Comments = append(snap.Comments, c)
				}
			}
		}
	}
	flushPending()

	linkComments(&snap)
	return snap
}

// linkComments groups each comment with the nearest following token as a
// leading comment, and with the nearest preceding token on the same line
// as a trailing comment, so layout-preserving consumers can reconstruct
// whitespace without re-lexing.
func linkComments(snap *Snapshot) {
	tokenIdx := 0
	for ci, c := range snap.Comments {
		// Advance to the first token that starts at or after the comment.
		for tokenIdx < len(snap.Tokens) && snap.Tokens[tokenIdx].PositionStart.Less(c.PositionStart) {
			tokenIdx++
		}
		if tokenIdx < len(snap.Tokens) {
			snap.LeadingComments[tokenIdx] = append(snap.LeadingComments[tokenIdx], ci)
		}
		if tokenIdx > 0 {
			prev := snap.Tokens[tokenIdx-1]
			if prev.PositionEnd.LineNumber == c.PositionStart.LineNumber {
				snap.TrailingComments[tokenIdx-1] = append(snap.TrailingComments[tokenIdx-1], ci)
			}
		}
	}
}
