package snapshot

import (
	"testing"

	"github.com/odvcencio/powerquery-parser/lexer"
)

func TestTrySnapshotCleanInput(t *testing.T) {
	state := lexer.LexFromSplit("let x = 1 in x", "\n")
	snap, err := TrySnapshot(state)
	if err != nil {
		t.Fatalf("TrySnapshot: %v", err)
	}
	if len(snap.Tokens) == 0 {
		t.Fatalf("expected tokens, got none")
	}
}

func TestTrySnapshotFailsOnLexError(t *testing.T) {
	state := lexer.LexFromSplit(`"unterminated`, "\n")
	_, err := TrySnapshot(state)
	if err == nil {
		t.Fatalf("expected an error")
	}
	snapErr, ok := err.(*SnapshotError)
	if !ok {
		t.Fatalf("expected *SnapshotError, got %T", err)
	}
	if len(snapErr.ErrorLineMap) == 0 {
		t.Fatalf("expected a non-empty error line map")
	}
}

func TestSnapshotCollapsesMultilineComment(t *testing.T) {
	state := lexer.LexFromSplit("/* a\nb */ x", "\n")
	snap, err := TrySnapshot(state)
	if err != nil {
		t.Fatalf("TrySnapshot: %v", err)
	}
	if len(snap.Comments) != 1 {
		t.Fatalf("expected 1 collapsed comment, got %d: %+v", len(snap.Comments), snap.Comments)
	}
	if !snap.Comments[0].ContainsNewline {
		t.Errorf("expected ContainsNewline = true")
	}
	if len(snap.Tokens) != 1 || snap.Tokens[0].Kind != lexer.TokenKindIdentifier {
		t.Fatalf("expected a single identifier token, got %+v", snap.Tokens)
	}
}

func TestSnapshotLineCommentNotCollapsed(t *testing.T) {
	state := lexer.LexFromSplit("x // comment\ny", "\n")
	snap, err := TrySnapshot(state)
	if err != nil {
		t.Fatalf("TrySnapshot: %v", err)
	}
	if len(snap.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(snap.Comments))
	}
	if len(snap.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(snap.Tokens))
	}
}
