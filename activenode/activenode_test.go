package activenode

import (
	"testing"

	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/parse"
	"github.com/odvcencio/powerquery-parser/parser"
	"github.com/odvcencio/powerquery-parser/snapshot"
	"github.com/odvcencio/powerquery-parser/text"
)

func mustParse(t *testing.T, src string) (*parse.Context, snapshot.Snapshot) {
	t.Helper()
	snap, err := snapshot.TrySnapshot(lexer.LexFromSplit(src, "\n"))
	if err != nil {
		t.Fatalf("snapshot %q: %v", src, err)
	}
	ctx := parse.NewContext(snap)
	if _, err := parser.Parse(ctx, parser.NewRecursiveDescentReader()); err != nil {
		if pe, ok := err.(*parser.ParseError); ok {
			return pe.State, snap
		}
		t.Fatalf("parse %q: %v", src, err)
	}
	return ctx, snap
}

func pos(codeUnit int) text.Position {
	return text.Position{CodeUnit: codeUnit, LineNumber: 0, LineCodeUnit: codeUnit}
}

func TestResolveAtIdentifierStart(t *testing.T) {
	ctx, snap := mustParse(t, "each _")
	// "each _" -> 'e'(0) 'a'(1) 'c'(2) 'h'(3) ' '(4) '_'(5..6)
	node := Resolve(ctx.Collection, snap.Tokens, pos(5))
	if !node.InBounds {
		t.Fatalf("expected in bounds")
	}
	if node.Classification != OnTokenStart {
		t.Fatalf("classification = %v, want OnTokenStart", node.Classification)
	}
	found := false
	for _, a := range node.Ancestry {
		if KindOf(ctx.Collection, a) == ast.NodeKindEachExpression {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected EachExpression in ancestry, got %+v", node.Ancestry)
	}
}

func TestResolveOutOfBoundsBeforeStart(t *testing.T) {
	ctx, snap := mustParse(t, "1")
	node := Resolve(ctx.Collection, snap.Tokens, pos(-1))
	if node.InBounds {
		t.Fatalf("expected out of bounds for a negative position")
	}
}

func TestResolveOutOfBoundsAfterEnd(t *testing.T) {
	ctx, snap := mustParse(t, "1")
	node := Resolve(ctx.Collection, snap.Tokens, pos(5))
	if node.InBounds {
		t.Fatalf("expected out of bounds past the last token")
	}
}

func TestResolveEmptyDocument(t *testing.T) {
	snap, err := snapshot.TrySnapshot(lexer.LexFromSplit("", "\n"))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	ctx := parse.NewContext(snap)
	if _, err := parser.Parse(ctx, parser.NewRecursiveDescentReader()); err != nil {
		t.Fatalf("parse: %v", err)
	}
	node := Resolve(ctx.Collection, snap.Tokens, pos(0))
	if node.InBounds {
		t.Fatalf("expected out of bounds on an empty document")
	}
}

func TestResolveOnTokenEndAttributedToPreviousToken(t *testing.T) {
	ctx, snap := mustParse(t, "foo(x)")
	// "foo(x)" -> foo[0,3) ( [3,4) x[4,5) ) [5,6)
	node := Resolve(ctx.Collection, snap.Tokens, pos(3))
	if !node.InBounds {
		t.Fatalf("expected in bounds")
	}
	if node.Classification != OnTokenEnd {
		t.Fatalf("classification = %v, want OnTokenEnd", node.Classification)
	}
}

func TestResolveGapStartStaysOnPreviousTokenEnd(t *testing.T) {
	ctx, snap := mustParse(t, "1 + 2")
	// "1 + 2" -> 1[0,1) +[2,3) 2[4,5); position 1 is exactly at '1''s end,
	// where the gap before '+' begins, so it is classified OnTokenEnd of
	// '1'; only a position further into the gap (OnTrailingWhitespace) is
	// reattributed to '+'.
	node := Resolve(ctx.Collection, snap.Tokens, pos(1))
	if !node.InBounds {
		t.Fatalf("expected in bounds")
	}
	if node.Classification != OnTokenEnd {
		t.Fatalf("classification = %v, want OnTokenEnd (exactly at token 1's end)", node.Classification)
	}
}
