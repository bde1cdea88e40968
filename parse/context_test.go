package parse

import (
	"testing"

	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/snapshot"
)

func mustSnapshot(t *testing.T, src string) snapshot.Snapshot {
	t.Helper()
	snap, err := snapshot.TrySnapshot(lexer.LexFromSplit(src, "\n"))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return snap
}

func TestStartEndContextBuildsTree(t *testing.T) {
	snap := mustSnapshot(t, "each 1")
	ctx := NewContext(snap)

	eachId := ctx.StartContext(ast.NodeKindEachExpression)
	tok, _ := ctx.ReadToken() // "each"
	ctx.NewLeaf(ast.NodeKindConstant, ctx.TokenIndex()-1, tok.Data)

	litTok, _ := ctx.ReadToken() // "1"
	ctx.NewLeaf(ast.NodeKindLiteralExpression, ctx.TokenIndex()-1, litTok.Data)

	node := ctx.EndContext(eachId)

	if node.TokenIndexStart != 0 || node.TokenIndexEnd != 2 {
		t.Fatalf("span = [%d,%d), want [0,2)", node.TokenIndexStart, node.TokenIndexEnd)
	}
	if len(ctx.Collection.ChildIdsById[eachId]) != 2 {
		t.Fatalf("expected 2 children, got %d", len(ctx.Collection.ChildIdsById[eachId]))
	}
	if err := CheckInvariants(ctx.Collection); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func TestDeleteContextRemovesSubtree(t *testing.T) {
	snap := mustSnapshot(t, "(x")
	ctx := NewContext(snap)

	outer := ctx.StartContext(ast.NodeKindParenthesizedExpression)
	inner := ctx.StartContext(ast.NodeKindIdentifierExpression)
	ctx.DeleteContext(inner)

	if _, ok := ctx.Collection.ContextNodeById[inner]; ok {
		t.Fatalf("deleted context still present")
	}
	if len(ctx.Collection.ChildIdsById[outer]) != 0 {
		t.Fatalf("deleted context still listed as child: %v", ctx.Collection.ChildIdsById[outer])
	}
	ctx.DeleteContext(outer)
	if err := CheckInvariants(ctx.Collection); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func TestIncrementAttributeCounter(t *testing.T) {
	snap := mustSnapshot(t, "1")
	ctx := NewContext(snap)
	id := ctx.StartContext(ast.NodeKindParameterList)
	if got := ctx.IncrementAttributeCounter(id); got != 1 {
		t.Errorf("first increment = %d, want 1", got)
	}
	if got := ctx.IncrementAttributeCounter(id); got != 2 {
		t.Errorf("second increment = %d, want 2", got)
	}
}

func TestXorNodeResolvesAcrossCompletion(t *testing.T) {
	snap := mustSnapshot(t, "1")
	ctx := NewContext(snap)
	id := ctx.StartContext(ast.NodeKindLetExpression)

	xn, ok := XorNodeOf(ctx.Collection, id)
	if !ok || xn.IsAst(ctx.Collection) {
		t.Fatalf("expected a context xor-node before completion")
	}

	ctx.EndContext(id)
	xn2, ok := XorNodeOf(ctx.Collection, id)
	if !ok || !xn2.IsAst(ctx.Collection) {
		t.Fatalf("expected an ast xor-node after completion")
	}
}
