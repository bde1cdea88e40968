package parser

import (
	"testing"

	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/parse"
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

func parseWith(t *testing.T, r *Reader, src string) (ast.Node, *parse.Context) {
	t.Helper()
	snap := mustSnapshot(t, src)
	ctx := parse.NewContext(snap)
	node, err := Parse(ctx, r)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return node, ctx
}

func bothReaders() map[string]*Reader {
	return map[string]*Reader{
		"recursive-descent": NewRecursiveDescentReader(),
		"combinatorial":     NewCombinatorialReader(),
	}
}

func TestParseLiteralExpression(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			node, ctx := parseWith(t, r, "1")
			if node.Kind != ast.NodeKindDocument {
				t.Fatalf("root kind = %v", node.Kind)
			}
			if err := parse.CheckInvariants(ctx.Collection); err != nil {
				t.Fatalf("invariant violated: %v", err)
			}
		})
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			// "1 + 2 * 3" must group as 1 + (2 * 3): the outer node is the
			// additive expression, whose right child is a multiplicative one.
			_, ctx := parseWith(t, r, "1 + 2 * 3")
			arithIds := ctx.Collection.IdsOfKind(ast.NodeKindArithmeticExpression)
			if len(arithIds) != 2 {
				t.Fatalf("expected 2 arithmetic nodes, got %d", len(arithIds))
			}
			if err := parse.CheckInvariants(ctx.Collection); err != nil {
				t.Fatalf("invariant violated: %v", err)
			}
		})
	}
}

func TestParseLogicalAndBindsTighterThanOr(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "true or false and true")
			logicalIds := ctx.Collection.IdsOfKind(ast.NodeKindLogicalExpression)
			if len(logicalIds) != 2 {
				t.Fatalf("expected 2 logical nodes, got %d", len(logicalIds))
			}
		})
	}
}

func TestParseEachExpression(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "each _")
			if len(ctx.Collection.IdsOfKind(ast.NodeKindEachExpression)) != 1 {
				t.Fatalf("expected one each-expression")
			}
		})
	}
}

func TestParseLetExpression(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "let x = 1, y = x in y")
			if len(ctx.Collection.IdsOfKind(ast.NodeKindLetExpression)) != 1 {
				t.Fatalf("expected one let-expression")
			}
			pairs := ctx.Collection.IdsOfKind(ast.NodeKindIdentifierPairedExpression)
			if len(pairs) != 2 {
				t.Fatalf("expected 2 bindings, got %d", len(pairs))
			}
			if err := parse.CheckInvariants(ctx.Collection); err != nil {
				t.Fatalf("invariant violated: %v", err)
			}
		})
	}
}

func TestParseIfExpression(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "if true then 1 else 2")
			if len(ctx.Collection.IdsOfKind(ast.NodeKindIfExpression)) != 1 {
				t.Fatalf("expected one if-expression")
			}
		})
	}
}

func TestParseInvokeAndFieldAccessChain(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			// Foo(1)[Bar] — an invoke expression whose result is subscripted
			// by a field selector; the field selector must adopt the invoke
			// node as its own callee-chain base.
			node, ctx := parseWith(t, r, "Foo(1)[Bar]")
			selectors := ctx.Collection.IdsOfKind(ast.NodeKindFieldSelector)
			if len(selectors) != 1 {
				t.Fatalf("expected one field selector, got %d", len(selectors))
			}
			selectorId := selectors[0]
			children := ctx.Collection.Children(selectorId)
			if len(children) < 1 {
				t.Fatalf("field selector has no children")
			}
			invokeKind, ok := ctx.Collection.Kind(children[0])
			if !ok || invokeKind != ast.NodeKindInvokeExpression {
				t.Fatalf("field selector's first child = %v, want InvokeExpression", invokeKind)
			}
			if err := parse.CheckInvariants(ctx.Collection); err != nil {
				t.Fatalf("invariant violated: %v", err)
			}
			_ = node
		})
	}
}

func TestParseFunctionExpressionDisambiguatedFromParenthesized(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "(x, optional y) => x")
			if len(ctx.Collection.IdsOfKind(ast.NodeKindFunctionExpression)) != 1 {
				t.Fatalf("expected one function expression")
			}
			if len(ctx.Collection.IdsOfKind(ast.NodeKindParenthesizedExpression)) != 0 {
				t.Fatalf("unexpected parenthesized expression alongside function expression")
			}
		})
	}
}

func TestParseParenthesizedExpressionWhenNoArrow(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "(1 + 2)")
			if len(ctx.Collection.IdsOfKind(ast.NodeKindParenthesizedExpression)) != 1 {
				t.Fatalf("expected one parenthesized expression")
			}
			if len(ctx.Collection.IdsOfKind(ast.NodeKindFunctionExpression)) != 0 {
				t.Fatalf("unexpected function expression")
			}
		})
	}
}

func TestParseTypeExpression(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "type nullable text")
			if len(ctx.Collection.IdsOfKind(ast.NodeKindTypeExpression)) != 1 {
				t.Fatalf("expected one type expression")
			}
			if len(ctx.Collection.IdsOfKind(ast.NodeKindNullableType)) != 1 {
				t.Fatalf("expected one nullable type")
			}
		})
	}
}

func TestParseRecordAndListExpressions(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "[a = 1, b = {1, 2, 3}]")
			if len(ctx.Collection.IdsOfKind(ast.NodeKindRecordExpression)) != 1 {
				t.Fatalf("expected one record expression")
			}
			if len(ctx.Collection.IdsOfKind(ast.NodeKindListExpression)) != 1 {
				t.Fatalf("expected one list expression")
			}
		})
	}
}

func TestParseDanglingCommaIsError(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			snap := mustSnapshot(t, "{1, 2,}")
			ctx := parse.NewContext(snap)
			_, err := Parse(ctx, r)
			if err == nil {
				t.Fatalf("expected a dangling-comma error")
			}
			var csvErr *ExpectedCsvContinuationError
			if pe, ok := err.(*ParseError); ok {
				csvErr, _ = pe.Inner.(*ExpectedCsvContinuationError)
			}
			if csvErr == nil || csvErr.Kind != CsvContinuationDanglingComma {
				t.Fatalf("expected CsvContinuationDanglingComma, got %v", err)
			}
		})
	}
}

func TestParseLetWithNoBindingsIsDistinctError(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			snap := mustSnapshot(t, "let in 1")
			ctx := parse.NewContext(snap)
			_, err := Parse(ctx, r)
			if err == nil {
				t.Fatalf("expected an error")
			}
			var csvErr *ExpectedCsvContinuationError
			if pe, ok := err.(*ParseError); ok {
				csvErr, _ = pe.Inner.(*ExpectedCsvContinuationError)
			}
			if csvErr == nil || csvErr.Kind != CsvContinuationLetExpression {
				t.Fatalf("expected CsvContinuationLetExpression, got %v", err)
			}
		})
	}
}

func TestParseUnterminatedParenthesesError(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			snap := mustSnapshot(t, "(1 + 2")
			ctx := parse.NewContext(snap)
			_, err := Parse(ctx, r)
			if err == nil {
				t.Fatalf("expected an error")
			}
			pe, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if _, ok := pe.Inner.(*UnterminatedParenthesesError); !ok {
				t.Fatalf("expected *UnterminatedParenthesesError, got %T", pe.Inner)
			}
		})
	}
}

func TestParseSectionDocument(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			src := "section Foo; shared a = 1; b = a;"
			_, ctx := parseWith(t, r, src)
			if len(ctx.Collection.IdsOfKind(ast.NodeKindSection)) != 1 {
				t.Fatalf("expected one section")
			}
			members := ctx.Collection.IdsOfKind(ast.NodeKindSectionMember)
			if len(members) != 2 {
				t.Fatalf("expected 2 section members, got %d", len(members))
			}
			if err := parse.CheckInvariants(ctx.Collection); err != nil {
				t.Fatalf("invariant violated: %v", err)
			}
		})
	}
}

func TestParseErrorHandlingExpression(t *testing.T) {
	for name, r := range bothReaders() {
		t.Run(name, func(t *testing.T) {
			_, ctx := parseWith(t, r, "try 1 / 0 otherwise -1")
			if len(ctx.Collection.IdsOfKind(ast.NodeKindErrorHandlingExpression)) != 1 {
				t.Fatalf("expected one error-handling expression")
			}
			if len(ctx.Collection.IdsOfKind(ast.NodeKindOtherwiseExpression)) != 1 {
				t.Fatalf("expected one otherwise clause")
			}
		})
	}
}

func TestBothReadersProduceSameShapeForExpression(t *testing.T) {
	src := "1 + 2 * 3 - 4 and true or false"
	recNode, recCtx := parseWith(t, NewRecursiveDescentReader(), src)
	combNode, combCtx := parseWith(t, NewCombinatorialReader(), src)

	if recNode.TokenIndexStart != combNode.TokenIndexStart || recNode.TokenIndexEnd != combNode.TokenIndexEnd {
		t.Fatalf("root spans differ: rec=[%d,%d) comb=[%d,%d)",
			recNode.TokenIndexStart, recNode.TokenIndexEnd, combNode.TokenIndexStart, combNode.TokenIndexEnd)
	}
	for _, kind := range []ast.NodeKind{ast.NodeKindArithmeticExpression, ast.NodeKindLogicalExpression} {
		if len(recCtx.Collection.IdsOfKind(kind)) != len(combCtx.Collection.IdsOfKind(kind)) {
			t.Fatalf("node count for %v differs between readers", kind)
		}
	}
}
