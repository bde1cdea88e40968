package inspection

import (
	"testing"

	"github.com/odvcencio/powerquery-parser/activenode"
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

func resolveAndScope(t *testing.T, src string, codeUnit int) (*Scope, *parse.Collection, activenode.ActiveNode) {
	t.Helper()
	ctx, snap := mustParse(t, src)
	node := activenode.Resolve(ctx.Collection, snap.Tokens, pos(codeUnit))
	if !node.InBounds {
		t.Fatalf("resolve %q @ %d: expected in bounds", src, codeUnit)
	}
	return ComputeScope(ctx.Collection, node), ctx.Collection, node
}

func hasName(scope *Scope, name string) bool {
	_, ok := scope.Lookup(name)
	return ok
}

// "each 1" @ codeUnit 4 lands on the "each" keyword's own token end; the
// each-expression's implicit "_" parameter is visible regardless of
// exactly where inside the construct the cursor sits.
func TestComputeScopeEachImplicitUnderscore(t *testing.T) {
	scope, _, _ := resolveAndScope(t, "each 1", 4)
	if !hasName(scope, "_") {
		t.Fatalf("expected _ in scope, got %v", scope.Names())
	}
	if scope.Len() != 1 {
		t.Fatalf("expected exactly one name, got %v", scope.Names())
	}
}

// "(x, y) => z" @ codeUnit 11 (the "z" identifier) should see both of the
// enclosing function's parameters plus itself.
func TestComputeScopeFunctionParameters(t *testing.T) {
	scope, _, _ := resolveAndScope(t, "(x, y) => z", 11)
	for _, want := range []string{"z", "x", "y"} {
		if !hasName(scope, want) {
			t.Fatalf("expected %q in scope, got %v", want, scope.Names())
		}
	}
}

// "foo(x, y)" @ codeUnit 8 (the "y" argument) should see "y" (self),
// "x" (the earlier argument), and "foo" (the callee).
func TestComputeScopeInvokeArguments(t *testing.T) {
	scope, _, _ := resolveAndScope(t, "foo(x, y)", 8)
	for _, want := range []string{"y", "x", "foo"} {
		if !hasName(scope, want) {
			t.Fatalf("expected %q in scope, got %v", want, scope.Names())
		}
	}
}

// "section foo; x = 1; y = 2;" @ the final ";" (document end) should see
// both members, including the member the cursor's own token belongs to.
func TestComputeScopeSectionMembers(t *testing.T) {
	src := "section foo; x = 1; y = 2;"
	scope, _, _ := resolveAndScope(t, src, len(src)-1)
	for _, want := range []string{"x", "y"} {
		if !hasName(scope, want) {
			t.Fatalf("expected %q in scope, got %v", want, scope.Names())
		}
	}
}

// An unterminated nested record ("[a=[b=1") still exposes the outer
// binding "a" in scope at a position inside the unterminated inner
// record, since the parser preserves partial trees on error instead of
// unwinding them.
func TestComputeScopeUnterminatedNestedRecord(t *testing.T) {
	src := "[a=[b=1"
	scope, c, node := resolveAndScope(t, src, 4)
	if !hasName(scope, "a") {
		t.Fatalf("expected outer binding 'a' still visible, got %v", scope.Names())
	}
	recordExprCount := 0
	for _, anc := range node.Ancestry {
		if activenode.KindOf(c, anc) == ast.NodeKindRecordExpression {
			recordExprCount++
		}
	}
	if recordExprCount != 2 {
		t.Fatalf("expected two enclosing RecordExpressions, got %d (ancestry=%v)", recordExprCount, node.Ancestry)
	}
}

func TestComputeInvokeArgumentIndex(t *testing.T) {
	ctx, snap := mustParse(t, "foo(x, y)")
	node := activenode.Resolve(ctx.Collection, snap.Tokens, pos(8))
	info := ComputeInvoke(ctx.Collection, node)
	if info == nil {
		t.Fatalf("expected invoke info")
	}
	if info.Name == nil || *info.Name != "foo" {
		t.Fatalf("expected callee name foo, got %+v", info.Name)
	}
	if info.NumArguments != 2 {
		t.Fatalf("expected 2 arguments, got %d", info.NumArguments)
	}
	if info.PositionArgumentIndex != 1 {
		t.Fatalf("expected position argument index 1, got %d", info.PositionArgumentIndex)
	}
}

func TestAutocompletePrimitiveTypeInsideAsExpression(t *testing.T) {
	ctx, snap := mustParse(t, "(x as number) => x")
	node := activenode.Resolve(ctx.Collection, snap.Tokens, pos(8))
	names := AutocompletePrimitiveType(ctx.Collection, node)
	found := false
	for _, n := range names {
		if n == "number" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected primitive type suggestions to include number, got %v", names)
	}
}

func TestAutocompleteLanguageConstantInsideParameter(t *testing.T) {
	ctx, snap := mustParse(t, "(optional x) => x")
	node := activenode.Resolve(ctx.Collection, snap.Tokens, pos(2))
	names := AutocompleteLanguageConstant(ctx.Collection, node)
	if len(names) != 1 || names[0] != "optional" {
		t.Fatalf("expected [optional], got %v", names)
	}
}
