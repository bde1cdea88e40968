package task

import (
	"testing"

	"github.com/odvcencio/powerquery-parser/text"
)

func pos(codeUnit int) text.Position {
	return text.Position{CodeUnit: codeUnit, LineNumber: 0, LineCodeUnit: codeUnit}
}

func hasName(t *testing.T, names []string, want string) bool {
	t.Helper()
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func mustInspect(t *testing.T, src string, codeUnit int) LexParseInspectOk {
	t.Helper()
	result, err := TryLexParseInspection(New(), src, pos(codeUnit))
	if err != nil {
		if _, ok := err.(*CommonError); ok {
			t.Fatalf("inspect %q @ %d: unexpected common error: %v", src, codeUnit, err)
		}
	}
	return result
}

// S1: "each 1" @ 4 — implicit _ parameter.
func TestFacadeEachImplicitUnderscore(t *testing.T) {
	result := mustInspect(t, "each 1", 4)
	if result.Inspected.Scope == nil || !hasName(t, result.Inspected.Scope.Names(), "_") {
		t.Fatalf("expected _ in scope")
	}
}

// S2: "(x, y) => z" @ 11 — all three names visible inside the body.
func TestFacadeFunctionBodyScope(t *testing.T) {
	result := mustInspect(t, "(x, y) => z", 11)
	names := result.Inspected.Scope.Names()
	for _, want := range []string{"z", "x", "y"} {
		if !hasName(t, names, want) {
			t.Fatalf("expected %q in scope %v", want, names)
		}
	}
}

// S3: "foo(x, y)" @ 8 — invoke info plus sibling/self scope.
func TestFacadeInvokeArguments(t *testing.T) {
	result := mustInspect(t, "foo(x, y)", 8)
	invoke := result.Inspected.Invoke
	if invoke == nil || invoke.Name == nil || *invoke.Name != "foo" {
		t.Fatalf("expected callee foo, got %+v", invoke)
	}
	if invoke.NumArguments != 2 || invoke.PositionArgumentIndex != 1 {
		t.Fatalf("expected numArguments=2 positionArgumentIndex=1, got %+v", invoke)
	}
	names := result.Inspected.Scope.Names()
	for _, want := range []string{"y", "x", "foo"} {
		if !hasName(t, names, want) {
			t.Fatalf("expected %q in scope %v", want, names)
		}
	}
}

// S4: "section foo; x = 1; y = 2;" @ 26 — section members visible to
// each other.
func TestFacadeSectionMemberScope(t *testing.T) {
	result := mustInspect(t, "section foo; x = 1; y = 2;", 26)
	names := result.Inspected.Scope.Names()
	for _, want := range []string{"x", "y"} {
		if !hasName(t, names, want) {
			t.Fatalf("expected %q in scope %v", want, names)
		}
	}
}

// S5: "(optional x, y) => x" — a required parameter after an optional one
// is a parse error, not an inspection failure.
func TestFacadeRequiredParameterAfterOptionalIsParseError(t *testing.T) {
	_, err := TryLexParse(New(), "(optional x, y) => x")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
}

// S6: "[a=[b=1" @ 4 — the outer binding's own name is visible inside its
// own still-open value expression (the recursive-binding rule), even
// though the record literal itself never closes.
func TestFacadeUnterminatedNestedRecordSelfReference(t *testing.T) {
	result := mustInspect(t, "[a=[b=1", 4)
	if result.Inspected.Scope == nil || !hasName(t, result.Inspected.Scope.Names(), "a") {
		t.Fatalf("expected a in scope, got %v", scopeNamesOrNil(result))
	}
	if len(result.Inspected.KeywordAutocomplete) != 0 {
		t.Fatalf("expected no keyword autocomplete, got %v", result.Inspected.KeywordAutocomplete)
	}
}

func scopeNamesOrNil(r LexParseInspectOk) []string {
	if r.Inspected.Scope == nil {
		return nil
	}
	return r.Inspected.Scope.Names()
}

// S7: "try true o" @ 10 — the partial "o" still leaves try/otherwise
// keyword completions available.
func TestFacadeTryOtherwiseKeyword(t *testing.T) {
	result := mustInspect(t, "try true o", 10)
	if !hasName(t, result.Inspected.KeywordAutocomplete, "otherwise") {
		t.Fatalf("expected otherwise in %v", result.Inspected.KeywordAutocomplete)
	}
}

// S8: "a as n" @ 6 — "nullable" offered as a language constant.
func TestFacadeAsNullableLanguageConstant(t *testing.T) {
	result := mustInspect(t, "a as n", 6)
	if !hasName(t, result.Inspected.LanguageConstantAutocomplete, "nullable") {
		t.Fatalf("expected nullable in %v", result.Inspected.LanguageConstantAutocomplete)
	}
}

// S9: "(x, op" @ 6 — "optional" offered while typing a parameter name.
func TestFacadeParameterOptionalLanguageConstant(t *testing.T) {
	result := mustInspect(t, "(x, op", 6)
	if !hasName(t, result.Inspected.LanguageConstantAutocomplete, "optional") {
		t.Fatalf("expected optional in %v", result.Inspected.LanguageConstantAutocomplete)
	}
}

// S10: "type n" @ 6 — primitive-type names offered.
func TestFacadePrimitiveTypeAutocomplete(t *testing.T) {
	result := mustInspect(t, "type n", 6)
	for _, want := range []string{"none", "null", "number"} {
		if !hasName(t, result.Inspected.PrimitiveTypeAutocomplete, want) {
			t.Fatalf("expected %q in %v", want, result.Inspected.PrimitiveTypeAutocomplete)
		}
	}
}

// Empty input: tryLex succeeds, tryParse yields a childless document, and
// tryInspection at (0,0) returns the start-of-document keyword set rather
// than an error.
func TestFacadeEmptyDocument(t *testing.T) {
	result, err := TryLexParseInspection(New(), "", pos(0))
	if err != nil {
		t.Fatalf("unexpected error on empty document: %v", err)
	}
	if result.Inspected.Scope == nil || result.Inspected.Scope.Len() != 0 {
		t.Fatalf("expected empty scope, got %v", scopeNamesOrNil(result))
	}
	names := result.Inspected.KeywordAutocomplete
	for _, want := range []string{"let", "section", "shared"} {
		if !hasName(t, names, want) {
			t.Fatalf("expected %q in start-of-document keywords %v", want, names)
		}
	}
}

// A position past the end of a well-formed, non-empty document succeeds
// with an empty Inspected rather than failing.
func TestFacadePositionPastEndOfDocument(t *testing.T) {
	result, err := TryLexParseInspection(New(), "1", pos(500))
	if err != nil {
		t.Fatalf("unexpected error for out-of-bounds position: %v", err)
	}
	if result.Inspected.Scope == nil || result.Inspected.Scope.Len() != 0 {
		t.Fatalf("expected empty scope for out-of-bounds position, got %v", scopeNamesOrNil(result))
	}
	if result.Inspected.Invoke != nil {
		t.Fatalf("expected no invoke info, got %+v", result.Inspected.Invoke)
	}
}

func TestFacadeCancellationSurfacesAsCommonError(t *testing.T) {
	token := &FlagCancellationToken{}
	token.Cancel()
	settings := New(WithCancellationToken(token))
	_, err := TryLexParse(settings, "let x = 1 in x")
	ce, ok := err.(*CommonError)
	if !ok {
		t.Fatalf("expected *CommonError, got %T: %v", err, err)
	}
	if ce.Kind != CommonErrorCancellation {
		t.Fatalf("expected CommonErrorCancellation, got %v", ce.Kind)
	}
}
