package localization

import (
	"strings"
	"testing"

	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/text"
)

func TestRenderDefaultLocale(t *testing.T) {
	err := &lexer.BadLineNumberError{Kind: lexer.BadLineNumberGreaterThanNumLines, LineNumber: 5, NumLines: 3}
	msg, ok := Message(DefaultLocale, err)
	if !ok {
		t.Fatalf("expected Message to recognize %T", err)
	}
	if !strings.Contains(msg, "5") || !strings.Contains(msg, "3") {
		t.Fatalf("expected line numbers in message, got %q", msg)
	}
}

func TestRenderUnknownLocaleFallsBackToDefault(t *testing.T) {
	err := &lexer.BadLineNumberError{Kind: lexer.BadLineNumberLessThanZero, LineNumber: -1}
	got, ok := Message("xx-XX", err)
	if !ok {
		t.Fatalf("expected Message to recognize %T", err)
	}
	want, ok := Message(DefaultLocale, err)
	if !ok {
		t.Fatalf("expected default locale to recognize %T", err)
	}
	if got != want {
		t.Fatalf("unknown locale should fall back to default: got %q, want %q", got, want)
	}
}

func TestRenderPartialLocaleFallsBackPerTag(t *testing.T) {
	// fr-FR has its own template for UnterminatedBracket...
	opening := lexer.Token{PositionStart: text.Position{LineNumber: 0, LineCodeUnit: 2}}
	bracketErr := &parserUnterminatedBracketStub{Opening: opening}
	frMsg, err := Render("fr-FR", TagUnterminatedBracket, bracketErr)
	if err != nil {
		t.Fatalf("expected a template for %q in fr-FR: %v", TagUnterminatedBracket, err)
	}
	if !strings.Contains(frMsg, "crochet") {
		t.Fatalf("expected French wording, got %q", frMsg)
	}

	// ...but has no entry at all for InvalidLiteral, which must fall back
	// to en-US's template instead of failing.
	literalErr := struct {
		Actual   lexer.Token
		Position text.Position
	}{Actual: lexer.Token{Data: "bad"}, Position: text.Position{}}
	msg, err := Render("fr-FR", TagInvalidLiteral, literalErr)
	if err != nil {
		t.Fatalf("expected fallback to en-US template, got error: %v", err)
	}
	if !strings.Contains(msg, "not a valid literal") {
		t.Fatalf("expected en-US wording, got %q", msg)
	}
}

type parserUnterminatedBracketStub struct {
	Opening lexer.Token
}

func TestLocalesIncludesDefault(t *testing.T) {
	found := false
	for _, name := range Locales() {
		if name == DefaultLocale {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q among loaded locales %v", DefaultLocale, Locales())
	}
}
