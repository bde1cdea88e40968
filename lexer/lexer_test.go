package lexer

import "testing"

func kindsOf(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

func TestLexFromSplitSingleLine(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{"identifier", "foo", []TokenKind{TokenKindIdentifier}},
		{"keyword each", "each", []TokenKind{TokenKindKeywordEach}},
		{"numeric", "123", []TokenKind{TokenKindNumericLiteral}},
		{"numeric fraction", "1.5", []TokenKind{TokenKindNumericLiteral}},
		{"numeric exponent", "1e10", []TokenKind{TokenKindNumericLiteral}},
		{"hex", "0x1F", []TokenKind{TokenKindHexLiteral}},
		{"string", `"abc"`, []TokenKind{TokenKindTextLiteral}},
		{"quoted identifier", `#"my id"`, []TokenKind{TokenKindIdentifier}},
		{"fat arrow", "=>", []TokenKind{TokenKindFatArrow}},
		{"ellipsis before dotdot", "...", []TokenKind{TokenKindEllipsis}},
		{"dotdot", "..", []TokenKind{TokenKindDotDot}},
		{"not equal", "<>", []TokenKind{TokenKindNotEqual}},
		{"line comment dropped", "foo // trailing", []TokenKind{TokenKindIdentifier}},
		{
			"call expression",
			"foo(x, y)",
			[]TokenKind{
				TokenKindIdentifier, TokenKindLeftParenthesis, TokenKindIdentifier,
				TokenKindComma, TokenKindIdentifier, TokenKindRightParenthesis,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := LexFromSplit(tc.input, "\n")
			if len(state.ErrorLineMap()) != 0 {
				t.Fatalf("unexpected lex errors: %v", state.ErrorLineMap())
			}
			if len(state.Lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(state.Lines))
			}
			got := kindsOf(state.Lines[0].Tokens)
			if len(got) != len(tc.want) {
				t.Fatalf("token kinds = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("token %d kind = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLexFromSplitMultiLineString(t *testing.T) {
	state := LexFromSplit("\"abc\ndef\"", "\n")
	if len(state.ErrorLineMap()) != 0 {
		t.Fatalf("unexpected lex errors: %v", state.ErrorLineMap())
	}
	if state.Lines[0].ModeLeave != LineModeInsideString {
		t.Fatalf("line 0 leave mode = %v, want InsideString", state.Lines[0].ModeLeave)
	}
	if state.Lines[1].ModeEnter != LineModeInsideString {
		t.Fatalf("line 1 enter mode = %v, want InsideString", state.Lines[1].ModeEnter)
	}
	if len(state.Lines[1].Tokens) != 1 || state.Lines[1].Tokens[0].Kind != TokenKindTextLiteral {
		t.Fatalf("line 1 tokens = %v", state.Lines[1].Tokens)
	}
}

func TestLexFromSplitUnterminatedString(t *testing.T) {
	state := LexFromSplit(`"abc`, "\n")
	errs := state.ErrorLineMap()
	if len(errs) == 0 {
		t.Fatalf("expected an error, got none")
	}
}

func TestTryUpdateLineRelexesOnlyAffectedLines(t *testing.T) {
	state := LexFromSplit("a\nb\nc", "\n")
	next, err := TryUpdateLine(state, 1, "bb")
	if err != nil {
		t.Fatalf("TryUpdateLine: %v", err)
	}
	if next.Lines[1].Text != "bb" {
		t.Fatalf("line 1 text = %q, want bb", next.Lines[1].Text)
	}
	if next.Lines[0].Text != "a" || next.Lines[2].Text != "c" {
		t.Fatalf("unaffected lines changed: %+v", next.Lines)
	}
}

func TestTryUpdateLineBadIndex(t *testing.T) {
	state := LexFromSplit("a", "\n")
	if _, err := TryUpdateLine(state, 5, "x"); err == nil {
		t.Fatalf("expected BadLineNumberError")
	}
	if _, err := TryUpdateLine(state, -1, "x"); err == nil {
		t.Fatalf("expected BadLineNumberError")
	}
}

func TestTryAppend(t *testing.T) {
	state := LexFromSplit("a", "\n")
	next, err := TryAppend(state, "\nb")
	if err != nil {
		t.Fatalf("TryAppend: %v", err)
	}
	if len(next.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(next.Lines))
	}
	if next.Lines[1].Text != "b" {
		t.Fatalf("line 1 = %q, want b", next.Lines[1].Text)
	}
}

func TestTryDeleteLine(t *testing.T) {
	state := LexFromSplit("a\nb\nc", "\n")
	next, err := TryDeleteLine(state, 1)
	if err != nil {
		t.Fatalf("TryDeleteLine: %v", err)
	}
	if len(next.Lines) != 2 || next.Lines[0].Text != "a" || next.Lines[1].Text != "c" {
		t.Fatalf("unexpected lines after delete: %+v", next.Lines)
	}
}
