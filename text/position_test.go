package text

import "testing"

func TestSplitLines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		term  string
		want  []string
	}{
		{"empty", "", "\n", []string{""}},
		{"single line", "let x = 1", "\n", []string{"let x = 1"}},
		{"two lines", "a\nb", "\n", []string{"a", "b"}},
		{"trailing terminator", "a\n", "\n", []string{"a", ""}},
		{"custom terminator", "a\r\nb", "\r\n", []string{"a", "b"}},
		{"default terminator on empty string", "a\nb", "", []string{"a", "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitLines(tc.input, tc.term)
			if len(got) != len(tc.want) {
				t.Fatalf("SplitLines(%q, %q) = %v, want %v", tc.input, tc.term, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestGraphemeColumn(t *testing.T) {
	cases := []struct {
		name      string
		line      string
		codeUnits int
		want      int
	}{
		{"start", "abc", 0, 0},
		{"ascii midpoint", "abc", 2, 2},
		{"ascii end", "abc", 3, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GraphemeColumn(tc.line, tc.codeUnits)
			if got != tc.want {
				t.Errorf("GraphemeColumn(%q, %d) = %d, want %d", tc.line, tc.codeUnits, got, tc.want)
			}
		})
	}
}

func TestCodeUnitLen(t *testing.T) {
	if got := CodeUnitLen("abc"); got != 3 {
		t.Errorf("CodeUnitLen(abc) = %d, want 3", got)
	}
	if got := CodeUnitLen("\U0001F600"); got != 2 {
		t.Errorf("CodeUnitLen(emoji) = %d, want 2", got)
	}
}

func TestPositionAtLineColumn(t *testing.T) {
	src := "let x = 1\nin x"
	cases := []struct {
		name         string
		line, column int
		want         Position
	}{
		{"first line first column", 1, 1, Position{CodeUnit: 0, LineNumber: 0, LineCodeUnit: 0}},
		{"first line mid", 1, 5, Position{CodeUnit: 4, LineNumber: 0, LineCodeUnit: 4}},
		{"second line first column", 2, 1, Position{CodeUnit: 10, LineNumber: 1, LineCodeUnit: 0}},
		{"second line mid", 2, 4, Position{CodeUnit: 13, LineNumber: 1, LineCodeUnit: 3}},
		{"column clamped to line length", 2, 99, Position{CodeUnit: 14, LineNumber: 1, LineCodeUnit: 4}},
		{"line clamped to last line", 99, 1, Position{CodeUnit: 10, LineNumber: 1, LineCodeUnit: 0}},
		{"line and column below one clamp to one", 0, 0, Position{CodeUnit: 0, LineNumber: 0, LineCodeUnit: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PositionAtLineColumn(src, "\n", tc.line, tc.column)
			if got != tc.want {
				t.Errorf("PositionAtLineColumn(%d, %d) = %+v, want %+v", tc.line, tc.column, got, tc.want)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	p := Position{LineNumber: 2, LineCodeUnit: 4}
	if got, want := p.String(), "3:5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
