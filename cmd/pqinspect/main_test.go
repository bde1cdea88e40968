package main

import "testing"

func TestParseLineColumn(t *testing.T) {
	line, column, err := parseLineColumn("3:14")
	if err != nil {
		t.Fatalf("parseLineColumn: %v", err)
	}
	if line != 3 || column != 14 {
		t.Fatalf("got line=%d column=%d, want 3,14", line, column)
	}
}

func TestParseLineColumnRejectsMissingColon(t *testing.T) {
	if _, _, err := parseLineColumn("314"); err == nil {
		t.Fatalf("expected an error for a missing colon")
	}
}

func TestParseLineColumnRejectsNonNumeric(t *testing.T) {
	if _, _, err := parseLineColumn("a:b"); err == nil {
		t.Fatalf("expected an error for non-numeric line/column")
	}
}

func TestResolveParserKindDefaultsToRecursiveDescent(t *testing.T) {
	if resolveParserKind("") != resolveParserKind("recursive-descent") {
		t.Fatalf("expected empty string to resolve the same as recursive-descent")
	}
}
