package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/odvcencio/powerquery-parser/inspection"
	"github.com/odvcencio/powerquery-parser/text"
)

func TestCSVWriterHeaderOnEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "file,position,scope") {
		t.Fatalf("expected header row, got %q", buf.String())
	}
}

func TestCSVWriterWriteResult(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	result := Result{
		File:                 "doc.pq",
		Position:             text.Position{LineNumber: 0, LineCodeUnit: 8},
		Scope:                []string{"x", "y"},
		HasInvoke:            true,
		InvokeName:           "foo",
		InvokeNumArguments:   2,
		InvokePositionArgIdx: 1,
		KeywordAutocomplete:  []string{"then", "else"},
	}
	if err := w.WriteResult(result); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"doc.pq", "1:9", "x; y", "foo", "then; else"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

func TestFromInspectedEmptyIsZeroInvoke(t *testing.T) {
	r := FromInspected("doc.pq", text.Position{}, inspection.Inspected{})
	if r.HasInvoke {
		t.Fatalf("expected no invoke info for empty Inspected")
	}
	if len(r.Scope) != 0 {
		t.Fatalf("expected empty scope, got %v", r.Scope)
	}
}
