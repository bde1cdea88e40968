// Package report is the out-of-scope "CSV report writer" collaborator's
// boundary (spec §1): a thin contract for recording one inspection result
// per row, plus a standard-library encoding/csv-backed implementation.
// Nothing in the core lexer/parser/inspection packages depends on this
// one — it exists so a tool like cmd/pqinspect has somewhere concrete to
// send its results.
package report

import (
	"strings"

	"github.com/odvcencio/powerquery-parser/inspection"
	"github.com/odvcencio/powerquery-parser/text"
)

// Result is one position's inspection outcome, flattened into the fields
// a tabular report can hold — the scope/autocomplete slices inspection
// returns are joined into single cells rather than exploded into
// variable-width columns.
type Result struct {
	File     string
	Position text.Position

	Scope []string

	InvokeName           string
	InvokeNumArguments   int
	InvokePositionArgIdx int
	HasInvoke            bool

	KeywordAutocomplete          []string
	PrimitiveTypeAutocomplete    []string
	LanguageConstantAutocomplete []string
}

// FromInspected flattens an inspection.Inspected for file/pos into a
// Result row.
func FromInspected(file string, pos text.Position, inspected inspection.Inspected) Result {
	r := Result{
		File:                         file,
		Position:                     pos,
		KeywordAutocomplete:          inspected.KeywordAutocomplete,
		PrimitiveTypeAutocomplete:    inspected.PrimitiveTypeAutocomplete,
		LanguageConstantAutocomplete: inspected.LanguageConstantAutocomplete,
	}
	if inspected.Scope != nil {
		r.Scope = inspected.Scope.Names()
	}
	if inv := inspected.Invoke; inv != nil {
		r.HasInvoke = true
		r.InvokeNumArguments = inv.NumArguments
		r.InvokePositionArgIdx = inv.PositionArgumentIndex
		if inv.Name != nil {
			r.InvokeName = *inv.Name
		}
	}
	return r
}

// Writer records Results one at a time and finalizes them on Close.
type Writer interface {
	WriteResult(Result) error
	Close() error
}

func joinCell(items []string) string {
	return strings.Join(items, "; ")
}
