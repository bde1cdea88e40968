package inspection

import (
	"github.com/odvcencio/powerquery-parser/activenode"
	"github.com/odvcencio/powerquery-parser/parse"
)

// Inspected is the merged result of every sub-inspection run against one
// position: scope, invoke info, and the three autocomplete providers
// (spec §4.6 — "any sub-inspection that fails returns its error;
// successes are merged"). None of the sub-inspections here can actually
// fail once ActiveNode resolution has succeeded, so Inspected has no
// partial-failure fields of its own. For an out-of-bounds position
// TryInspection (package task) returns an empty Inspected and no error.
type Inspected struct {
	Scope                        *Scope
	Invoke                       *InvokeInfo
	KeywordAutocomplete          []string
	PrimitiveTypeAutocomplete    []string
	LanguageConstantAutocomplete []string
}

// Inspect runs every sub-inspection against an already-resolved
// ActiveNode and merges the results.
func Inspect(c *parse.Collection, node activenode.ActiveNode) Inspected {
	return Inspected{
		Scope:                        ComputeScope(c, node),
		Invoke:                       ComputeInvoke(c, node),
		KeywordAutocomplete:          AutocompleteKeyword(c, node),
		PrimitiveTypeAutocomplete:    AutocompletePrimitiveType(c, node),
		LanguageConstantAutocomplete: AutocompleteLanguageConstant(c, node),
	}
}
