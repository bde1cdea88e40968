package task

import "fmt"

// CommonErrorKind discriminates the family of errors spec §7 calls
// "invariant violated, unknown, cancellation" — failures that are not
// local to lexing or parsing a particular input, and that a caller
// surfaces uninterpreted rather than trying to recover from.
type CommonErrorKind int

const (
	CommonErrorInvariant CommonErrorKind = iota
	CommonErrorCancellation
	CommonErrorInvalidPosition
)

// CommonError is the task facade's catch-all for the "common" family
// (spec §7). InvariantDetails carries whatever structured payload the
// failing invariant check produced; it is nil for the other two kinds.
type CommonError struct {
	Kind             CommonErrorKind
	Message          string
	InvariantDetails map[string]any
}

func (e *CommonError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("task: %s", e.Message)
	}
	switch e.Kind {
	case CommonErrorCancellation:
		return "task: operation was cancelled"
	case CommonErrorInvalidPosition:
		return "task: position is outside the document"
	default:
		return "task: invariant violated"
	}
}

// LexError wraps a lex-stage failure (spec §7, "local to a line or a
// range update; surfaced as-is; downstream parse/inspection is not
// attempted"). Inner is whatever the lexer/snapshot packages returned —
// a *lexer.LineError, a *snapshot.SnapshotError, or similar.
type LexError struct {
	Inner error
}

func (e *LexError) Error() string { return fmt.Sprintf("task: lex failed: %v", e.Inner) }
func (e *LexError) Unwrap() error { return e.Inner }
