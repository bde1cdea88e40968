package task

import (
	"github.com/odvcencio/powerquery-parser/activenode"
	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/inspection"
	"github.com/odvcencio/powerquery-parser/lexer"
	"github.com/odvcencio/powerquery-parser/parse"
	"github.com/odvcencio/powerquery-parser/parser"
	"github.com/odvcencio/powerquery-parser/snapshot"
	"github.com/odvcencio/powerquery-parser/text"
)

const defaultLineTerminator = "\n"

// ParseOk is tryParse's success payload (spec §6): the completed root,
// the node id map it was built into, the leaf-token id set, and the
// underlying parse state — kept even when Err is non-nil, since a parse
// error is surfaced together with the partial tree it produced (spec §7)
// rather than discarding it.
type ParseOk struct {
	Root       ast.Node
	Collection *parse.Collection
	LeafIds    map[int]struct{}
	State      *parse.Context
}

// LexParseOk is tryLexParse's success payload: the snapshot plus
// everything ParseOk carries.
type LexParseOk struct {
	Snapshot snapshot.Snapshot
	ParseOk
}

// LexParseInspectOk is tryLexParseInspection's success payload.
type LexParseInspectOk struct {
	LexParseOk
	Inspected inspection.Inspected
}

// TryLex implements spec §6's tryLex entry point: lex text and collapse it
// into an error-free Snapshot, or fail with a LexError.
func TryLex(settings Settings, src string) (snapshot.Snapshot, error) {
	state := lexer.LexFromSplit(src, defaultLineTerminator)
	snap, err := snapshot.TrySnapshot(state)
	if err != nil {
		return snapshot.Snapshot{}, &LexError{Inner: err}
	}
	return snap, nil
}

// TryParse implements tryParse: read snap into a tree with the reader
// Settings selects. The returned ParseOk is populated whether or not err
// is nil, since even a failed parse's partial collection is what
// inspection needs next.
func TryParse(settings Settings, snap snapshot.Snapshot) (ParseOk, error) {
	ctx := parse.NewContext(snap)
	reader := settings.newReader()

	root, err := parser.Parse(ctx, reader)
	ok := ParseOk{
		Root:       root,
		Collection: ctx.Collection,
		LeafIds:    ctx.Collection.LeafIds,
		State:      ctx,
	}
	if err == nil {
		return ok, nil
	}
	return ok, classifyParseError(err)
}

// classifyParseError promotes a cancellation specifically into the common
// error family (spec §7: "common errors... signal programmer error or
// external interruption"); every other *parser.ParseError is returned
// unwrapped, since its own State field is already what inspection needs.
func classifyParseError(err error) error {
	pe, ok := err.(*parser.ParseError)
	if !ok {
		return err
	}
	if _, isCancel := pe.Inner.(*parser.CancellationError); isCancel {
		return &CommonError{Kind: CommonErrorCancellation}
	}
	return pe
}

// TryLexParse implements tryLexParse: tryLex then tryParse over its
// result, stopping at the first failure.
func TryLexParse(settings Settings, src string) (LexParseOk, error) {
	snap, err := TryLex(settings, src)
	if err != nil {
		return LexParseOk{}, err
	}
	ok, err := TryParse(settings, snap)
	return LexParseOk{Snapshot: snap, ParseOk: ok}, err
}

// TryInspection implements tryInspection: resolve pos against triedParse's
// collection and run every sub-inspection over the result.
//
// Boundary behavior (spec §8): an empty document returns success with an
// empty scope and the start-of-document keyword set rather than an error;
// a position outside the document's token range (but a non-empty
// document) returns success with an entirely empty Inspected — out of
// bounds is not itself a failure, only a query with nothing to answer.
func TryInspection(settings Settings, triedParse ParseOk, pos text.Position) (inspection.Inspected, error) {
	if triedParse.Collection == nil || triedParse.State == nil {
		return inspection.Inspected{}, &CommonError{
			Kind:    CommonErrorInvariant,
			Message: "triedParse carries no parse state to inspect",
		}
	}

	tokens := triedParse.State.Snapshot.Tokens
	if len(tokens) == 0 {
		return inspection.Inspected{
			Scope:               inspection.NewScope(),
			KeywordAutocomplete: inspection.StartOfDocumentKeywords(),
		}, nil
	}

	node := activenode.Resolve(triedParse.Collection, tokens, pos)
	if !node.InBounds {
		return inspection.Inspected{Scope: inspection.NewScope()}, nil
	}
	return inspection.Inspect(triedParse.Collection, node), nil
}

// TryLexParseInspection implements tryLexParseInspection: the full
// lex → parse → inspect pipeline over one input and one position.
//
// A lex failure stops the pipeline outright (spec §7: "no downstream
// parse/inspection attempted"). A parse failure does not: its partial
// collection is exactly what inspection needs, so inspection still runs
// and the parse error is still returned alongside its result.
func TryLexParseInspection(settings Settings, src string, pos text.Position) (LexParseInspectOk, error) {
	lp, err := TryLexParse(settings, src)
	if _, isLexErr := err.(*LexError); isLexErr {
		return LexParseInspectOk{LexParseOk: lp}, err
	}
	inspected, inspectErr := TryInspection(settings, lp.ParseOk, pos)
	if err == nil {
		err = inspectErr
	}
	return LexParseInspectOk{LexParseOk: lp, Inspected: inspected}, err
}
