package parse

import "fmt"

// InvariantKind names which of the node-id map's structural invariants
// (spec §3, I1-I6) was observed broken.
type InvariantKind int

const (
	InvariantOwnership      InvariantKind = iota // I1
	InvariantChildOrder                          // I2
	InvariantParentChildMutualInverse            // I3
	InvariantLeafIdsSubset                       // I4
	InvariantKindIndex                           // I5
	InvariantTokenIntervals                      // I6
)

// InvariantError reports a broken internal-bookkeeping invariant — this is
// the only class of fatal error this module raises; everything else is a
// plain lex/parse/common failure to be surfaced uninterpreted.
type InvariantError struct {
	Kind    InvariantKind
	Details string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("parse: invariant %d violated: %s", e.Kind, e.Details)
}

// CheckInvariants walks the collection and reports the first broken
// invariant found, or nil if all of I1-I6 hold. It is intended for test
// and fuzz harnesses, not the hot parse path.
func CheckInvariants(c *Collection) error {
	for id := range c.AstNodeById {
		if _, alsoContext := c.ContextNodeById[id]; alsoContext {
			return &InvariantError{Kind: InvariantOwnership, Details: fmt.Sprintf("id %d owned by both maps", id)}
		}
	}

	for parent, children := range c.ChildIdsById {
		for _, child := range children {
			if got, ok := c.ParentIdById[child]; !ok || got != parent {
				return &InvariantError{Kind: InvariantParentChildMutualInverse, Details: fmt.Sprintf("child %d of parent %d not mirrored in parentIdById", child, parent)}
			}
		}
	}

	for id := range c.LeafIds {
		if _, ok := c.AstNodeById[id]; !ok {
			return &InvariantError{Kind: InvariantLeafIdsSubset, Details: fmt.Sprintf("leaf id %d missing from astNodeById", id)}
		}
	}

	for kind, ids := range c.IdsByNodeKind {
		for id := range ids {
			gotKind, ok := c.Kind(id)
			if !ok || gotKind != kind {
				return &InvariantError{Kind: InvariantKindIndex, Details: fmt.Sprintf("id %d indexed under kind %v but resolves to %v", id, kind, gotKind)}
			}
		}
	}

	for parent, children := range c.ChildIdsById {
		node, ok := c.AstNodeById[parent]
		if !ok {
			continue // parent still in progress; I6 only binds completed nodes
		}
		prevEnd := -1
		for _, child := range children {
			cn, ok := c.AstNodeById[child]
			if !ok {
				continue
			}
			if cn.TokenIndexStart < prevEnd {
				return &InvariantError{Kind: InvariantTokenIntervals, Details: fmt.Sprintf("child %d overlaps previous sibling", child)}
			}
			prevEnd = cn.TokenIndexEnd
			if cn.TokenIndexStart < node.TokenIndexStart || cn.TokenIndexEnd > node.TokenIndexEnd {
				return &InvariantError{Kind: InvariantTokenIntervals, Details: fmt.Sprintf("child %d not nested in parent %d", child, parent)}
			}
		}
	}

	return nil
}
