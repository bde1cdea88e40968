package parser

import (
	"github.com/odvcencio/powerquery-parser/ast"
)

// NewCombinatorialReader returns a Reader sharing every non-operator rule
// with the recursive-descent table, but reading the infix operator chain
// with a single precedence-climbing loop over binaryLevels instead of one
// mutually-recursive function per rung. The two tables are interchangeable
// anywhere a Reader is accepted — Parse doesn't know or care which one it
// was handed.
func NewCombinatorialReader() *Reader {
	r := &Reader{}
	populateSharedRules(r)

	r.ReadLogicalExpression = func(s *state) (ast.Node, error) { return climb(s, 0) }
	r.ReadEqualityExpression = func(s *state) (ast.Node, error) { return climb(s, 2) }
	r.ReadRelationalExpression = func(s *state) (ast.Node, error) { return climb(s, 3) }
	r.ReadArithmeticExpression = func(s *state) (ast.Node, error) { return climb(s, 4) }

	return r
}

// climb reads a left-associative operand chain starting at binaryLevels[level]
// and absorbing every looser-or-equal-precedence operator it finds before
// returning, iteratively rather than through per-level recursive calls.
// is/as/meta still recurse through their own rule fields (is/as bind
// between logical and equality in this grammar, not inside the flat
// arithmetic/equality/relational/logical ladder), so this function's
// operand is ReadIsExpression for the looser levels and
// ReadArithmeticExpression's own sub-ladder for the tighter ones.
func climb(s *state, level int) (ast.Node, error) {
	operand := func(s *state) (ast.Node, error) {
		switch {
		case level+1 < len(binaryLevels) && sameLadder(level):
			return climb(s, level+1)
		default:
			return nextLadderOperand(s, level)
		}
	}

	left, err := operand(s)
	if err != nil {
		return ast.Node{}, err
	}

	for {
		lvl := binaryLevels[level]
		tok, ok := s.ctx.PeekToken(0)
		if !ok {
			break
		}
		if _, matches := lvl.ops[tok.Kind]; !matches {
			break
		}
		id := s.ctx.StartContext(lvl.kind)
		opTok, _ := s.ctx.ReadToken()
		s.ctx.NewLeaf(ast.NodeKindConstant, s.ctx.TokenIndex()-1, opTok.Data)
		if _, err := operand(s); err != nil {
			deleteUnlessPreserved(s, id, err)
			return ast.Node{}, err
		}
		left = s.ctx.EndContext(id)
	}
	return left, nil
}

// sameLadder reports whether level and level+1 belong to the same
// contiguous arithmetic ladder (additive/multiplicative) that climb can
// walk by index alone, as opposed to a ladder boundary crossed by
// recursing through a named rule field (is/as/metadata/unary).
func sameLadder(level int) bool {
	switch level {
	case 0: // or -> and: both logical, same ladder
		return true
	case 4: // additive -> multiplicative: both arithmetic, same ladder
		return true
	default:
		return false
	}
}

// nextLadderOperand reads the operand that follows the end of a
// contiguous index-addressable ladder, crossing into the next named rule.
func nextLadderOperand(s *state, level int) (ast.Node, error) {
	switch level {
	case 1: // end of logical ladder -> is/as/meta chain
		return s.r.ReadIsExpression(s)
	case 2: // equality's own operand is relational
		return s.r.ReadRelationalExpression(s)
	case 3: // relational's own operand is arithmetic
		return s.r.ReadArithmeticExpression(s)
	case 5: // end of arithmetic ladder -> metadata/unary/primary chain
		return s.r.ReadMetadataExpression(s)
	default:
		return s.r.ReadMetadataExpression(s)
	}
}
