package types

import (
	"github.com/SerafimArts/algebraic-types/internal/log"
	"github.com/hashicorp/go-set/v3"
)

var resolveLogger = log.DefaultLogger.With("section", "resolve")

// IsSubtype decides whether a is a subtype of b in this registry.
//
// Both sides are canonicalized to disjunctive normal form; a is a subtype
// of b iff every clause of a's DNF is subsumed by at least one clause of
// b's DNF. Each possible concrete shape on the left must be guaranteed to
// satisfy at least one allowed shape on the right.
//
// Fails with UnresolvedReference when a named operand is unknown and with
// CyclicDefinition when an operand's expansion is ungrounded. The relation
// is reflexive and transitive; refinement predicates do not participate.
func (r *Registry) IsSubtype(a, b TypeExpr) (bool, error) {
	left, err := r.expand(a, "", set.New[typeName](8))
	if err != nil {
		return false, err
	}
	// the top matches without traversal
	if named, ok := b.(namedType); ok && named.name == MixedName {
		return true, nil
	}
	right, err := r.expand(b, "", set.New[typeName](8))
	if err != nil {
		return false, err
	}
	result := dnfSubsumed(left, right)
	resolveLogger.Debug("subtype query", "lhs", a.String(), "rhs", b.String(), "result", result)
	return result, nil
}

// dnfSubsumed implements the term-wise union-of-intersections rule
func dnfSubsumed(left, right dnf) bool {
	for _, lc := range left {
		matched := false
		for _, rc := range right {
			if lc.subsumes(rc) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
