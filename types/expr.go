package types

import (
	"fmt"
	"hash/fnv"
	"iter"
	"slices"

	"github.com/SerafimArts/algebraic-types/util"
)

type typeName = string

// TypeExpr is an algebraic type expression: a named reference, a union, or
// an intersection. Values are immutable once constructed and compared for
// equality via their Hash, which ignores runtime refinements.
type TypeExpr interface {
	fmt.Stringer
	Hash() uint64
	children() iter.Seq[TypeExpr]
}

var (
	_ TypeExpr = namedType{}
	_ TypeExpr = unionType{}
	_ TypeExpr = intersectionType{}
)

// Equivalent compares two expressions structurally.
// Refinements are invisible to it: two refined types with the same operand
// set are mutually equivalent regardless of predicate.
func Equivalent(a, b TypeExpr) bool {
	return a.Hash() == b.Hash()
}

var emptySeqTypeExpr iter.Seq[TypeExpr] = func(_ func(TypeExpr) bool) {}

type namedType struct {
	name typeName
}

// Named references a registry entry or built-in leaf by (possibly relative)
// qualified name
func Named(name string) TypeExpr {
	return namedType{name: name}
}

func (t namedType) String() string { return t.name }
func (t namedType) Hash() uint64 {
	const prime uint64 = 1099511628211
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.name))
	return prime ^ h.Sum64()
}
func (t namedType) children() iter.Seq[TypeExpr] { return emptySeqTypeExpr }

type unionType struct {
	// terms are sorted by hash and deduplicated; always >= 2 of them
	terms []TypeExpr
}

// UnionOf builds the logical OR of terms. Nested unions are flattened,
// duplicates removed, and a single remaining operand collapses to itself.
func UnionOf(terms ...TypeExpr) TypeExpr {
	flat := make([]TypeExpr, 0, len(terms))
	for _, term := range terms {
		if u, ok := term.(unionType); ok {
			flat = append(flat, u.terms...)
			continue
		}
		flat = append(flat, term)
	}
	flat = normalizeOperands(flat)
	if len(flat) == 1 {
		return flat[0]
	}
	return unionType{terms: flat}
}

func (t unionType) String() string {
	return "(" + util.JoinString(t.terms, "|") + ")"
}
func (t unionType) Hash() uint64 {
	var hash uint64 = 2166136261
	for _, term := range t.terms {
		hash = hash*31 ^ term.Hash()
	}
	return hash * 37
}
func (t unionType) children() iter.Seq[TypeExpr] { return slices.Values(t.terms) }

type intersectionType struct {
	// terms are sorted by hash and deduplicated
	terms []TypeExpr
	// refinement may be nil; at most one per node. It never participates in
	// hashing or static subtyping, only in runtime classification.
	refinement *Refinement
}

// IntersectionOf builds the logical AND of terms. Nested unrefined
// intersections are flattened, duplicates removed, and a single remaining
// operand collapses to itself.
func IntersectionOf(terms ...TypeExpr) TypeExpr {
	return newIntersection(nil, terms)
}

// Refined attaches a runtime predicate to the intersection of terms.
// A refined node is kept even when it holds a single operand, since
// collapsing it would drop the predicate.
func Refined(refinement *Refinement, terms ...TypeExpr) TypeExpr {
	return newIntersection(refinement, terms)
}

func newIntersection(refinement *Refinement, terms []TypeExpr) TypeExpr {
	flat := make([]TypeExpr, 0, len(terms))
	for _, term := range terms {
		if i, ok := term.(intersectionType); ok {
			// a refined operand keeps its own node unless this one can
			// adopt the predicate, so each node carries at most one
			if i.refinement == nil {
				flat = append(flat, i.terms...)
				continue
			}
			if refinement == nil {
				refinement = i.refinement
				flat = append(flat, i.terms...)
				continue
			}
		}
		flat = append(flat, term)
	}
	flat = normalizeOperands(flat)
	if len(flat) == 1 && refinement == nil {
		return flat[0]
	}
	return intersectionType{terms: flat, refinement: refinement}
}

func (t intersectionType) String() string {
	s := "(" + util.JoinString(t.terms, "&") + ")"
	if t.refinement != nil {
		s += "<" + t.refinement.Name + ">"
	}
	return s
}
func (t intersectionType) Hash() uint64 {
	var hash uint64 = 2166136261
	for _, term := range t.terms {
		hash = hash*41 ^ term.Hash()
	}
	return hash * 43
}
func (t intersectionType) children() iter.Seq[TypeExpr] { return slices.Values(t.terms) }

// normalizeOperands sorts operands into canonical hash order and drops
// structural duplicates
func normalizeOperands(terms []TypeExpr) []TypeExpr {
	if len(terms) == 0 {
		panic("composite type expression with no operands")
	}
	slices.SortFunc(terms, util.ComparingHashable[TypeExpr, uint64])
	return slices.CompactFunc(terms, Equivalent)
}

// Predicate is an opaque runtime check supplied by the host. The engine
// never inspects predicate bodies; they run only inside Classifies.
type Predicate func(value any) (bool, error)

// Refinement narrows membership of an intersection beyond its structural
// atoms. Name is used for display only.
type Refinement struct {
	Name  string
	Check Predicate
}
