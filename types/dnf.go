package types

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/SerafimArts/algebraic-types/typerr"
	"github.com/SerafimArts/algebraic-types/util"
	"github.com/hashicorp/go-set/v3"
)

// clause is an intersection of atomic leaves, identified by name. Atom sets
// are ordered so canonical rendering is deterministic.
type clause struct {
	atoms *set.TreeSet[typeName]
}

func newClause(names ...typeName) clause {
	c := clause{atoms: set.NewTreeSet[typeName](cmp.Compare[string])}
	c.atoms.InsertSlice(names)
	return c
}

// merge combines the atoms of both clauses into a fresh one
func (c clause) merge(other clause) clause {
	merged := newClause()
	for atom := range util.ConcatIter(c.atoms.Items(), other.atoms.Items()) {
		merged.atoms.Insert(atom)
	}
	return merged
}

// subsumes reports whether other's atom set is a subset of this clause's:
// a more specific intersection satisfies a less specific one
func (c clause) subsumes(other clause) bool {
	return c.atoms.Subset(other.atoms)
}

func (c clause) equal(other clause) bool {
	return c.atoms.Size() == other.atoms.Size() && c.atoms.Subset(other.atoms)
}

func (c clause) String() string {
	return strings.Join(c.atoms.Slice(), "&")
}

// dnf is the canonical comparison form: a union of clauses. An empty dnf is
// unsatisfiable; it only arises from ungrounded self-reference and is
// rejected before it can reach a subtype comparison.
type dnf []clause

func (d dnf) String() string {
	parts := make([]string, len(d))
	for i, c := range d {
		parts[i] = c.String()
	}
	slices.Sort(parts)
	return strings.Join(parts, " | ")
}

// dnfUnion concatenates clause lists, dropping duplicate clauses
func dnfUnion(a, b dnf) dnf {
	out := slices.Clone(a)
	for _, c := range b {
		dup := false
		for _, existing := range out {
			if existing.equal(c) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// dnfIntersect distributes an intersection over two unions: the clause-wise
// cross product. Intersecting with the empty (unsatisfiable) dnf is empty.
func dnfIntersect(a, b dnf) dnf {
	out := make(dnf, 0, len(a)*len(b))
	for _, ca := range a {
		for _, cb := range b {
			out = append(out, ca.merge(cb))
		}
	}
	return out
}

// expand canonicalizes t: every named reference is resolved through the
// registry until only atomic leaves remain, and the result is a union of
// intersections of atoms. Names are resolved relative to fromNamespace.
//
// A name revisited during its own expansion contributes an empty dnf, so a
// recursive disjunct drops out of a union while a recursive conjunct
// annihilates the whole intersection. Whether that emptiness is an error is
// decided at the root of the expansion (see expandName).
func (r *Registry) expand(t TypeExpr, fromNamespace string, visiting *set.Set[typeName]) (dnf, error) {
	switch t := t.(type) {
	case namedType:
		return r.expandName(t.name, fromNamespace, visiting)
	case unionType:
		result := dnf{}
		for term := range t.children() {
			d, err := r.expand(term, fromNamespace, visiting)
			if err != nil {
				return nil, err
			}
			result = dnfUnion(result, d)
		}
		return result, nil
	case intersectionType:
		// refinements are structurally invisible: the predicate is
		// treated as true here and only ever runs inside Classifies
		result := dnf{newClause()}
		for term := range t.children() {
			d, err := r.expand(term, fromNamespace, visiting)
			if err != nil {
				return nil, err
			}
			result = dnfIntersect(result, d)
		}
		return result, nil
	default:
		return nil, typerr.New(typerr.Unclassified{From: fmt.Errorf("unknown type expression kind %T", t)})
	}
}

func (r *Registry) expandName(name, fromNamespace string, visiting *set.Set[typeName]) (dnf, error) {
	root := visiting.Size() == 0
	decl, fq, err := resolveChain(r.lookup, name, fromNamespace)
	if err != nil {
		if typerr.CodeOf(err) == typerr.UnknownType {
			return nil, typerr.New(typerr.NewUnresolvedReference{Name: name})
		}
		return nil, err
	}
	if visiting.Contains(fq) {
		// recursive occurrence of a name inside its own expansion:
		// contributes nothing, the enclosing union must ground it
		return dnf{}, nil
	}
	if cached, ok := r.expandCache.Load(fq); ok {
		return cached.(dnf), nil
	}

	visiting.Insert(fq)
	defer visiting.Remove(fq)

	var result dnf
	if decl.Body == nil {
		result = dnf{newClause(fq)}
	} else {
		body, err := r.expand(decl.Body, decl.Namespace, visiting)
		if err != nil {
			return nil, err
		}
		if decl.Origin.atomic() {
			// class-like and built-in declarations are tags in their own
			// right: their own atom joins every clause of the body
			result = dnfIntersect(dnf{newClause(fq)}, body)
		} else {
			result = body
		}
	}

	if len(result) == 0 {
		if root {
			return nil, typerr.New(typerr.NewCyclicDefinition{Name: fq})
		}
		return dnf{}, nil
	}
	if root {
		r.expandCache.Store(fq, result)
	}
	return result, nil
}

// Canonical renders the disjunctive normal form of a named type, mostly as
// a debugging aid for embedding tools
func (r *Registry) Canonical(name, fromNamespace string) (string, error) {
	d, err := r.expandName(name, fromNamespace, set.New[typeName](8))
	if err != nil {
		return "", err
	}
	return d.String(), nil
}
