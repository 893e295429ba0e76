package types

import (
	"fmt"
	"reflect"

	"github.com/SerafimArts/algebraic-types/typerr"
)

// Instance is implemented by host object values that know the fully
// qualified class they were instantiated from. Values without it classify
// against the native leaves only.
type Instance interface {
	ClassName() string
}

// Classifies decides whether a concrete runtime value inhabits t.
//
// Structural membership follows the same algebra as IsSubtype, driven by
// the value's observed type. This is the single place refinement
// predicates execute: a refined intersection holds only when its
// structural part holds and the predicate returns true. A predicate that
// errors or panics makes the result false and the failure is surfaced as
// RefinementPredicateFailed, never swallowed.
func (r *Registry) Classifies(value any, t TypeExpr) (bool, error) {
	switch t := t.(type) {
	case namedType:
		return r.IsSubtype(observedExpr(value), t)
	case unionType:
		var firstErr error
		for _, term := range t.terms {
			ok, err := r.Classifies(value, term)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if ok {
				return true, nil
			}
		}
		return false, firstErr
	case intersectionType:
		for _, term := range t.terms {
			ok, err := r.Classifies(value, term)
			if err != nil || !ok {
				return false, err
			}
		}
		if t.refinement != nil {
			return evalRefinement(t.refinement, value, t.String())
		}
		return true, nil
	default:
		return false, typerr.New(typerr.Unclassified{From: fmt.Errorf("unknown type expression kind %T", t)})
	}
}

// evalRefinement guards the opaque predicate: a panic inside host code is
// converted into a reported failure
func evalRefinement(ref *Refinement, value any, typeName string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = typerr.New(typerr.NewRefinementPredicateFailed{
				TypeName: typeName,
				Cause:    fmt.Errorf("predicate panicked: %v", r),
			})
		}
	}()
	ok, cause := ref.Check(value)
	if cause != nil {
		return false, typerr.New(typerr.NewRefinementPredicateFailed{TypeName: typeName, Cause: cause})
	}
	return ok, nil
}

// observedExpr maps a runtime value onto the type it inhabits most
// specifically: its registered class for Instance values, a scalar leaf
// for native scalars, and so on. Unknown host values land on 'resource'.
func observedExpr(value any) TypeExpr {
	if value == nil {
		return Named(MixedName)
	}
	if instance, ok := value.(Instance); ok {
		return Named(instance.ClassName())
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool:
		return Named(BoolName)
	case reflect.String:
		return Named(StringName)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Named(IntName)
	case reflect.Float32, reflect.Float64:
		return Named(FloatName)
	case reflect.Slice, reflect.Array, reflect.Map:
		return Named(ArrayName)
	default:
		return Named(ResourceName)
	}
}
