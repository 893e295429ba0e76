package manifest

import (
	"github.com/SerafimArts/algebraic-types/types"
	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// compile evaluates the refinement's Go source into an engine predicate.
// The source must be a function literal of type func(interface{}) bool.
// The interpreter boundary keeps predicates opaque to the core: the engine
// only ever sees a callable.
func (r Refine) compile() (*types.Refinement, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(err, "loading interpreter symbols")
	}
	v, err := i.Eval(r.Go)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling predicate %q", r.Name)
	}
	fn, ok := v.Interface().(func(interface{}) bool)
	if !ok {
		return nil, errors.Errorf("predicate %q must be a func(interface{}) bool, got %T", r.Name, v.Interface())
	}
	return &types.Refinement{
		Name: r.Name,
		Check: func(value any) (bool, error) {
			return fn(value), nil
		},
	}, nil
}
