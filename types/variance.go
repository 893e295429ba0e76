package types

import (
	"github.com/SerafimArts/algebraic-types/internal/log"
	"github.com/SerafimArts/algebraic-types/typerr"
)

var varianceLogger = log.DefaultLogger.With("section", "variance")

// CheckOverride validates that child may override parent:
// contravariance on parameters, covariance on the return type.
//
// Every parameter of the child must accept at least what the parent
// accepted (the parent's parameter is a subtype of the child's), and the
// child's return type must be a subtype of the parent's. Equal types
// trivially satisfy both directions.
//
// All violations are aggregated so an embedding linter can report a whole
// codebase in one pass; a nil result means the override is sound. Arity is
// assumed pre-validated by the host language, so positions beyond the
// shorter parameter list are not inspected. The registry is not mutated.
func (r *Registry) CheckOverride(parent, child MethodSignature) *typerr.Errors {
	var errs *typerr.Errors

	count := min(len(parent.Parameters), len(child.Parameters))
	for i := 0; i < count; i++ {
		widened, err := r.IsSubtype(parent.Parameters[i], child.Parameters[i])
		if err != nil {
			errs = errs.With(asTypeError(err))
			continue
		}
		if !widened {
			errs = errs.With(typerr.New(typerr.NewParameterNotWidened{
				Method:   child.String(),
				Position: i,
				Parent:   parent.Parameters[i].String(),
				Child:    child.Parameters[i].String(),
			}))
		}
	}

	if parent.Return != nil && child.Return != nil {
		narrowed, err := r.IsSubtype(child.Return, parent.Return)
		if err != nil {
			errs = errs.With(asTypeError(err))
		} else if !narrowed {
			errs = errs.With(typerr.New(typerr.NewReturnTypeNotNarrowed{
				Method: child.String(),
				Parent: parent.Return.String(),
				Child:  child.Return.String(),
			}))
		}
	}

	if errs.HasError() {
		varianceLogger.Debug("override check failed", "method", child.String(), "violations", len(errs.Errors()))
	}
	return errs
}

func asTypeError(err error) typerr.TypeError {
	if te, ok := err.(typerr.TypeError); ok {
		return te
	}
	return typerr.New(typerr.Unclassified{From: err})
}
