package manifest

import (
	"github.com/SerafimArts/algebraic-types/typerr"
	"github.com/SerafimArts/algebraic-types/types"
	"github.com/pkg/errors"
)

// Build declares everything in the document into a fresh registry and
// returns an immutable snapshot. Declaration failures abort only the
// offending declaration; they are aggregated and the rest of the document
// still loads, so a tool can report every problem in one pass.
func (d *Document) Build() (*types.Registry, *typerr.Errors) {
	builder := types.NewBuilder()
	var errs *typerr.Errors

	for _, cls := range d.Classes {
		if err := builder.DeclareImplicit(cls.descriptor()); err != nil {
			errs = errs.With(asTypeError(err))
		}
	}
	for _, decl := range d.Types {
		expr, err := decl.Expr.compile()
		if err != nil {
			errs = errs.With(asTypeError(err))
			continue
		}
		namespace := decl.Namespace
		if namespace == "" {
			namespace = d.Namespace
		}
		if err := builder.Declare(decl.Name, namespace, expr, types.OriginExplicit); err != nil {
			errs = errs.With(asTypeError(err))
		}
	}
	// imports go last so aliases can reference anything declared above
	for _, imp := range d.Imports {
		namespace := imp.Namespace
		if namespace == "" {
			namespace = d.Namespace
		}
		if err := builder.ImportAlias(imp.Source, imp.Alias, namespace); err != nil {
			errs = errs.With(asTypeError(err))
		}
	}

	return builder.Snapshot(), errs
}

// Check runs every override pair in the document against the registry,
// aggregating all variance violations
func (d *Document) Check(reg *types.Registry) *typerr.Errors {
	var errs *typerr.Errors
	for _, ov := range d.Overrides {
		parent, err := ov.Parent.compile(ov.Method)
		if err != nil {
			errs = errs.With(asTypeError(err))
			continue
		}
		child, err := ov.Child.compile(ov.Method)
		if err != nil {
			errs = errs.With(asTypeError(err))
			continue
		}
		errs = errs.Merge(reg.CheckOverride(parent, child))
	}
	return errs
}

func (c ClassDecl) descriptor() types.ClassLikeDescriptor {
	kind := types.KindClass
	switch c.Kind {
	case "interface":
		kind = types.KindInterface
	case "trait":
		kind = types.KindTrait
	}
	return types.ClassLikeDescriptor{
		Name:       c.Name,
		Kind:       kind,
		Parent:     c.Parent,
		Implements: c.Implements,
		Traits:     c.Traits,
	}
}

// compile turns the YAML surface form into an engine expression
func (e Expr) compile() (types.TypeExpr, error) {
	switch {
	case e.Named != "":
		if len(e.Union) > 0 || len(e.Inter) > 0 || e.Refine != nil {
			return nil, errors.Errorf("expression %q must not combine 'named' with other forms", e.Named)
		}
		return types.Named(e.Named), nil
	case len(e.Union) > 0:
		if len(e.Inter) > 0 || e.Refine != nil {
			return nil, errors.New("a union expression cannot carry 'inter' or 'refine'")
		}
		terms, err := compileAll(e.Union)
		if err != nil {
			return nil, err
		}
		return types.UnionOf(terms...), nil
	case len(e.Inter) > 0:
		terms, err := compileAll(e.Inter)
		if err != nil {
			return nil, err
		}
		if e.Refine == nil {
			return types.IntersectionOf(terms...), nil
		}
		refinement, err := e.Refine.compile()
		if err != nil {
			return nil, err
		}
		return types.Refined(refinement, terms...), nil
	default:
		return nil, errors.New("empty type expression: want one of 'named', 'union', 'inter'")
	}
}

func compileAll(exprs []Expr) ([]types.TypeExpr, error) {
	terms := make([]types.TypeExpr, len(exprs))
	for i, e := range exprs {
		term, err := e.compile()
		if err != nil {
			return nil, err
		}
		terms[i] = term
	}
	return terms, nil
}

func (s Signature) compile(method string) (types.MethodSignature, error) {
	sig := types.MethodSignature{Owner: s.Owner, Name: method}
	for i, p := range s.Params {
		expr, err := p.compile()
		if err != nil {
			return sig, errors.Wrapf(err, "parameter %d of %s", i, method)
		}
		sig.Parameters = append(sig.Parameters, expr)
	}
	if s.Return != nil {
		expr, err := s.Return.compile()
		if err != nil {
			return sig, errors.Wrapf(err, "return type of %s", method)
		}
		sig.Return = expr
	}
	return sig, nil
}

func asTypeError(err error) typerr.TypeError {
	if te, ok := err.(typerr.TypeError); ok {
		return te
	}
	return typerr.New(typerr.Unclassified{From: err})
}
