package typerr

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	DuplicateDeclaration
	UnknownType
	UnresolvedReference
	CyclicAlias
	CyclicDefinition
	ParameterNotWidened
	ReturnTypeNotNarrowed
	RefinementPredicateFailed
)

// TypeError is a recoverable, reported diagnostic. None of these are ever
// fatal: registry construction errors abort only the offending declaration,
// and resolution errors are per-query.
type TypeError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) TypeError
	getStack() []byte
}

func FormatWithCode(e TypeError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E TypeError](err E) TypeError {
	return err.withStack(debug.Stack())
}

// CodeOf extracts the diagnostic code from err, or None for foreign errors
func CodeOf(err error) ErrCode {
	if te, ok := err.(TypeError); ok {
		return te.Code()
	}
	return None
}

type Unclassified struct {
	From  error
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewDuplicateDeclaration struct {
	Name      string
	Namespace string
	stack     []byte
}

func (e NewDuplicateDeclaration) Code() ErrCode { return DuplicateDeclaration }
func (e NewDuplicateDeclaration) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("type '%s' is already declared", e.Name)
	}
	return fmt.Sprintf("type '%s' is already declared in namespace '%s'", e.Name, e.Namespace)
}
func (e NewDuplicateDeclaration) getStack() []byte { return e.stack }
func (e NewDuplicateDeclaration) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewUnknownType struct {
	Name      string
	Namespace string
	stack     []byte
}

func (e NewUnknownType) Code() ErrCode { return UnknownType }
func (e NewUnknownType) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("type '%s' is not declared", e.Name)
	}
	return fmt.Sprintf("type '%s' is not declared (looked up from namespace '%s')", e.Name, e.Namespace)
}
func (e NewUnknownType) getStack() []byte { return e.stack }
func (e NewUnknownType) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewUnresolvedReference struct {
	Name  string
	stack []byte
}

func (e NewUnresolvedReference) Code() ErrCode { return UnresolvedReference }
func (e NewUnresolvedReference) Error() string {
	return fmt.Sprintf("reference to '%s' cannot be resolved", e.Name)
}
func (e NewUnresolvedReference) getStack() []byte { return e.stack }
func (e NewUnresolvedReference) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewCyclicAlias struct {
	Chain []string
	stack []byte
}

func (e NewCyclicAlias) Code() ErrCode { return CyclicAlias }
func (e NewCyclicAlias) Error() string {
	return fmt.Sprintf("alias chain forms a cycle: %s", strings.Join(e.Chain, " -> "))
}
func (e NewCyclicAlias) getStack() []byte { return e.stack }
func (e NewCyclicAlias) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewCyclicDefinition struct {
	Name  string
	stack []byte
}

func (e NewCyclicDefinition) Code() ErrCode { return CyclicDefinition }
func (e NewCyclicDefinition) Error() string {
	return fmt.Sprintf("type '%s' refers to itself without a grounding alternative", e.Name)
}
func (e NewCyclicDefinition) getStack() []byte { return e.stack }
func (e NewCyclicDefinition) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewParameterNotWidened struct {
	Method   string
	Position int
	Parent   string
	Child    string
	stack    []byte
}

func (e NewParameterNotWidened) Code() ErrCode { return ParameterNotWidened }
func (e NewParameterNotWidened) Error() string {
	return fmt.Sprintf(
		"parameter %d of '%s' must accept at least '%s', but '%s' is not a supertype of it",
		e.Position, e.Method, e.Parent, e.Child,
	)
}
func (e NewParameterNotWidened) getStack() []byte { return e.stack }
func (e NewParameterNotWidened) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewReturnTypeNotNarrowed struct {
	Method string
	Parent string
	Child  string
	stack  []byte
}

func (e NewReturnTypeNotNarrowed) Code() ErrCode { return ReturnTypeNotNarrowed }
func (e NewReturnTypeNotNarrowed) Error() string {
	return fmt.Sprintf(
		"return type '%s' of '%s' must be a subtype of the overridden return type '%s'",
		e.Child, e.Method, e.Parent,
	)
}
func (e NewReturnTypeNotNarrowed) getStack() []byte { return e.stack }
func (e NewReturnTypeNotNarrowed) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewRefinementPredicateFailed struct {
	TypeName string
	Cause    error
	stack    []byte
}

func (e NewRefinementPredicateFailed) Code() ErrCode { return RefinementPredicateFailed }
func (e NewRefinementPredicateFailed) Error() string {
	return fmt.Sprintf("refinement predicate of '%s' failed: %v", e.TypeName, e.Cause)
}
func (e NewRefinementPredicateFailed) Unwrap() error    { return e.Cause }
func (e NewRefinementPredicateFailed) getStack() []byte { return e.stack }
func (e NewRefinementPredicateFailed) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}
