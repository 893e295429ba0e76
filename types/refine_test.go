package types

import (
	"testing"

	"github.com/SerafimArts/algebraic-types/typerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userValue struct{}

func (userValue) ClassName() string { return `App\User` }

func TestClassifiesNativeValues(t *testing.T) {
	reg := testBuilder(t).Snapshot()

	testCases := []struct {
		name     string
		value    any
		expr     TypeExpr
		expected bool
	}{
		{"string is string", "hello", Named("string"), true},
		{"string is scalar", "hello", Named(ScalarName), true},
		{"string is not int", "hello", Named("int"), false},
		{"int is scalar", 42, Named(ScalarName), true},
		{"float matches numeric union", 3.5, Named(`App\Numeric`), true},
		{"bool does not match numeric union", true, Named(`App\Numeric`), false},
		{"slice is array", []any{1, 2}, Named(ArrayName), true},
		{"map is array", map[string]any{}, Named(ArrayName), true},
		{"anything is mixed", 42, Named(MixedName), true},
		{"nil is only mixed", nil, Named(MixedName), true},
		{"nil is not string", nil, Named("string"), false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := reg.Classifies(testCase.value, testCase.expr)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
		})
	}
}

func TestClassifiesInstances(t *testing.T) {
	reg := testBuilder(t).Snapshot()

	for _, target := range []string{`App\User`, `App\Model`, `App\Jsonable`, ObjectName} {
		result, err := reg.Classifies(userValue{}, Named(target))
		require.NoError(t, err)
		assert.True(t, result, "user instance must classify as %s", target)
	}

	result, err := reg.Classifies(userValue{}, Named("string"))
	require.NoError(t, err)
	assert.False(t, result)
}

func TestClassifiesRefinedIntersection(t *testing.T) {
	reg := testBuilder(t).Snapshot()
	nonEmpty := Refined(&Refinement{
		Name: "nonEmpty",
		Check: func(value any) (bool, error) {
			s, ok := value.(string)
			return ok && len(s) > 0, nil
		},
	}, Named("string"))

	result, err := reg.Classifies("hello", nonEmpty)
	require.NoError(t, err)
	assert.True(t, result)

	result, err = reg.Classifies("", nonEmpty)
	require.NoError(t, err)
	assert.False(t, result)

	// structural mismatch short-circuits before the predicate runs
	result, err = reg.Classifies(42, nonEmpty)
	require.NoError(t, err)
	assert.False(t, result)
}

func TestClassifiesUnionTriesEveryDisjunct(t *testing.T) {
	reg := testBuilder(t).Snapshot()
	expr := UnionOf(
		Refined(&Refinement{
			Name:  "never",
			Check: func(value any) (bool, error) { return false, nil },
		}, Named("int")),
		Named("int"),
	)

	result, err := reg.Classifies(7, expr)
	require.NoError(t, err)
	assert.True(t, result, "the unrefined disjunct must match")
}

func TestClassifiesSurfacesPredicateErrors(t *testing.T) {
	reg := testBuilder(t).Snapshot()

	erroring := Refined(&Refinement{
		Name:  "boom",
		Check: func(value any) (bool, error) { return false, assert.AnError },
	}, Named("int"))
	result, err := reg.Classifies(7, erroring)
	assert.False(t, result)
	require.Error(t, err)
	assert.Equal(t, typerr.RefinementPredicateFailed, typerr.CodeOf(err))

	panicking := Refined(&Refinement{
		Name:  "panic",
		Check: func(value any) (bool, error) { panic("host code misbehaved") },
	}, Named("int"))
	result, err = reg.Classifies(7, panicking)
	assert.False(t, result)
	require.Error(t, err)
	assert.Equal(t, typerr.RefinementPredicateFailed, typerr.CodeOf(err))
}
