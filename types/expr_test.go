package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionNormalization(t *testing.T) {
	testCases := []struct {
		name     string
		built    TypeExpr
		expected TypeExpr
	}{{
		name:     "nested unions flatten",
		built:    UnionOf(Named("int"), UnionOf(Named("float"), Named("string"))),
		expected: UnionOf(Named("int"), Named("float"), Named("string")),
	}, {
		name:     "operand order is canonical",
		built:    UnionOf(Named("float"), Named("int")),
		expected: UnionOf(Named("int"), Named("float")),
	}, {
		name:     "duplicates collapse to the operand",
		built:    UnionOf(Named("int"), Named("int")),
		expected: Named("int"),
	}, {
		name:     "single operand collapses",
		built:    UnionOf(Named("bool")),
		expected: Named("bool"),
	}}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.True(t, Equivalent(testCase.built, testCase.expected),
				"expected %s to be equivalent to %s", testCase.built, testCase.expected)
		})
	}
}

func TestIntersectionNormalization(t *testing.T) {
	assert.True(t, Equivalent(
		IntersectionOf(Named("array"), IntersectionOf(Named("object"), Named("scalar"))),
		IntersectionOf(Named("array"), Named("object"), Named("scalar")),
	))
	assert.True(t, Equivalent(
		IntersectionOf(Named("array")),
		Named("array"),
	))
}

func TestUnionAndIntersectionHashesDiffer(t *testing.T) {
	union := UnionOf(Named("int"), Named("string"))
	inter := IntersectionOf(Named("int"), Named("string"))
	assert.False(t, Equivalent(union, inter))
}

func TestRefinementIsStructurallyInvisible(t *testing.T) {
	nonEmpty := &Refinement{
		Name:  "nonEmpty",
		Check: func(value any) (bool, error) { return value != "", nil },
	}
	plain := IntersectionOf(Named("string"), Named("scalar"))
	refined := Refined(nonEmpty, Named("string"), Named("scalar"))

	assert.True(t, Equivalent(plain, refined))
}

func TestRefinedSingleOperandKeepsItsNode(t *testing.T) {
	nonEmpty := &Refinement{
		Name:  "nonEmpty",
		Check: func(value any) (bool, error) { return value != "", nil },
	}
	refined := Refined(nonEmpty, Named("string"))

	// collapsing would drop the predicate, so the node survives
	_, isIntersection := refined.(intersectionType)
	assert.True(t, isIntersection)
	assert.Equal(t, "(string)<nonEmpty>", refined.String())
}
