package manifest

import (
	"testing"

	"github.com/SerafimArts/algebraic-types/typerr"
	"github.com/SerafimArts/algebraic-types/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
namespace: App
types:
  - name: Numeric
    expr:
      union: [int, float]
  - name: Id
    expr:
      union:
        - int
        - named: string
classes:
  - name: App\Model
    kind: class
  - name: App\Jsonable
    kind: interface
  - name: App\User
    kind: class
    parent: App\Model
    implements: [App\Jsonable]
imports:
  - source: App\Numeric
    alias: Num
    namespace: Lib
overrides:
  - method: example
    parent:
      owner: App\Model
      params: [string]
      return: scalar
    child:
      owner: App\User
      params: [mixed]
      return: string
`

func TestParseAndBuild(t *testing.T) {
	doc, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	assert.Equal(t, "App", doc.Namespace)

	reg, errs := doc.Build()
	require.False(t, errs.HasError(), "build errors: %v", errs.Errors())

	// scalar YAML nodes are shorthand for named references
	ok, err := reg.IsSubtype(types.Named("int"), types.Named(`App\Id`))
	require.NoError(t, err)
	assert.True(t, ok)

	// aliases resolve to the same canonical declaration
	canonical, err := reg.Resolve("Numeric", "App")
	require.NoError(t, err)
	aliased, err := reg.Resolve("Num", "Lib")
	require.NoError(t, err)
	assert.Same(t, canonical, aliased)

	ok, err = reg.IsSubtype(types.Named(`App\User`), types.Named(`App\Jsonable`))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPassesForSoundOverrides(t *testing.T) {
	doc, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	reg, errs := doc.Build()
	require.False(t, errs.HasError())

	errs = doc.Check(reg)
	assert.False(t, errs.HasError(), "unexpected violations: %v", errs.Errors())
}

func TestCheckReportsViolations(t *testing.T) {
	doc, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	doc.Overrides = append(doc.Overrides, Override{
		Method: "broken",
		Parent: Signature{
			Owner:  `App\Model`,
			Params: []Expr{{Named: "string"}},
			Return: &Expr{Named: "scalar"},
		},
		Child: Signature{
			Owner:  `App\User`,
			Params: []Expr{{Named: "int"}},
			Return: &Expr{Named: "mixed"},
		},
	})

	reg, errs := doc.Build()
	require.False(t, errs.HasError())
	errs = doc.Check(reg)
	require.True(t, errs.HasError())
	assert.True(t, errs.HasCode(typerr.ParameterNotWidened))
	assert.True(t, errs.HasCode(typerr.ReturnTypeNotNarrowed))
}

func TestBuildAggregatesDeclarationErrors(t *testing.T) {
	doc, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	doc.Types = append(doc.Types, TypeDecl{
		Name: "Numeric", // duplicate
		Expr: Expr{Named: "int"},
	})
	doc.Imports = append(doc.Imports, ImportDecl{
		Source: `App\Missing`,
		Alias:  "M",
	})

	reg, errs := doc.Build()
	require.True(t, errs.HasError())
	assert.True(t, errs.HasCode(typerr.DuplicateDeclaration))
	assert.True(t, errs.HasCode(typerr.UnknownType))

	// the rest of the document still loaded
	_, err = reg.Resolve(`App\User`, "")
	assert.NoError(t, err)
}

func TestRefinementPredicateCompiles(t *testing.T) {
	const withPredicate = `
namespace: App
types:
  - name: NonEmpty
    expr:
      inter: [string]
      refine:
        name: nonEmpty
        go: |
          func(v interface{}) bool {
            s, ok := v.(string)
            return ok && len(s) > 0
          }
`
	doc, err := Parse([]byte(withPredicate))
	require.NoError(t, err)
	reg, errs := doc.Build()
	require.False(t, errs.HasError(), "build errors: %v", errs.Errors())

	decl, err := reg.Resolve("NonEmpty", "App")
	require.NoError(t, err)

	ok, err := reg.Classifies("hello", decl.Body)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.Classifies("", decl.Body)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"type without a name", "types:\n  - expr: int\n"},
		{"class with a bad kind", "classes:\n  - name: Foo\n    kind: enum\n"},
		{"import without an alias", "imports:\n  - source: Foo\n"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := Parse([]byte(testCase.yaml))
			assert.Error(t, err)
		})
	}
}

func TestCompileRejectsAmbiguousExprs(t *testing.T) {
	_, err := Expr{}.compile()
	assert.Error(t, err)

	_, err = Expr{Named: "int", Union: []Expr{{Named: "string"}}}.compile()
	assert.Error(t, err)
}
