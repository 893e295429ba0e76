// Package manifest loads YAML descriptions of a type universe: explicit
// declarations, class-like descriptors, imports, and the override pairs an
// embedding tool wants checked. It is glue around the types engine, meant
// for the CLI and for tests; a compiler embedding the engine would feed it
// from its own front end instead.
package manifest

import (
	"os"

	"github.com/SerafimArts/algebraic-types/internal/log"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "manifest")

type Document struct {
	// Namespace is the default namespace for types and imports that do not
	// carry their own
	Namespace string       `yaml:"namespace"`
	Types     []TypeDecl   `yaml:"types" validate:"dive"`
	Classes   []ClassDecl  `yaml:"classes" validate:"dive"`
	Imports   []ImportDecl `yaml:"imports" validate:"dive"`
	Overrides []Override   `yaml:"overrides" validate:"dive"`
}

type TypeDecl struct {
	Name      string `yaml:"name" validate:"required"`
	Namespace string `yaml:"namespace"`
	Expr      Expr   `yaml:"expr" validate:"required"`
}

// Expr is the YAML surface of a type expression. Exactly one of Named,
// Union, or Inter must be set; a bare scalar is shorthand for Named.
type Expr struct {
	Named  string  `yaml:"named"`
	Union  []Expr  `yaml:"union"`
	Inter  []Expr  `yaml:"inter"`
	Refine *Refine `yaml:"refine"`
}

func (e *Expr) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Named = node.Value
		return nil
	}
	type plain Expr
	return node.Decode((*plain)(e))
}

// Refine attaches a runtime predicate to an intersection. Go is the source
// of a Go function literal of type func(interface{}) bool, compiled at load
// time.
type Refine struct {
	Name string `yaml:"name" validate:"required"`
	Go   string `yaml:"go" validate:"required"`
}

type ClassDecl struct {
	Name       string   `yaml:"name" validate:"required"`
	Kind       string   `yaml:"kind" validate:"required,oneof=class interface trait"`
	Parent     string   `yaml:"parent"`
	Implements []string `yaml:"implements"`
	Traits     []string `yaml:"traits"`
}

type ImportDecl struct {
	Source    string `yaml:"source" validate:"required"`
	Alias     string `yaml:"alias" validate:"required"`
	Namespace string `yaml:"namespace"`
}

// Override names one parent/child method pair to variance-check
type Override struct {
	Method string    `yaml:"method" validate:"required"`
	Parent Signature `yaml:"parent" validate:"required"`
	Child  Signature `yaml:"child" validate:"required"`
}

type Signature struct {
	Owner  string `yaml:"owner"`
	Params []Expr `yaml:"params"`
	Return *Expr  `yaml:"return"`
}

// Parse decodes and validates a manifest document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding manifest")
	}
	if err := validator.New().Struct(&doc); err != nil {
		return nil, errors.Wrap(err, "validating manifest")
	}
	logger.Debug("parsed manifest",
		"types", len(doc.Types), "classes", len(doc.Classes),
		"imports", len(doc.Imports), "overrides", len(doc.Overrides))
	return &doc, nil
}

// Load reads a manifest file from disk
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}
	return Parse(data)
}
