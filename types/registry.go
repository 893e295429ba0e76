package types

import (
	"iter"
	"log/slog"
	"strings"
	"sync"

	"github.com/SerafimArts/algebraic-types/internal/log"
	"github.com/SerafimArts/algebraic-types/typerr"
	"github.com/benbjohnson/immutable"
)

var logger = log.DefaultLogger.With("section", "registry")

// NamespaceSeparator splits qualified names into namespace segments
const NamespaceSeparator = `\`

// Qualify joins a namespace and a relative name into a qualified name
func Qualify(namespace, name string) typeName {
	if namespace == "" {
		return name
	}
	return namespace + NamespaceSeparator + name
}

// NamespaceOf returns the namespace prefix of a qualified name, or "" for
// top-level names
func NamespaceOf(name typeName) string {
	idx := strings.LastIndex(name, NamespaceSeparator)
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// entry is a single registry slot: either a canonical declaration, or an
// alias referencing another entry. Aliases are references, never copies:
// resolving through one reaches the same canonical declaration.
type entry struct {
	decl *TypeDeclaration // nil for aliases

	aliasTarget typeName // name the alias points at, as given at import time
	aliasNS     string   // namespace the alias target is resolved from
}

// Builder accumulates declarations and produces immutable Registry
// snapshots. It is the only mutable piece of the engine and must not be
// used concurrently with itself; snapshots taken from it are safe to query
// in parallel.
type Builder struct {
	entries     map[typeName]entry
	descriptors map[typeName]ClassLikeDescriptor
}

// NewBuilder returns a Builder pre-seeded with the built-in hierarchy
func NewBuilder() *Builder {
	seed := builtinDeclarations()
	b := &Builder{
		entries:     make(map[typeName]entry, len(seed)),
		descriptors: make(map[typeName]ClassLikeDescriptor),
	}
	for _, decl := range seed {
		b.entries[decl.Name] = entry{decl: decl}
	}
	return b
}

// Declare registers an explicit type declaration under
// namespace\name. The first declaration of a name wins: redeclaring it
// fails with DuplicateDeclaration and leaves the original intact.
func (b *Builder) Declare(name, namespace string, body TypeExpr, origin DeclOrigin) error {
	fq := Qualify(namespace, name)
	if _, taken := b.entries[fq]; taken {
		return typerr.New(typerr.NewDuplicateDeclaration{Name: name, Namespace: namespace})
	}
	b.entries[fq] = entry{decl: &TypeDeclaration{
		Name:      fq,
		Namespace: namespace,
		Body:      body,
		Origin:    origin,
	}}
	logger.Debug("declared type", "name", fq, "origin", origin.String())
	return nil
}

// DeclareImplicit synthesizes and registers the type implied by a
// class-like unit. Re-declaring from an unchanged descriptor is a no-op;
// a conflicting one fails with DuplicateDeclaration.
func (b *Builder) DeclareImplicit(desc ClassLikeDescriptor) error {
	if prev, seen := b.descriptors[desc.Name]; seen {
		if prev.equal(desc) {
			return nil
		}
		return typerr.New(typerr.NewDuplicateDeclaration{Name: desc.Name})
	}
	namespace := NamespaceOf(desc.Name)
	if _, taken := b.entries[desc.Name]; taken {
		return typerr.New(typerr.NewDuplicateDeclaration{Name: desc.Name, Namespace: namespace})
	}
	b.entries[desc.Name] = entry{decl: &TypeDeclaration{
		Name:      desc.Name,
		Namespace: namespace,
		Body:      desc.synthesize(),
		Origin:    desc.Kind.origin(),
	}}
	b.descriptors[desc.Name] = desc
	logger.Debug("declared implicit type", "name", desc.Name, "kind", desc.Kind.String())
	return nil
}

// ImportAlias binds intoNamespace\alias as an additional lookup entry for
// sourceName. The source must already resolve.
func (b *Builder) ImportAlias(sourceName, alias, intoNamespace string) error {
	if _, _, err := resolveChain(b.lookup, sourceName, intoNamespace); err != nil {
		return err
	}
	fq := Qualify(intoNamespace, alias)
	if _, taken := b.entries[fq]; taken {
		return typerr.New(typerr.NewDuplicateDeclaration{Name: alias, Namespace: intoNamespace})
	}
	b.entries[fq] = entry{aliasTarget: sourceName, aliasNS: intoNamespace}
	logger.Debug("imported alias", "alias", fq, "source", sourceName)
	return nil
}

func (b *Builder) lookup(name typeName) (entry, bool) {
	e, ok := b.entries[name]
	return e, ok
}

// Snapshot freezes the current declarations into an immutable Registry.
// Further Builder mutation does not affect snapshots already taken.
func (b *Builder) Snapshot() *Registry {
	mb := immutable.NewMapBuilder[typeName, entry](nil)
	for name, e := range b.entries {
		mb.Set(name, e)
	}
	return &Registry{entries: mb.Map()}
}

// Registry is an immutable, namespace-aware snapshot of declarations.
// All query methods are pure and safe for concurrent use; rebuilding is
// copy-on-write via a new Builder and an atomic swap by the embedder.
type Registry struct {
	entries *immutable.Map[typeName, entry]

	// expandCache memoizes canonical expansions per qualified name.
	// Concurrent readers may race to fill the same slot; both compute the
	// same value, so the duplicate work is harmless.
	expandCache sync.Map
}

// Resolve looks a name up: first as fully qualified, then relative to
// fromNamespace, then through alias chains. Alias cycles fail with
// CyclicAlias; names absent everywhere fail with UnknownType.
func (r *Registry) Resolve(name string, fromNamespace string) (*TypeDeclaration, error) {
	decl, _, err := resolveChain(r.lookup, name, fromNamespace)
	return decl, err
}

func (r *Registry) lookup(name typeName) (entry, bool) {
	return r.entries.Get(name)
}

// Declarations iterates every canonical declaration in the snapshot,
// built-ins included. Aliases are skipped since they are mere references.
func (r *Registry) Declarations() iter.Seq[*TypeDeclaration] {
	return func(yield func(*TypeDeclaration) bool) {
		itr := r.entries.Iterator()
		for !itr.Done() {
			_, e, _ := itr.Next()
			if e.decl == nil {
				continue
			}
			if !yield(e.decl) {
				return
			}
		}
	}
}

func (r *Registry) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("declarations", r.entries.Len()))
}

// resolveChain is the single lookup routine shared by Builder and Registry.
// It returns the canonical declaration together with its qualified name.
func resolveChain(lookup func(typeName) (entry, bool), name, fromNamespace string) (*TypeDeclaration, typeName, error) {
	e, fq, ok := findEntry(lookup, name, fromNamespace)
	if !ok {
		return nil, "", typerr.New(typerr.NewUnknownType{Name: name, Namespace: fromNamespace})
	}
	visited := []typeName{fq}
	for e.decl == nil {
		next, nextFq, ok := findEntry(lookup, e.aliasTarget, e.aliasNS)
		if !ok {
			return nil, "", typerr.New(typerr.NewUnknownType{Name: e.aliasTarget, Namespace: e.aliasNS})
		}
		for _, seen := range visited {
			if seen == nextFq {
				return nil, "", typerr.New(typerr.NewCyclicAlias{Chain: append(visited, nextFq)})
			}
		}
		visited = append(visited, nextFq)
		e = next
	}
	return e.decl, visited[len(visited)-1], nil
}

func findEntry(lookup func(typeName) (entry, bool), name, fromNamespace string) (entry, typeName, bool) {
	if e, ok := lookup(name); ok {
		return e, name, true
	}
	if fromNamespace != "" {
		fq := Qualify(fromNamespace, name)
		if e, ok := lookup(fq); ok {
			return e, fq, true
		}
	}
	return entry{}, "", false
}
