package types

// DeclOrigin records where a registry entry came from
type DeclOrigin uint8

const (
	_ DeclOrigin = iota
	// OriginExplicit is a user-written 'type' declaration
	OriginExplicit
	OriginImplicitFromClass
	OriginImplicitFromInterface
	OriginImplicitFromTraitUse
	OriginBuiltIn
)

func (o DeclOrigin) String() string {
	switch o {
	case OriginExplicit:
		return "explicit"
	case OriginImplicitFromClass:
		return "implicit (class)"
	case OriginImplicitFromInterface:
		return "implicit (interface)"
	case OriginImplicitFromTraitUse:
		return "implicit (trait use)"
	case OriginBuiltIn:
		return "built-in"
	default:
		return "invalid"
	}
}

// atomic reports whether declarations of this origin contribute their own
// name as an atomic leaf during canonicalization. Explicit aliases are
// transparent; everything else is a tag in its own right.
func (o DeclOrigin) atomic() bool {
	return o != OriginExplicit
}

// TypeDeclaration binds a fully qualified name to a type expression.
// Declarations are created once during registry construction and are
// immutable for the lifetime of the snapshot.
type TypeDeclaration struct {
	// Name is fully qualified
	Name      typeName
	Namespace string
	// Body may be nil only for the top built-in, which has no further
	// decomposition
	Body   TypeExpr
	Origin DeclOrigin
}

// ClassLikeKind distinguishes the declaration units a loader can supply
type ClassLikeKind uint8

const (
	_ ClassLikeKind = iota
	KindClass
	KindInterface
	KindTrait
)

func (k ClassLikeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindTrait:
		return "trait"
	default:
		return "invalid"
	}
}

func (k ClassLikeKind) origin() DeclOrigin {
	switch k {
	case KindInterface:
		return OriginImplicitFromInterface
	case KindTrait:
		return OriginImplicitFromTraitUse
	default:
		return OriginImplicitFromClass
	}
}

// ClassLikeDescriptor is supplied by the external declaration loader, one
// per class/interface/trait unit. All names are assumed fully qualified by
// the time the engine sees them.
type ClassLikeDescriptor struct {
	Name       typeName
	Kind       ClassLikeKind
	Parent     typeName // "" when the unit has no parent
	Implements []typeName
	Traits     []typeName
}

func (d ClassLikeDescriptor) equal(other ClassLikeDescriptor) bool {
	if d.Name != other.Name || d.Kind != other.Kind || d.Parent != other.Parent {
		return false
	}
	if len(d.Implements) != len(other.Implements) || len(d.Traits) != len(other.Traits) {
		return false
	}
	for i, name := range d.Implements {
		if other.Implements[i] != name {
			return false
		}
	}
	for i, name := range d.Traits {
		if other.Traits[i] != name {
			return false
		}
	}
	return true
}

// synthesize computes the implicit type of a class-like unit: the
// union-free conjunction of its parent, interfaces, traits, and the
// universal object leaf
func (d ClassLikeDescriptor) synthesize() TypeExpr {
	terms := make([]TypeExpr, 0, 2+len(d.Implements)+len(d.Traits))
	if d.Parent != "" {
		terms = append(terms, Named(d.Parent))
	}
	for _, iface := range d.Implements {
		terms = append(terms, Named(iface))
	}
	for _, trait := range d.Traits {
		terms = append(terms, Named(trait))
	}
	terms = append(terms, Named(ObjectName))
	return IntersectionOf(terms...)
}

// MethodSignature is the input to override checking; it is never persisted
type MethodSignature struct {
	Owner      typeName
	Name       string
	Parameters []TypeExpr
	Return     TypeExpr
}

func (s MethodSignature) String() string {
	if s.Owner == "" {
		return s.Name
	}
	return s.Owner + "::" + s.Name
}
