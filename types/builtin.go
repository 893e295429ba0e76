package types

// Names of the built-in lattice pre-loaded into every registry.
// 'mixed' is the top: supertype of everything, synonymous with no
// constraint at all.
const (
	MixedName    = "mixed"
	ObjectName   = "object"
	ScalarName   = "scalar"
	ResourceName = "resource"
	ArrayName    = "array"
	StringName   = "string"
	IntName      = "int"
	FloatName    = "float"
	BoolName     = "bool"
)

// builtinParent maps each native leaf to its direct parent. Each leaf is
// atomic: the subtype resolver never decomposes it further, it only walks
// this chain to collect the ancestor closure.
var builtinParent = map[typeName]typeName{
	ObjectName:   MixedName,
	ScalarName:   MixedName,
	ResourceName: MixedName,
	ArrayName:    MixedName,
	StringName:   ScalarName,
	IntName:      ScalarName,
	FloatName:    ScalarName,
	BoolName:     ScalarName,
}

// builtinDeclarations seeds a registry. The top has no body; every other
// leaf decomposes into a bare reference to its parent and contributes its
// own name as an atom (DeclOrigin.atomic).
func builtinDeclarations() []*TypeDeclaration {
	decls := []*TypeDeclaration{{
		Name:   MixedName,
		Origin: OriginBuiltIn,
	}}
	for _, name := range []typeName{
		ObjectName, ScalarName, ResourceName, ArrayName,
		StringName, IntName, FloatName, BoolName,
	} {
		decls = append(decls, &TypeDeclaration{
			Name:   name,
			Body:   Named(builtinParent[name]),
			Origin: OriginBuiltIn,
		})
	}
	return decls
}
