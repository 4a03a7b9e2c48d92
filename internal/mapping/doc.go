// Package mapping turns declaration type expressions into schema type strings.
//
// The target grammar is small:
//
//	int, string, bool, ...   scalars of the primitive catalogue
//	list,T                   sequences, nested freely (list,list,int)
//	map,K,V                  dictionaries and []schema.Pair[K, V]
//	T?                       optional scalars and references
//	T#k=v,flag               validator tags
//
// # Reference lookup
//
// A reference is resolved in this order:
//  1. the alias table, by full id ("schema-generator/examples/game.Vec3"),
//     short id ("game.Vec3") and bare name ("Vec3")
//  2. the polymorphic marker, which maps to the polymorphic root
//  3. a polymorphic declaration, which also maps to the root
//  4. any other record or enum, which maps to its schema name
//  5. an ignored declaration, which maps through its underlying type
//
// Anything else is unmappable. The mapper never fails: the original type name
// is returned and an unmappable-type diagnostic is recorded with suggestions
// taken from the known declaration names.
//
// # Optionality
//
// Sequences and dictionaries never carry the "?" suffix. An empty container
// already encodes absence, so
//
//	Drops []DropItem `json:"drops,omitempty"`
//
// maps to "list,DropItem" while a *float32 field maps to "float?".
package mapping
