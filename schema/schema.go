// Package schema holds the markers authors use in their data model.
// None of them carries behavior; the generator recognises them statically.
package schema

// Variant marks a type as a polymorphic variant. Implementations without a
// parent of their own are anchored to the schema's polymorphic root.
type Variant interface {
	SchemaVariant()
}

// Readonly wraps a value that consumers must not modify. The wrapper does
// not appear in the schema.
type Readonly[T any] struct {
	Value T
}

// Lazy wraps a value resolved on first use. The wrapper does not appear in
// the schema.
type Lazy[T any] struct {
	Value T
}

// Pair is one entry of an ordered dictionary; []Pair[K, V] is emitted as a map.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// OneOf2 holds one of two alternatives. The schema keeps the first one only.
type OneOf2[A, B any] struct {
	First  *A
	Second *B
}

// OneOf3 holds one of three alternatives.
type OneOf3[A, B, C any] struct {
	First  *A
	Second *B
	Third  *C
}

// OneOf4 holds one of four alternatives.
type OneOf4[A, B, C, D any] struct {
	First  *A
	Second *B
	Third  *C
	Fourth *D
}

// Register lists T in a registration file, optionally under an external
// schema name. It does nothing at run time.
//
//	func init() {
//		schema.Register[Monster]()
//		schema.Register[items.DropItem]("Drop")
//	}
func Register[T any](name ...string) {
	_ = name
}
