// Package hierarchy picks the single parent of every emitted bean.
//
// A struct with an explicit base (its first embedded record) extends that
// base, whatever interfaces it implements. Otherwise a struct implementing
// exactly one interface record extends it. Implementing several leaves the
// bean without a parent, and the ambiguity is reported according to the
// configured Policy. Interfaces extend the one interface they embed, if any.
//
// Polymorphic structs that end up without a parent are anchored to the
// polymorphic root so the consumer can dispatch on them. Interfaces are never
// anchored.
package hierarchy
