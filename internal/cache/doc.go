// Package cache reads the previous schema document back into an index of
// reusable entries.
//
// Every block preceded by a hash marker becomes an entry keyed by its schema
// name. When the declaration of the same name hashes to the same value in the
// next run, its text is reused byte for byte and the declaration is not
// mapped again.
//
// A malformed document is not an error: the index is empty, every
// declaration is regenerated and a cache-corrupt note is recorded.
package cache
