// Package match provides identifier normalization and fuzzy name matching.
//
// The extractor uses it to derive lowerCamel schema field names from Go
// identifiers; the diagnostics report uses it to suggest declarations whose
// names are close to an unresolvable type name.
package match
