// Package diagnostic provides structured warnings, errors, and
// the grouped failure report of the schema generator.
//
// Key capabilities:
//   - Unmappable type errors (declaration, field, type name)
//   - Ambiguous parent and duplicate declaration reports
//   - Cache corruption notes
//   - "Did you mean" suggestions for misspelt type names
package diagnostic
