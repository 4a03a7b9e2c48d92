// Package analyze provides package loading and declaration extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build the declaration model the schema is derived from.
//
// Key types:
//   - TypeID: package import path + type name
//   - Declaration: a record (struct or interface), enum or ignored named type
//   - Field: schema name, TypeExpr, optionality, comment and validator tags
//   - TypeExpr: recursive, source-independent type expression
//   - DeclarationSet: the ordered declarations of one run
//
// Declarations come from a directory scan (ExtractDir) or from a registration
// file (ExtractRegistered) whose qualified names are located by a Resolver.
package analyze
