// Package main provides the CLI entrypoint for schema-generator.
//
// schema-generator derives a bean/enum schema document from Go declarations:
//   - Loads Go packages (AST + go/types) by directory scan or registration file
//   - Maps field types onto the schema's type-string grammar
//   - Resolves single-parent inheritance and polymorphic anchoring
//   - Reuses unchanged entries of the previous document by content hash
//   - Writes the document atomically, or nothing when any type is unmappable
package main

func main() {
	Execute()
}
