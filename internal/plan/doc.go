// Package plan runs one schema compilation from input to written document.
//
// A run is a single linear pass:
//
//  1. check that the input exists
//  2. index the previous document (unless forced)
//  3. extract declarations, by directory scan or from a registration file
//  4. for each emitted declaration, reuse the cached block when its hash is
//     unchanged, otherwise map its fields, resolve its parent and render it
//  5. fail without writing if any error diagnostic was recorded
//  6. replace the output document atomically
//
// Nothing is written before the last step, so an interrupted or failed run
// leaves the previous document as it was.
package plan
