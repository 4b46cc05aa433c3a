// Package index provides the derived index structures of the store.
//
//   - IDSet: a compressed set of record IDs (roaring bitmap)
//   - Exact: numeric value -> IDSet
//   - Partial: every substring of at least MinSize bytes -> IDSet
//
// # Key Symmetry
//
// Partial derives its keys through PartialKeys on both Add and Remove. The
// two paths must enumerate the identical key set for a given text, or IDs
// leak into (or go missing from) the index after a delete. No other code
// may compute partial keys.
//
// None of the types here are safe for concurrent use.
package index
