// Package baseline provides unindexed reference collections with the same
// Filter contract as the indexed store.
//
//   - Collection: a plain slice answered by a full scan on every query
//   - SQLite: an unindexed table in an in-memory SQLite database
//
// Both exist to time and cross-check the store; neither maintains indexes.
package baseline
