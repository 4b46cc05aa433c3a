// Package store provides the indexed in-memory record store.
//
// A Store owns:
//   - Primary storage: ID -> Record, the authoritative copy of every live record
//   - Number index: exact numeric value -> IDs
//   - TextA / TextB indexes: every substring of at least MinIndexSize bytes -> IDs
//
// # Invariants
//
// INV-1: Unique IDs
//   - The first Insert of an ID wins; later inserts with the same ID are no-ops
//
// INV-2: Index/storage consistency
//   - An ID is in the number index under v iff its live record has Number == v
//   - An ID is in a text index under k iff its live record's text contains k
//     and that text is at least MinIndexSize bytes long
//
// INV-3: Delete mirrors insert
//   - Both paths derive partial keys through index.PartialKeys, so deleting a
//     record retracts exactly what inserting it added
//
// # Query Dispatch
//
//	column0 (ID)      direct lookup in primary storage
//	column2 (Number)  number index
//	column1/column3   text index when len(value) >= MinIndexSize, full scan otherwise
//
// Text indexes hold no key shorter than MinIndexSize, so short text queries
// are always answered by a scan.
//
// A Store is not safe for concurrent use. Wrap it with NewSynchronized when
// several goroutines share one store.
package store
