// Package record defines the fixed four-column record schema shared by the
// indexed store, the naive baselines and the check/bench harnesses.
//
// A Record is a plain value:
//
//	column0  ID      uint32  unique primary key
//	column1  TextA   string  short text, partial-substring indexed
//	column2  Number  int64   exact-match indexed
//	column3  TextB   string  longer text, partial-substring indexed
//
// Columns are addressed through the closed Column enumeration rather than by
// name. ParseColumn maps the external names (column0..column3 and the
// id/text_a/number/text_b aliases) onto it; unknown names map to
// ColumnUnknown, which every collection answers with an empty result.
//
// # Canonical Form
//
// MarshalCanonical produces RFC 8785 style JSON (UTF-16 key order, NFC
// strings, no HTML escaping) so golden snapshots and result digests are
// byte-stable. Digest hashes a result set independent of its order.
package record
