package baseline

import (
	"strings"

	"github.com/roach88/idxstore/internal/record"
	"github.com/roach88/idxstore/internal/store"
)

// Collection is a sequential, unindexed record container.
//
// Unlike the store, Insert does not check for duplicate IDs; a collection
// fed duplicate IDs keeps all of them and DeleteByID removes all of them.
type Collection struct {
	records []record.Record
}

// NewCollection returns an empty collection with room for capacity records.
func NewCollection(capacity int) *Collection {
	return &Collection{records: make([]record.Record, 0, capacity)}
}

// Insert appends rec. It always returns true.
func (c *Collection) Insert(rec record.Record) bool {
	c.records = append(c.records, rec)
	return true
}

// DeleteByID removes every record with the given ID and reports whether
// any was removed.
func (c *Collection) DeleteByID(id uint32) bool {
	kept := c.records[:0]
	for _, r := range c.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	removed := len(kept) != len(c.records)
	clear(c.records[len(kept):])
	c.records = kept
	return removed
}

// Size returns the number of records held.
func (c *Collection) Size() int {
	return len(c.records)
}

// Records returns the underlying records in insertion order.
// The slice must not be modified.
func (c *Collection) Records() []record.Record {
	return c.records
}

// Filter scans every record. See FindMatchingRecords.
func (c *Collection) Filter(col record.Column, value string) ([]record.Record, error) {
	return FindMatchingRecords(c.records, col, value)
}

// FindMatchingRecords returns the records of recs whose column matches
// value, in input order. ID and Number values are parsed once up front;
// a parse failure returns the store's *ParseError.
func FindMatchingRecords(recs []record.Record, col record.Column, value string) ([]record.Record, error) {
	var match func(r record.Record) bool

	switch col {
	case record.ColumnID:
		id, err := store.ParseID(value)
		if err != nil {
			return nil, err
		}
		match = func(r record.Record) bool { return r.ID == id }
	case record.ColumnNumber:
		n, err := store.ParseNumber(value)
		if err != nil {
			return nil, err
		}
		match = func(r record.Record) bool { return r.Number == n }
	case record.ColumnTextA:
		match = func(r record.Record) bool { return strings.Contains(r.TextA, value) }
	case record.ColumnTextB:
		match = func(r record.Record) bool { return strings.Contains(r.TextB, value) }
	default:
		return nil, nil
	}

	var out []record.Record
	for _, r := range recs {
		if match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
