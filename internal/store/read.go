package store

import (
	"strconv"
	"strings"

	"github.com/roach88/idxstore/internal/index"
	"github.com/roach88/idxstore/internal/record"
)

// Filter path labels.
const (
	pathPrimary = "primary"
	pathExact   = "exact"
	pathPartial = "partial"
	pathScan    = "scan"
	pathNone    = "none"
)

// Get returns the live record with the given ID.
func (s *Store) Get(id uint32) (record.Record, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

// Filter returns the live records whose column matches value.
//
//   - ColumnID: value is parsed as uint32; zero or one record
//   - ColumnNumber: value is parsed as int64; records with an equal number
//   - text columns: records whose text contains value as a substring
//   - any other column: empty result
//
// Result order is unspecified. A value that does not parse for the ID or
// Number column returns a *ParseError matching ErrInvalidInput.
func (s *Store) Filter(col record.Column, value string) ([]record.Record, error) {
	switch col {
	case record.ColumnID:
		id, err := ParseID(value)
		if err != nil {
			s.metrics.observeFilterError(col)
			return nil, err
		}
		s.metrics.observeFilter(col, pathPrimary)
		if rec, ok := s.records[id]; ok {
			return []record.Record{rec}, nil
		}
		return nil, nil

	case record.ColumnNumber:
		n, err := ParseNumber(value)
		if err != nil {
			s.metrics.observeFilterError(col)
			return nil, err
		}
		s.metrics.observeFilter(col, pathExact)
		return s.resolve(s.number.Lookup(n)), nil

	case record.ColumnTextA, record.ColumnTextB:
		idx := s.textIndex(col)
		if !idx.Indexable(value) {
			s.logger.Debug("text query below min index size, scanning",
				"column", col.String(), "value_len", len(value))
			s.metrics.observeFilter(col, pathScan)
			return s.scan(col, value), nil
		}
		s.metrics.observeFilter(col, pathPartial)
		return s.resolve(idx.Lookup(value)), nil

	default:
		s.metrics.observeFilter(col, pathNone)
		return nil, nil
	}
}

// resolve maps an ID set to live records in ascending ID order.
// A nil set yields an empty result.
func (s *Store) resolve(set *index.IDSet) []record.Record {
	if set == nil || set.IsEmpty() {
		return nil
	}
	out := make([]record.Record, 0, set.Len())
	set.Each(func(id uint32) bool {
		if rec, ok := s.records[id]; ok {
			out = append(out, rec)
		}
		return true
	})
	return out
}

// scan tests every live record's text column for value.
func (s *Store) scan(col record.Column, value string) []record.Record {
	var out []record.Record
	for _, rec := range s.records {
		text, _ := rec.Text(col)
		if strings.Contains(text, value) {
			out = append(out, rec)
		}
	}
	return out
}

// ParseID parses an ID filter value.
func ParseID(value string) (uint32, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, &ParseError{Column: record.ColumnID, Value: value, Err: err}
	}
	return uint32(id), nil
}

// ParseNumber parses a Number filter value.
func ParseNumber(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &ParseError{Column: record.ColumnNumber, Value: value, Err: err}
	}
	return n, nil
}
