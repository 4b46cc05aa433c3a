package store

import (
	"fmt"
	"strings"

	"github.com/roach88/idxstore/internal/index"
	"github.com/roach88/idxstore/internal/record"
)

// CheckConsistency walks primary storage and every index and reports any
// entry that breaks INV-2. It returns nil for a consistent store and a
// *ConsistencyError otherwise.
//
// The walk enumerates every partial key of every live record, so it costs
// as much as re-inserting the whole store. Intended for tests and checks,
// not for hot paths.
func (s *Store) CheckConsistency() error {
	var violations []string
	report := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	// live records -> indexes
	for id, rec := range s.records {
		if rec.ID != id {
			report("storage key %d holds record with id %d", id, rec.ID)
		}
		if set := s.number.Lookup(rec.Number); set == nil || !set.Contains(id) {
			report("id %d missing from number index under %d", id, rec.Number)
		}
		for _, col := range []record.Column{record.ColumnTextA, record.ColumnTextB} {
			text, _ := rec.Text(col)
			idx := s.textIndex(col)
			index.PartialKeys(text, s.minIndexSize, func(key string) {
				if set := idx.Lookup(key); set == nil || !set.Contains(id) {
					report("id %d missing from %s index under %q", id, col, key)
				}
			})
		}
	}

	// indexes -> live records
	s.number.Each(func(value int64, set *index.IDSet) bool {
		set.Each(func(id uint32) bool {
			rec, ok := s.records[id]
			switch {
			case !ok:
				report("number index holds dead id %d under %d", id, value)
			case rec.Number != value:
				report("number index holds id %d under %d, record has %d", id, value, rec.Number)
			}
			return true
		})
		return true
	})
	for _, col := range []record.Column{record.ColumnTextA, record.ColumnTextB} {
		s.textIndex(col).Each(func(key string, set *index.IDSet) bool {
			if len(key) < s.minIndexSize {
				report("%s index holds short key %q", col, key)
			}
			set.Each(func(id uint32) bool {
				rec, ok := s.records[id]
				if !ok {
					report("%s index holds dead id %d under %q", col, id, key)
					return true
				}
				text, _ := rec.Text(col)
				if len(text) < s.minIndexSize || !strings.Contains(text, key) {
					report("%s index holds id %d under %q, record text is %q", col, id, key, text)
				}
				return true
			})
			return true
		})
	}

	if len(violations) > 0 {
		return &ConsistencyError{Violations: violations}
	}
	return nil
}
