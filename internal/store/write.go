package store

import (
	"github.com/roach88/idxstore/internal/record"
)

// Insert adds rec to the store and indexes it.
// If a record with the same ID is already live the call is a no-op and
// returns false; the existing record is kept unchanged.
func (s *Store) Insert(rec record.Record) bool {
	if _, exists := s.records[rec.ID]; exists {
		s.logger.Debug("insert ignored, duplicate id", "id", rec.ID)
		s.metrics.observeOp(opInsert, outcomeNoop)
		return false
	}

	s.records[rec.ID] = rec
	s.number.Add(rec.Number, rec.ID)
	s.textA.Add(rec.TextA, rec.ID)
	s.textB.Add(rec.TextB, rec.ID)

	s.metrics.observeOp(opInsert, outcomeApplied)
	s.metrics.setRecords(len(s.records))
	return true
}

// DeleteByID removes the record with the given ID and retracts it from
// every index. Deleting an absent ID is a no-op and returns false.
//
// The number index keeps the emptied set for the record's value.
func (s *Store) DeleteByID(id uint32) bool {
	rec, ok := s.records[id]
	if !ok {
		s.logger.Debug("delete ignored, id not found", "id", id)
		s.metrics.observeOp(opDelete, outcomeNoop)
		return false
	}

	s.number.Remove(rec.Number, id)
	s.textA.Remove(rec.TextA, id)
	s.textB.Remove(rec.TextB, id)
	delete(s.records, id)

	s.metrics.observeOp(opDelete, outcomeApplied)
	s.metrics.setRecords(len(s.records))
	return true
}
