package store

import (
	"sync"

	"github.com/roach88/idxstore/internal/record"
)

// Synchronized guards a Store with a single reader/writer lock so that no
// reader observes primary storage and an index mid-mutation.
//
// Filter, Get, Size and Stats take the read lock; Insert and DeleteByID
// take the write lock.
type Synchronized struct {
	mu sync.RWMutex
	s  *Store
}

// NewSynchronized wraps s. The caller must not use s directly afterwards.
func NewSynchronized(s *Store) *Synchronized {
	return &Synchronized{s: s}
}

func (w *Synchronized) Insert(rec record.Record) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.s.Insert(rec)
}

func (w *Synchronized) DeleteByID(id uint32) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.s.DeleteByID(id)
}

func (w *Synchronized) Filter(col record.Column, value string) ([]record.Record, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.s.Filter(col, value)
}

func (w *Synchronized) Get(id uint32) (record.Record, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.s.Get(id)
}

func (w *Synchronized) Size() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.s.Size()
}

func (w *Synchronized) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.s.Stats()
}

func (w *Synchronized) CheckConsistency() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.s.CheckConsistency()
}
