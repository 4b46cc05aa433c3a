package index

import "github.com/RoaringBitmap/roaring"

// IDSet is a set of record IDs.
// The zero value is not usable; use NewIDSet.
type IDSet struct {
	bm *roaring.Bitmap
}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...uint32) *IDSet {
	return &IDSet{bm: roaring.BitmapOf(ids...)}
}

// Add inserts id. Adding an existing id is a no-op.
func (s *IDSet) Add(id uint32) {
	s.bm.Add(id)
}

// Remove deletes id. Removing a missing id is a no-op.
func (s *IDSet) Remove(id uint32) {
	s.bm.Remove(id)
}

// Contains reports whether id is in the set.
func (s *IDSet) Contains(id uint32) bool {
	return s.bm.Contains(id)
}

// Len returns the number of ids in the set.
func (s *IDSet) Len() int {
	return int(s.bm.GetCardinality())
}

// IsEmpty reports whether the set has no ids.
func (s *IDSet) IsEmpty() bool {
	return s.bm.IsEmpty()
}

// Each calls fn for every id in ascending order until fn returns false.
func (s *IDSet) Each(fn func(id uint32) bool) {
	s.bm.Iterate(fn)
}

// ToSlice returns the ids in ascending order.
func (s *IDSet) ToSlice() []uint32 {
	return s.bm.ToArray()
}
