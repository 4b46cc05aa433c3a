package index

// Exact maps a numeric value to the IDs of records holding that value.
type Exact struct {
	sets map[int64]*IDSet
}

// NewExact returns an empty exact index pre-sized for capacity values.
func NewExact(capacity int) *Exact {
	return &Exact{sets: make(map[int64]*IDSet, capacity)}
}

// Add registers id under value.
func (x *Exact) Add(value int64, id uint32) {
	set, ok := x.sets[value]
	if !ok {
		set = NewIDSet()
		x.sets[value] = set
	}
	set.Add(id)
}

// Remove deregisters id from value. An emptied set stays in the index and
// is reused by the next Add for the same value.
func (x *Exact) Remove(value int64, id uint32) {
	if set, ok := x.sets[value]; ok {
		set.Remove(id)
	}
}

// Lookup returns the set for value, or nil if value was never indexed.
func (x *Exact) Lookup(value int64) *IDSet {
	return x.sets[value]
}

// Len returns the number of distinct values, including emptied ones.
func (x *Exact) Len() int {
	return len(x.sets)
}

// Each calls fn for every (value, set) pair in unspecified order until fn
// returns false.
func (x *Exact) Each(fn func(value int64, set *IDSet) bool) {
	for v, set := range x.sets {
		if !fn(v, set) {
			return
		}
	}
}
