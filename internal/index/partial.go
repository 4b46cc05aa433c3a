package index

// PartialKeys calls fn for every contiguous substring of s whose byte
// length is at least minSize: all start positions, all lengths from minSize
// up to the remainder of s. Texts shorter than minSize produce no keys.
//
// The same substring reached from different start positions is emitted
// once per occurrence; set semantics in the index collapse them.
func PartialKeys(s string, minSize int, fn func(key string)) {
	if minSize < 1 || len(s) < minSize {
		return
	}
	for start := 0; start < len(s); start++ {
		for end := start + minSize; end <= len(s); end++ {
			fn(s[start:end])
		}
	}
}

// Partial maps every admissible substring key of a text column to the IDs
// of records whose text contains it.
type Partial struct {
	minSize int
	sets    map[string]*IDSet
}

// NewPartial returns an empty partial index for keys of at least minSize
// bytes. minSize must be positive.
func NewPartial(minSize, capacity int) *Partial {
	return &Partial{minSize: minSize, sets: make(map[string]*IDSet, capacity)}
}

// MinSize returns the minimum indexed key length.
func (p *Partial) MinSize() int {
	return p.minSize
}

// Indexable reports whether text is long enough to be indexed (or, for a
// query value, long enough to be answered from the index).
func (p *Partial) Indexable(text string) bool {
	return len(text) >= p.minSize
}

// Add registers id under every partial key of text.
func (p *Partial) Add(text string, id uint32) {
	PartialKeys(text, p.minSize, func(key string) {
		set, ok := p.sets[key]
		if !ok {
			set = NewIDSet()
			p.sets[key] = set
		}
		set.Add(id)
	})
}

// Remove deregisters id from every partial key of text. Keys without an
// entry are skipped and no entry is created.
func (p *Partial) Remove(text string, id uint32) {
	PartialKeys(text, p.minSize, func(key string) {
		if set, ok := p.sets[key]; ok {
			set.Remove(id)
		}
	})
}

// Lookup returns the set for key, or nil if key was never indexed.
func (p *Partial) Lookup(key string) *IDSet {
	return p.sets[key]
}

// Len returns the number of distinct keys, including emptied ones.
func (p *Partial) Len() int {
	return len(p.sets)
}

// Each calls fn for every (key, set) pair in unspecified order until fn
// returns false.
func (p *Partial) Each(fn func(key string, set *IDSet) bool) {
	for k, set := range p.sets {
		if !fn(k, set) {
			return
		}
	}
}
