package testutil

import (
	"math/rand"
	"strings"

	"github.com/roach88/idxstore/internal/record"
)

// RecordSource draws seeded random records from small domains so that IDs,
// numbers and substrings collide often.
type RecordSource struct {
	rng      *rand.Rand
	alphabet string
	maxLen   int
	ids      int
	numbers  int
}

// NewRecordSource creates a source over IDs [0, ids) and numbers
// [0, numbers). Texts use a five letter alphabet and are at most maxLen
// bytes long.
func NewRecordSource(seed int64, ids, numbers, maxLen int) *RecordSource {
	return &RecordSource{
		rng:      rand.New(rand.NewSource(seed)),
		alphabet: "abc01",
		maxLen:   maxLen,
		ids:      ids,
		numbers:  numbers,
	}
}

// ID returns a random ID.
func (s *RecordSource) ID() uint32 {
	return uint32(s.rng.Intn(s.ids))
}

// Number returns a random number.
func (s *RecordSource) Number() int64 {
	return int64(s.rng.Intn(s.numbers))
}

// Text returns a random text, possibly empty.
func (s *RecordSource) Text() string {
	n := s.rng.Intn(s.maxLen + 1)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(s.alphabet[s.rng.Intn(len(s.alphabet))])
	}
	return b.String()
}

// Record returns a random record.
func (s *RecordSource) Record() record.Record {
	return record.Record{ID: s.ID(), TextA: s.Text(), Number: s.Number(), TextB: s.Text()}
}

// Column returns one of the four schema columns.
func (s *RecordSource) Column() record.Column {
	return record.Columns[s.rng.Intn(len(record.Columns))]
}

// Intn exposes the underlying generator for test-specific choices.
func (s *RecordSource) Intn(n int) int {
	return s.rng.Intn(n)
}
