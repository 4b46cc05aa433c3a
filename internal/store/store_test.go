package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/idxstore/internal/index"
	"github.com/roach88/idxstore/internal/record"
)

var (
	rec1 = record.Record{ID: 1, TextA: "data", Number: 10, TextB: "test"}
	rec2 = record.Record{ID: 2, TextA: "01234567890abcdef", Number: 334, TextB: "testing"}
)

// snapshotIndexes flattens every non-empty index entry into a comparable map.
func snapshotIndexes(s *Store) map[string][]uint32 {
	out := map[string][]uint32{}
	s.number.Each(func(v int64, set *index.IDSet) bool {
		if !set.IsEmpty() {
			out[fmt.Sprintf("n:%d", v)] = set.ToSlice()
		}
		return true
	})
	s.textA.Each(func(k string, set *index.IDSet) bool {
		if !set.IsEmpty() {
			out["a:"+k] = set.ToSlice()
		}
		return true
	})
	s.textB.Each(func(k string, set *index.IDSet) bool {
		if !set.IsEmpty() {
			out["b:"+k] = set.ToSlice()
		}
		return true
	})
	return out
}

func TestNew_RejectsNonPositiveMinIndexSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := New(n)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}

	assert.Panics(t, func() { MustNew(0) })
}

func TestNew_Defaults(t *testing.T) {
	s, err := New(DefaultMinIndexSize, WithCapacity(16))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, DefaultMinIndexSize, s.MinIndexSize())
	assert.Equal(t, Stats{MinIndexSize: DefaultMinIndexSize}, s.Stats())
}

// The scenario from the original unit check, run for every min index size
// the check used.
func TestExampleScenario(t *testing.T) {
	for _, minSize := range []int{1, 3, 5, 100} {
		t.Run(fmt.Sprintf("min=%d", minSize), func(t *testing.T) {
			s := MustNew(minSize)

			require.True(t, s.Insert(rec1))
			assert.Equal(t, 1, s.Size())
			require.True(t, s.Insert(rec2))
			assert.Equal(t, 2, s.Size())

			got, err := s.Filter(record.ColumnTextA, "345")
			require.NoError(t, err)
			assert.Equal(t, []record.Record{rec2}, got)

			got, err = s.Filter(record.ColumnNumber, "334")
			require.NoError(t, err)
			assert.Equal(t, []record.Record{rec2}, got)

			got, err = s.Filter(record.ColumnTextB, "test")
			require.NoError(t, err)
			assert.ElementsMatch(t, []record.Record{rec1, rec2}, got)

			require.True(t, s.DeleteByID(1))
			got, err = s.Filter(record.ColumnTextB, "test")
			require.NoError(t, err)
			assert.Equal(t, []record.Record{rec2}, got)

			require.NoError(t, s.CheckConsistency())
		})
	}
}

func TestInsert_DuplicateIDIsNoop(t *testing.T) {
	s := MustNew(2)
	require.True(t, s.Insert(rec1))
	before := snapshotIndexes(s)

	dup := record.Record{ID: 1, TextA: "other", Number: 99, TextB: "different"}
	assert.False(t, s.Insert(dup))
	assert.Equal(t, 1, s.Size())

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, rec1, got)
	assert.Equal(t, before, snapshotIndexes(s))

	res, err := s.Filter(record.ColumnNumber, "99")
	require.NoError(t, err)
	assert.Empty(t, res)
	require.NoError(t, s.CheckConsistency())
}

func TestDeleteByID_AbsentIsNoop(t *testing.T) {
	s := MustNew(2)
	s.Insert(rec1)
	before := snapshotIndexes(s)

	assert.False(t, s.DeleteByID(42))
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, before, snapshotIndexes(s))
}

func TestDeleteByID_IsInverseOfInsert(t *testing.T) {
	for _, minSize := range []int{1, 2, 4, 20} {
		t.Run(fmt.Sprintf("min=%d", minSize), func(t *testing.T) {
			s := MustNew(minSize)
			s.Insert(rec1)
			s.Insert(rec2)
			before := snapshotIndexes(s)

			extra := record.Record{ID: 3, TextA: "testdata123", Number: 10, TextB: "123testdata"}
			require.True(t, s.Insert(extra))
			require.True(t, s.DeleteByID(3))

			assert.Equal(t, before, snapshotIndexes(s))
			_, ok := s.Get(3)
			assert.False(t, ok)
			require.NoError(t, s.CheckConsistency())
		})
	}
}

func TestDeleteByID_KeepsEmptyNumberEntry(t *testing.T) {
	s := MustNew(3)
	s.Insert(rec1)
	keys := s.Stats().NumberKeys

	s.DeleteByID(1)
	assert.Equal(t, keys, s.Stats().NumberKeys)
	assert.True(t, s.number.Lookup(10).IsEmpty())

	res, err := s.Filter(record.ColumnNumber, "10")
	require.NoError(t, err)
	assert.Empty(t, res)

	// reinsertion reuses the entry
	s.Insert(record.Record{ID: 5, Number: 10})
	assert.Equal(t, keys, s.Stats().NumberKeys)
	res, err = s.Filter(record.ColumnNumber, "10")
	require.NoError(t, err)
	assert.Equal(t, []uint32{5}, record.IDs(res))
}

func TestReinsertAfterDelete(t *testing.T) {
	s := MustNew(2)
	s.Insert(rec1)
	s.DeleteByID(1)

	replacement := record.Record{ID: 1, TextA: "fresh", Number: 11, TextB: "value"}
	require.True(t, s.Insert(replacement))

	res, err := s.Filter(record.ColumnTextB, "test")
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = s.Filter(record.ColumnTextA, "res")
	require.NoError(t, err)
	assert.Equal(t, []record.Record{replacement}, res)
	require.NoError(t, s.CheckConsistency())
}

func TestSizeMonotonicity(t *testing.T) {
	s := MustNew(3)
	steps := []struct {
		op   string
		id   uint32
		want int
	}{
		{"insert", 1, 1},
		{"insert", 2, 2},
		{"insert", 1, 2},
		{"delete", 3, 2},
		{"delete", 1, 1},
		{"delete", 1, 1},
		{"insert", 1, 2},
	}
	for i, st := range steps {
		switch st.op {
		case "insert":
			s.Insert(record.Record{ID: st.id, TextA: "text", TextB: "more text"})
		case "delete":
			s.DeleteByID(st.id)
		}
		assert.Equal(t, st.want, s.Size(), "step %d", i)
	}
}

func TestStats(t *testing.T) {
	s := MustNew(3)
	s.Insert(rec1)
	s.Insert(rec2)

	st := s.Stats()
	assert.Equal(t, 2, st.Records)
	assert.Equal(t, 2, st.NumberKeys)
	// "data" alone yields dat, ata, data
	assert.Greater(t, st.TextAKeys, 3)
	// "test" alone yields tes, est, test
	assert.Greater(t, st.TextBKeys, 3)
}
