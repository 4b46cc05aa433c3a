package baseline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/idxstore/internal/record"
	"github.com/roach88/idxstore/internal/store"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_ExampleScenario(t *testing.T) {
	ctx := context.Background()
	db := openTestSQLite(t)

	require.NoError(t, db.Insert(ctx, rec1))
	require.NoError(t, db.Insert(ctx, rec2))
	n, err := db.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := db.Filter(ctx, record.ColumnTextA, "345")
	require.NoError(t, err)
	assert.Equal(t, []record.Record{rec2}, got)

	got, err = db.Filter(ctx, record.ColumnNumber, "334")
	require.NoError(t, err)
	assert.Equal(t, []record.Record{rec2}, got)

	got, err = db.Filter(ctx, record.ColumnTextB, "test")
	require.NoError(t, err)
	assert.Equal(t, []record.Record{rec1, rec2}, got)

	removed, err := db.DeleteByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err = db.Filter(ctx, record.ColumnTextB, "test")
	require.NoError(t, err)
	assert.Equal(t, []record.Record{rec2}, got)

	removed, err = db.DeleteByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSQLite_LoadAndFilterByID(t *testing.T) {
	ctx := context.Background()
	db := openTestSQLite(t)

	recs := []record.Record{
		rec1, rec2,
		{ID: 4294967295, TextA: "max", Number: -1, TextB: "edge"},
	}
	require.NoError(t, db.Load(ctx, recs))

	got, err := db.Filter(ctx, record.ColumnID, "4294967295")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, recs[2], got[0])

	got, err = db.Filter(ctx, record.ColumnNumber, "-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// empty needle matches every row, like strings.Contains
	got, err = db.Filter(ctx, record.ColumnTextA, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSQLite_FilterErrors(t *testing.T) {
	ctx := context.Background()
	db := openTestSQLite(t)

	_, err := db.Filter(ctx, record.ColumnID, "abc")
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = db.Filter(ctx, record.ColumnNumber, "")
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	got, err := db.Filter(ctx, record.ColumnUnknown, "x")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_CloseIsIdempotentForZeroValue(t *testing.T) {
	var s SQLite
	assert.NoError(t, s.Close())
}
