package bench

import (
	"context"

	"github.com/roach88/idxstore/internal/baseline"
	"github.com/roach88/idxstore/internal/record"
	"github.com/roach88/idxstore/internal/store"
)

// Target adapts a collection to the benchmark.
type Target struct {
	Name   string
	Load   func(ctx context.Context, recs []record.Record) error
	Filter func(ctx context.Context, col record.Column, value string) ([]record.Record, error)
}

// StoreTarget benchmarks s.
func StoreTarget(name string, s *store.Store) Target {
	return Target{
		Name: name,
		Load: func(ctx context.Context, recs []record.Record) error {
			for _, r := range recs {
				s.Insert(r)
			}
			return nil
		},
		Filter: func(_ context.Context, col record.Column, value string) ([]record.Record, error) {
			return s.Filter(col, value)
		},
	}
}

// BaselineTarget benchmarks the naive slice collection.
func BaselineTarget(name string, c *baseline.Collection) Target {
	return Target{
		Name: name,
		Load: func(_ context.Context, recs []record.Record) error {
			for _, r := range recs {
				c.Insert(r)
			}
			return nil
		},
		Filter: func(_ context.Context, col record.Column, value string) ([]record.Record, error) {
			return c.Filter(col, value)
		},
	}
}

// SQLiteTarget benchmarks the in-memory SQLite baseline.
func SQLiteTarget(name string, db *baseline.SQLite) Target {
	return Target{
		Name:   name,
		Load:   db.Load,
		Filter: db.Filter,
	}
}
