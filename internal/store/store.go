package store

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/idxstore/internal/index"
	"github.com/roach88/idxstore/internal/record"
)

// DefaultMinIndexSize is the minimum partial key length used when callers
// have no better estimate of their query lengths.
const DefaultMinIndexSize = 5

// Store is the indexed record store.
type Store struct {
	minIndexSize int
	records      map[uint32]record.Record
	number       *index.Exact
	textA        *index.Partial
	textB        *index.Partial

	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	metrics  *Metrics
	capacity int
}

// WithLogger sets the logger for no-op and fallback diagnostics.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics attaches prometheus collectors to the store.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCapacity pre-sizes primary storage and the indexes for n records.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// New creates an empty store whose text indexes hold every substring of at
// least minIndexSize bytes. Small values index almost everything and favour
// exact-match speed; large values save memory and push more text queries to
// the scan path.
func New(minIndexSize int, opts ...Option) (*Store, error) {
	if minIndexSize < 1 {
		return nil, fmt.Errorf("%w: min index size must be positive, got %d", ErrInvalidConfig, minIndexSize)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Store{
		minIndexSize: minIndexSize,
		records:      make(map[uint32]record.Record, o.capacity),
		number:       index.NewExact(o.capacity),
		textA:        index.NewPartial(minIndexSize, o.capacity),
		textB:        index.NewPartial(minIndexSize, o.capacity),
		logger:       o.logger.With("component", "store", "min_index_size", minIndexSize),
		metrics:      o.metrics,
	}, nil
}

// MustNew is like New but panics on an invalid minIndexSize.
// Use only in tests or with constant arguments.
func MustNew(minIndexSize int, opts ...Option) *Store {
	s, err := New(minIndexSize, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// MinIndexSize returns the minimum partial key length.
func (s *Store) MinIndexSize() int {
	return s.minIndexSize
}

// Size returns the number of live records.
func (s *Store) Size() int {
	return len(s.records)
}

// Stats describes the current shape of the store.
type Stats struct {
	Records      int `json:"records"`
	MinIndexSize int `json:"min_index_size"`
	NumberKeys   int `json:"number_keys"`
	TextAKeys    int `json:"text_a_keys"`
	TextBKeys    int `json:"text_b_keys"`
}

// Stats returns record and index key counts. Key counts include entries
// whose ID sets have been emptied by deletes.
func (s *Store) Stats() Stats {
	return Stats{
		Records:      len(s.records),
		MinIndexSize: s.minIndexSize,
		NumberKeys:   s.number.Len(),
		TextAKeys:    s.textA.Len(),
		TextBKeys:    s.textB.Len(),
	}
}

// textIndex returns the partial index for a text column, or nil.
func (s *Store) textIndex(col record.Column) *index.Partial {
	switch col {
	case record.ColumnTextA:
		return s.textA
	case record.ColumnTextB:
		return s.textB
	default:
		return nil
	}
}
