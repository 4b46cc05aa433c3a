package testutil

import (
	"fmt"
	"sync"
)

// FixedRunIDGenerator returns the same run ID every time, so benchmark
// results can be compared byte for byte.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator for id. An empty id yields
// "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}

// SequentialRunIDGenerator returns "test-run-0001", "test-run-0002", ...
// It is safe for concurrent use and can be reset between subtests.
type SequentialRunIDGenerator struct {
	mu  sync.Mutex
	seq int
}

// Generate returns the next run ID.
func (g *SequentialRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("test-run-%04d", g.seq)
}

// Reset restarts the sequence at 1.
func (g *SequentialRunIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
