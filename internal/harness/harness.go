package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/idxstore/internal/baseline"
	"github.com/roach88/idxstore/internal/record"
	"github.com/roach88/idxstore/internal/store"
)

// Collection is the contract shared by the store and the naive baseline.
type Collection interface {
	Insert(rec record.Record) bool
	DeleteByID(id uint32) bool
	Size() int
	Filter(col record.Column, value string) ([]record.Record, error)
}

// consistencyChecker is implemented by collections that can verify their
// own indexes.
type consistencyChecker interface {
	CheckConsistency() error
}

// Target is a named, freshly constructed collection.
type Target struct {
	Name       string
	Collection Collection
}

// Targets builds one fresh collection per applicable target kind: the naive
// baseline and a store per min index size. The scenario's own sizes take
// precedence over defaultSizes.
func Targets(sc *Scenario, defaultSizes []int, logger *slog.Logger) ([]Target, error) {
	var out []Target
	if sc.RunsOn(TargetNaive) {
		out = append(out, Target{Name: TargetNaive, Collection: baseline.NewCollection(0)})
	}
	if sc.RunsOn(TargetStore) {
		sizes := sc.MinIndexSizes
		if len(sizes) == 0 {
			sizes = defaultSizes
		}
		for _, n := range sizes {
			opts := []store.Option{}
			if logger != nil {
				opts = append(opts, store.WithLogger(logger))
			}
			s, err := store.New(n, opts...)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			out = append(out, Target{Name: fmt.Sprintf("%s/min=%d", TargetStore, n), Collection: s})
		}
	}
	return out, nil
}

// Check is one evaluated expectation.
type Check struct {
	Step int    `json:"step"`
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

// String renders the check like the original unit check output.
func (c Check) String() string {
	if c.OK {
		return fmt.Sprintf("Check if: %s --> OK", c.Text)
	}
	return fmt.Sprintf("Check if: %s --> NOK", c.Text)
}

// TraceEvent records what a step did.
type TraceEvent struct {
	Step    int      `json:"step"`
	Op      string   `json:"op"`
	ID      *uint32  `json:"id,omitempty"`
	Column  string   `json:"column,omitempty"`
	Value   *string  `json:"value,omitempty"`
	Applied *bool    `json:"applied,omitempty"`
	IDs     []uint32 `json:"ids,omitempty"`
	Error   string   `json:"error,omitempty"`
	Size    int      `json:"size"`
}

// Result is the outcome of running one scenario against one target.
type Result struct {
	Scenario string       `json:"scenario"`
	Target   string       `json:"target"`
	Pass     bool         `json:"pass"`
	Checks   []Check      `json:"checks"`
	Trace    []TraceEvent `json:"trace"`
}

func (r *Result) check(step int, ok bool, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Step: step, Text: fmt.Sprintf(format, args...), OK: ok})
	if !ok {
		r.Pass = false
	}
}

// Failures returns the failed checks.
func (r *Result) Failures() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

// Run executes sc against c. c should be empty.
func Run(sc *Scenario, target string, c Collection, logger *slog.Logger) *Result {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("scenario", sc.Name, "target", target)

	res := &Result{Scenario: sc.Name, Target: target, Pass: true}
	checker, canCheck := c.(consistencyChecker)

	for i, step := range sc.Steps {
		n := i + 1
		ev := TraceEvent{Step: n, Op: step.op()}

		switch {
		case step.Insert != nil:
			rec := *step.Insert
			applied := c.Insert(rec)
			ev.ID, ev.Applied = &rec.ID, &applied
			if step.ExpectApplied != nil {
				res.check(n, applied == *step.ExpectApplied, "insert(%d) applied == %t", rec.ID, *step.ExpectApplied)
			}

		case step.Delete != nil:
			id := *step.Delete
			applied := c.DeleteByID(id)
			ev.ID, ev.Applied = &id, &applied
			if step.ExpectApplied != nil {
				res.check(n, applied == *step.ExpectApplied, "deleteById(%d) applied == %t", id, *step.ExpectApplied)
			}

		case step.Filter != nil:
			runFilter(res, n, step.Filter, c, &ev)
		}

		ev.Size = c.Size()
		if step.ExpectSize != nil {
			res.check(n, ev.Size == *step.ExpectSize, "size() == %d", *step.ExpectSize)
		}

		if canCheck && (step.Insert != nil || step.Delete != nil) {
			if err := checker.CheckConsistency(); err != nil {
				res.check(n, false, "indexes consistent after %s: %v", ev.Op, err)
			}
		}

		logger.Debug("step done", "step", n, "op", ev.Op, "size", ev.Size)
		res.Trace = append(res.Trace, ev)
	}

	logger.Debug("scenario done", "pass", res.Pass, "checks", len(res.Checks))
	return res
}

func runFilter(res *Result, n int, f *FilterStep, c Collection, ev *TraceEvent) {
	col := record.ParseColumn(f.Column)
	value := f.Value
	ev.Column, ev.Value = f.Column, &value
	call := fmt.Sprintf("filter(%s, %q)", f.Column, f.Value)

	got, err := c.Filter(col, f.Value)
	if err != nil {
		ev.Error = errorCode(err)
		if f.ExpectError {
			res.check(n, errors.Is(err, store.ErrInvalidInput), "%s fails with invalid input", call)
		} else {
			res.check(n, false, "%s succeeds (got %v)", call, err)
		}
		return
	}

	ids := record.IDs(got)
	ev.IDs = ids
	if f.ExpectError {
		res.check(n, false, "%s fails with invalid input", call)
		return
	}
	if f.ExpectCount != nil {
		res.check(n, len(got) == *f.ExpectCount, "len(%s) == %d", call, *f.ExpectCount)
	}
	if f.ExpectIDs != nil {
		want := slices.Clone(f.ExpectIDs)
		slices.Sort(want)
		res.check(n, slices.Equal(ids, want), "ids(%s) == %s", call, formatIDs(want))
	}
}

func errorCode(err error) string {
	if errors.Is(err, store.ErrInvalidInput) {
		return "invalid_input"
	}
	return "error"
}

func formatIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RunAll runs sc against every applicable target.
func RunAll(sc *Scenario, defaultSizes []int, logger *slog.Logger) ([]*Result, error) {
	targets, err := Targets(sc, defaultSizes, logger)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, 0, len(targets))
	for _, t := range targets {
		results = append(results, Run(sc, t.Name, t.Collection, logger))
	}
	return results, nil
}
