package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/idxstore/internal/record"
)

// Result is the outcome of one find benchmark run.
type Result struct {
	RunID        string        `json:"run_id"`
	Target       string        `json:"target"`
	Records      int           `json:"records"`
	LoadTime     time.Duration `json:"load_ns"`
	FilterTime   time.Duration `json:"filter_ns"`
	TextHits     int           `json:"text_hits"`
	NumberHits   int           `json:"number_hits"`
	Valid        bool          `json:"valid"`
	TextDigest   string        `json:"text_digest"`
	NumberDigest string        `json:"number_digest"`
}

// String renders the result the way the original timing line did.
func (r *Result) String() string {
	status := "OK"
	if !r.Valid {
		status = "NOK!"
	}
	return fmt.Sprintf("Time for 2 filter operations on %s, records %d result - %s took %.6f sec.",
		r.Target, r.Records, status, r.FilterTime.Seconds())
}

// Runner runs find benchmarks. The zero value uses UUIDv7 run IDs and the
// default logger.
type Runner struct {
	IDs    RunIDGenerator
	Logger *slog.Logger
}

// RunFind runs a find benchmark with a zero Runner and the given logger.
func RunFind(ctx context.Context, target Target, w Workload, logger *slog.Logger) (*Result, error) {
	return Runner{Logger: logger}.Find(ctx, target, w)
}

// Find loads the workload into target and times the two probe filters.
// Only the filters are inside the timed section.
func (r Runner) Find(ctx context.Context, target Target, w Workload) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload: %w", err)
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ids := r.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}

	res := &Result{
		RunID:   ids.Generate(),
		Target:  target.Name,
		Records: w.Records,
	}
	logger = logger.With("run_id", res.RunID, "target", target.Name)

	recs := Populate(w.Prefix, w.Records, w.RepeatEach)
	loadStart := time.Now()
	if err := target.Load(ctx, recs); err != nil {
		return nil, fmt.Errorf("load %s: %w", target.Name, err)
	}
	res.LoadTime = time.Since(loadStart)
	logger.Debug("workload loaded", "records", w.Records, "took", res.LoadTime)

	textProbe := w.TextProbe()
	numberProbe := fmt.Sprint(NumberProbe)

	start := time.Now()
	textSet, err := target.Filter(ctx, record.ColumnTextA, textProbe)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", target.Name, err)
	}
	numberSet, err := target.Filter(ctx, record.ColumnNumber, numberProbe)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", target.Name, err)
	}
	res.FilterTime = time.Since(start)

	res.TextHits = len(textSet)
	res.NumberHits = len(numberSet)
	res.Valid = res.TextHits == TextProbeHits && res.NumberHits == w.ExpectedNumberHits()
	if res.TextDigest, err = record.Digest(textSet); err != nil {
		return nil, err
	}
	if res.NumberDigest, err = record.Digest(numberSet); err != nil {
		return nil, err
	}

	logger.Debug("filters done",
		"text_probe", textProbe, "text_hits", res.TextHits,
		"number_probe", numberProbe, "number_hits", res.NumberHits,
		"took", res.FilterTime, "valid", res.Valid)
	return res, nil
}

// Report collects the results of one bench invocation.
type Report struct {
	Workload Workload  `json:"workload"`
	Results  []*Result `json:"results"`
}

// Valid reports whether every run was valid and all runs returned the same
// result sets.
func (r *Report) Valid() bool {
	for _, res := range r.Results {
		if !res.Valid {
			return false
		}
		if res.TextDigest != r.Results[0].TextDigest || res.NumberDigest != r.Results[0].NumberDigest {
			return false
		}
	}
	return true
}
