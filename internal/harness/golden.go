package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/idxstore/internal/record"
)

// ToMap converts the event to a map for canonical encoding. Filter events
// always carry ids, even when empty.
func (e TraceEvent) ToMap() map[string]any {
	m := map[string]any{
		"step": e.Step,
		"op":   e.Op,
		"size": e.Size,
	}
	if e.ID != nil {
		m["id"] = *e.ID
	}
	if e.Applied != nil {
		m["applied"] = *e.Applied
	}
	if e.Op == "filter" {
		m["column"] = e.Column
		m["value"] = *e.Value
		if e.Error != "" {
			m["error"] = e.Error
		} else {
			ids := e.IDs
			if ids == nil {
				ids = []uint32{}
			}
			m["ids"] = ids
		}
	}
	return m
}

// TraceJSON renders the result's trace as canonical JSON.
func (r *Result) TraceJSON() ([]byte, error) {
	trace := make([]any, len(r.Trace))
	for i, ev := range r.Trace {
		trace[i] = ev.ToMap()
	}
	return record.MarshalCanonical(map[string]any{
		"scenario": r.Scenario,
		"target":   r.Target,
		"trace":    trace,
	})
}

// GoldenName is the fixture name for a scenario/target pair.
func GoldenName(scenario, target string) string {
	r := strings.NewReplacer("/", "_", "=", "_")
	return scenario + "__" + r.Replace(target)
}

// RunWithGolden runs sc against c, fails t on any failed check, and compares
// the canonical trace with testdata/golden/<scenario>__<target>.golden.
// Pass -update to regenerate.
func RunWithGolden(t *testing.T, sc *Scenario, target string, c Collection) *Result {
	t.Helper()

	res := Run(sc, target, c, nil)
	for _, f := range res.Failures() {
		t.Errorf("step %d: %s", f.Step, f)
	}

	got, err := res.TraceJSON()
	if err != nil {
		t.Fatalf("failed to marshal trace: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, GoldenName(sc.Name, target), got)
	return res
}
