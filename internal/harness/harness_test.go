package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/idxstore/internal/baseline"
	"github.com/roach88/idxstore/internal/record"
	"github.com/roach88/idxstore/internal/store"
)

func builtin(t *testing.T, name string) *Scenario {
	t.Helper()
	scenarios, err := BuiltinScenarios()
	require.NoError(t, err)
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc
		}
	}
	t.Fatalf("no builtin scenario %q", name)
	return nil
}

func TestBuiltinScenarios_PassOnAllTargets(t *testing.T) {
	scenarios, err := BuiltinScenarios()
	require.NoError(t, err)

	for _, sc := range scenarios {
		results, err := RunAll(sc, []int{1, 5, 100}, nil)
		require.NoError(t, err)
		require.NotEmpty(t, results, sc.Name)

		for _, res := range results {
			t.Run(sc.Name+"/"+res.Target, func(t *testing.T) {
				assert.True(t, res.Pass, "failures: %v", res.Failures())
				assert.Len(t, res.Trace, len(sc.Steps))
			})
		}
	}
}

func TestBasicExample_Golden(t *testing.T) {
	sc := builtin(t, "basic_example")

	targets, err := Targets(sc, nil, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(targets))
	for _, tgt := range targets {
		names = append(names, tgt.Name)
	}
	assert.Equal(t, []string{"naive", "store/min=1", "store/min=3", "store/min=100"}, names)

	for _, tgt := range targets {
		t.Run(tgt.Name, func(t *testing.T) {
			RunWithGolden(t, sc, tgt.Name, tgt.Collection)
		})
	}
}

func TestTargets_DefaultSizes(t *testing.T) {
	sc := builtin(t, "duplicates")

	targets, err := Targets(sc, []int{2, 7}, nil)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "store/min=2", targets[0].Name)
	assert.Equal(t, "store/min=7", targets[1].Name)
}

func TestTargets_InvalidSize(t *testing.T) {
	sc := &Scenario{Name: "bad", Targets: []string{TargetStore}}
	_, err := Targets(sc, []int{0}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidConfig)
}

func TestRun_ReportsFailedChecks(t *testing.T) {
	two := 2
	sc := &Scenario{
		Name: "wrong",
		Steps: []Step{
			{Insert: &record.Record{ID: 1, TextA: "abc", Number: 1, TextB: "def"}},
			{Filter: &FilterStep{Column: "number", Value: "1", ExpectIDs: []uint32{2}}},
			{Filter: &FilterStep{Column: "number", Value: "x"}},
			{Filter: &FilterStep{Column: "number", Value: "1", ExpectError: true}},
			{ExpectSize: &two},
		},
	}

	res := Run(sc, "naive", baseline.NewCollection(0), nil)
	assert.False(t, res.Pass)

	failures := res.Failures()
	require.Len(t, failures, 4)
	assert.Equal(t, `Check if: ids(filter(number, "1")) == [2] --> NOK`, failures[0].String())
	assert.Equal(t, 3, failures[1].Step)
	assert.Equal(t, 4, failures[2].Step)
	assert.Equal(t, "Check if: size() == 2 --> NOK", failures[3].String())

	assert.Equal(t, "invalid_input", res.Trace[2].Error)
	assert.Nil(t, res.Trace[2].IDs)
}

func TestRun_FlagsDuplicateOnBaseline(t *testing.T) {
	no := false
	sc := &Scenario{
		Name: "dup",
		Steps: []Step{
			{Insert: &record.Record{ID: 1}},
			{Insert: &record.Record{ID: 1}, ExpectApplied: &no},
		},
	}

	res := Run(sc, "naive", baseline.NewCollection(0), nil)
	assert.False(t, res.Pass)

	res = Run(sc, "store/min=5", store.MustNew(5), nil)
	assert.True(t, res.Pass, "failures: %v", res.Failures())
}

func TestTraceEvent_ToMap(t *testing.T) {
	id := uint32(3)
	applied := true
	value := "ab"

	insert := TraceEvent{Step: 1, Op: "insert", ID: &id, Applied: &applied, Size: 1}
	assert.Equal(t, map[string]any{"step": 1, "op": "insert", "id": uint32(3), "applied": true, "size": 1}, insert.ToMap())

	empty := TraceEvent{Step: 2, Op: "filter", Column: "text_a", Value: &value, Size: 1}
	assert.Equal(t, []uint32{}, empty.ToMap()["ids"])

	failed := TraceEvent{Step: 3, Op: "filter", Column: "id", Value: &value, Error: "invalid_input"}
	m := failed.ToMap()
	assert.Equal(t, "invalid_input", m["error"])
	assert.NotContains(t, m, "ids")
}

func TestGoldenName(t *testing.T) {
	assert.Equal(t, "basic_example__store_min_3", GoldenName("basic_example", "store/min=3"))
	assert.Equal(t, "basic_example__naive", GoldenName("basic_example", "naive"))
}
