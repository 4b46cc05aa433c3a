package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/idxstore/internal/bench"
)

func TestBenchText(t *testing.T) {
	out, _, err := executeRoot(t, "bench", "--records", "2000", "--min-index-size", "5", "--sqlite")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Time for 2 filter operations on naive, records 2000 result - OK took"), lines[0])
	assert.Contains(t, lines[1], "on sqlite, records 2000 result - OK")
	assert.Contains(t, lines[2], "on store/min=5, records 2000 result - OK")
}

func TestBenchJSON(t *testing.T) {
	out, _, err := executeRoot(t, "bench", "--format", "json", "--records", "2000", "--min-index-size", "3,100")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   bench.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2000, resp.Data.Workload.Records)
	require.Len(t, resp.Data.Results, 3)
	for _, res := range resp.Data.Results {
		assert.True(t, res.Valid, res.Target)
		assert.Equal(t, bench.TextProbeHits, res.TextHits)
		assert.Equal(t, 2, res.NumberHits)
		assert.NotEmpty(t, res.RunID)
	}
	assert.True(t, resp.Data.Valid())
}

func TestBenchVerboseLogsMetrics(t *testing.T) {
	_, errOut, err := executeRoot(t, "bench", "-v", "--records", "2000", "--min-index-size", "5")
	require.NoError(t, err)
	assert.Contains(t, errOut, "msg=metric name=idxstore_records")
	assert.Contains(t, errOut, "msg=\"running find benchmark\"")
}

func TestBenchConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idxstore.cue")
	cfg := `
store: min_index_sizes: [4]
bench: {
	prefix:      "row"
	records:     3000
	repeat_each: 1000
	baselines:   []
}
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	out, _, err := executeRoot(t, "bench", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "on store/min=4, records 3000 result - OK")
	assert.NotContains(t, out, "naive")
}

func TestBenchInvalidWorkload(t *testing.T) {
	_, _, err := executeRoot(t, "bench", "--records", "2500")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid workload")
}

func TestBenchRejectsArgs(t *testing.T) {
	_, _, err := executeRoot(t, "bench", "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
