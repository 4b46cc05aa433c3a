package bench

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/idxstore/internal/record"
)

// Probe values used by the find benchmark.
const (
	NumberProbe   = 500
	TextProbeHits = 11
)

// Workload describes the data set the find benchmark loads.
type Workload struct {
	Prefix     string `json:"prefix"`
	Records    int    `json:"records"`
	RepeatEach int    `json:"repeat_each"`
}

// Validate checks that the expected result counts of the find benchmark
// hold for w.
func (w Workload) Validate() error {
	if w.Prefix == "" || strings.ContainsAny(w.Prefix, "0123456789") {
		return fmt.Errorf("prefix must be non-empty and digit-free, got %q", w.Prefix)
	}
	if w.Records <= 1000 {
		return fmt.Errorf("records must be > 1000, got %d", w.Records)
	}
	if w.Records%1000 != 0 {
		return fmt.Errorf("records must be divisible by 1000, got %d", w.Records)
	}
	if w.RepeatEach <= NumberProbe {
		return fmt.Errorf("repeat_each must be > %d, got %d", NumberProbe, w.RepeatEach)
	}
	if w.Records%w.RepeatEach != 0 {
		return fmt.Errorf("records (%d) must be divisible by repeat_each (%d)", w.Records, w.RepeatEach)
	}
	return nil
}

// TextProbe returns the column1 filter value.
func (w Workload) TextProbe() string {
	return w.Prefix + strconv.Itoa(w.Records/20)
}

// ExpectedNumberHits returns how many records hold NumberProbe.
func (w Workload) ExpectedNumberHits() int {
	return w.Records / w.RepeatEach
}

// Populate builds n synthetic records. Record i is
//
//	{i, prefix+itoa(i), i % repeatEach, itoa(i)+prefix}
func Populate(prefix string, n, repeatEach int) []record.Record {
	recs := make([]record.Record, n)
	for i := 0; i < n; i++ {
		s := strconv.Itoa(i)
		recs[i] = record.Record{
			ID:     uint32(i),
			TextA:  prefix + s,
			Number: int64(i % repeatEach),
			TextB:  s + prefix,
		}
	}
	return recs
}
