package harness

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/roach88/idxstore/internal/record"
)

// Target kinds accepted in Scenario.Targets.
const (
	TargetNaive = "naive"
	TargetStore = "store"
)

//go:embed scenarios/*.yaml
var builtinFS embed.FS

// Scenario is a sequence of steps with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Targets restricts the collection kinds the scenario runs against.
	// Empty means all kinds.
	Targets []string `yaml:"targets,omitempty"`

	// MinIndexSizes lists the store variants to build. Empty means the
	// caller's configured sizes.
	MinIndexSizes []int `yaml:"min_index_sizes,omitempty"`

	// Steps run in order against a fresh collection.
	Steps []Step `yaml:"steps"`
}

// Step is one operation. Exactly one of Insert, Delete or Filter is set,
// or none of them for a pure size check.
type Step struct {
	Insert *record.Record `yaml:"insert,omitempty"`
	Delete *uint32        `yaml:"delete,omitempty"`
	Filter *FilterStep    `yaml:"filter,omitempty"`

	// ExpectApplied checks the bool returned by Insert or DeleteByID.
	ExpectApplied *bool `yaml:"expect_applied,omitempty"`

	// ExpectSize checks Size() after the step.
	ExpectSize *int `yaml:"expect_size,omitempty"`
}

// FilterStep runs Filter and checks its result.
type FilterStep struct {
	// Column is any name accepted by record.ParseColumn. Unknown names are
	// allowed and expected to produce an empty result.
	Column string `yaml:"column"`
	Value  string `yaml:"value"`

	// ExpectIDs is the exact set of result IDs, in any order.
	ExpectIDs []uint32 `yaml:"expect_ids,omitempty"`

	// ExpectCount checks only the number of results.
	ExpectCount *int `yaml:"expect_count,omitempty"`

	// ExpectError expects Filter to fail with an invalid input error.
	ExpectError bool `yaml:"expect_error,omitempty"`
}

// op names the operation of a step.
func (s Step) op() string {
	switch {
	case s.Insert != nil:
		return "insert"
	case s.Delete != nil:
		return "delete"
	case s.Filter != nil:
		return "filter"
	default:
		return "size"
	}
}

// RunsOn reports whether the scenario applies to the given target kind.
func (s *Scenario) RunsOn(kind string) bool {
	if len(s.Targets) == 0 {
		return true
	}
	for _, t := range s.Targets {
		if t == kind {
			return true
		}
	}
	return false
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML. Unknown fields are rejected so typos
// such as "expect_id:" fail loudly.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// BuiltinScenarios returns the scenarios embedded in the binary, sorted by
// file name.
func BuiltinScenarios() ([]*Scenario, error) {
	entries, err := fs.ReadDir(builtinFS, "scenarios")
	if err != nil {
		return nil, fmt.Errorf("reading builtin scenarios: %w", err)
	}

	var out []*Scenario
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("scenarios", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		sc, err := ParseScenario(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, sc)
	}
	return out, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for _, t := range s.Targets {
		if t != TargetNaive && t != TargetStore {
			return fmt.Errorf("unknown target %q", t)
		}
	}
	for _, n := range s.MinIndexSizes {
		if n < 1 {
			return fmt.Errorf("min_index_sizes: %d is not positive", n)
		}
	}

	for i, step := range s.Steps {
		set := 0
		for _, present := range []bool{step.Insert != nil, step.Delete != nil, step.Filter != nil} {
			if present {
				set++
			}
		}
		if set > 1 {
			return fmt.Errorf("steps[%d]: only one of insert, delete, filter may be set", i)
		}
		if set == 0 && step.ExpectSize == nil {
			return fmt.Errorf("steps[%d]: empty step", i)
		}
		if step.ExpectApplied != nil && step.Insert == nil && step.Delete == nil {
			return fmt.Errorf("steps[%d]: expect_applied needs insert or delete", i)
		}
		if f := step.Filter; f != nil {
			if f.Column == "" {
				return fmt.Errorf("steps[%d].filter: column is required", i)
			}
			if f.ExpectError && (f.ExpectIDs != nil || f.ExpectCount != nil) {
				return fmt.Errorf("steps[%d].filter: expect_error excludes result expectations", i)
			}
		}
	}
	return nil
}
