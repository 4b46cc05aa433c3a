// Package config loads idxstore configuration from CUE files.
//
// A config file is unified with the embedded #Config schema, so every field
// is optional and falls back to its schema default:
//
//	store: min_index_sizes: [1, 5, 100]
//	bench: {
//	    prefix:      "testdata"
//	    records:     10000
//	    repeat_each: 1000
//	    baselines:   ["naive"]
//	}
//
// Unknown fields are rejected because #Config is a closed definition.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for LoadError.
const (
	ErrCodeNotFound = "E_NOT_FOUND"
	ErrCodeSchema   = "E_SCHEMA"
	ErrCodeLoad     = "E_LOAD"
	ErrCodeValidate = "E_VALIDATE"
	ErrCodeDecode   = "E_DECODE"
)

// Baseline names accepted in bench.baselines.
const (
	BaselineNaive  = "naive"
	BaselineSQLite = "sqlite"
)

// Config is the decoded configuration.
type Config struct {
	Store StoreConfig `json:"store"`
	Bench BenchConfig `json:"bench"`
}

// StoreConfig configures the stores built by check and bench.
type StoreConfig struct {
	MinIndexSizes []int `json:"min_index_sizes"`
}

// BenchConfig configures the find benchmark workload.
type BenchConfig struct {
	Prefix     string   `json:"prefix"`
	Records    int      `json:"records"`
	RepeatEach int      `json:"repeat_each"`
	Baselines  []string `json:"baselines"`
}

// LoadError represents an error that occurred while loading a config file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the schema defaults.
func Default() (*Config, error) {
	return Load("")
}

// Load reads and validates the CUE file at path. An empty path yields the
// schema defaults.
func Load(path string) (*Config, error) {
	var src []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading config: %v", err)}
		}
		src = data
	}
	return parse(src, path)
}

// Parse validates config source held in memory. name is used in error
// positions only.
func Parse(src []byte, name string) (*Config, error) {
	return parse(src, name)
}

func parse(src []byte, name string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, newLoadError(ErrCodeSchema, "compiling schema", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileString("{}")
	if len(src) > 0 {
		user = ctx.CompileBytes(src, cue.Filename(name))
		if err := user.Err(); err != nil {
			return nil, newLoadError(ErrCodeLoad, "compiling config", err)
		}
	}

	value := def.Unify(user)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, newLoadError(ErrCodeValidate, "validating config", err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, newLoadError(ErrCodeDecode, "decoding config", err)
	}
	if len(cfg.Store.MinIndexSizes) == 0 {
		return nil, &LoadError{Code: ErrCodeValidate, Message: "store.min_index_sizes must not be empty"}
	}
	return &cfg, nil
}

// newLoadError converts a CUE error, keeping the position of its first
// underlying error.
func newLoadError(code, msg string, err error) *LoadError {
	le := &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", msg, err)}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		le.Pos = errs[0].Position()
	}
	return le
}

// HasBaseline reports whether name is listed in bench.baselines.
func (c *Config) HasBaseline(name string) bool {
	for _, b := range c.Bench.Baselines {
		if b == name {
			return true
		}
	}
	return false
}
