package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/idxstore/internal/record"
)

var (
	// ErrInvalidInput is matched by every filter value parse failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig is returned for unusable store parameters.
	ErrInvalidConfig = errors.New("invalid store config")

	// ErrInconsistent is matched by every ConsistencyError.
	ErrInconsistent = errors.New("index inconsistent with storage")
)

// ParseError reports a filter value that cannot be parsed as the target
// column's type.
type ParseError struct {
	Column record.Column
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidInput) hold for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ConsistencyError lists every violated index/storage invariant found by
// CheckConsistency.
type ConsistencyError struct {
	Violations []string
}

func (e *ConsistencyError) Error() string {
	const maxShown = 5
	shown := e.Violations
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	msg := fmt.Sprintf("%d consistency violation(s): %s", len(e.Violations), strings.Join(shown, "; "))
	if len(e.Violations) > maxShown {
		msg += fmt.Sprintf("; and %d more", len(e.Violations)-maxShown)
	}
	return msg
}

func (e *ConsistencyError) Is(target error) bool {
	return target == ErrInconsistent
}
