package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a query references a variable or outcome the network does not define.
var ErrNotFound = errors.New("not found")

// ErrMalformedNetwork is returned when a network definition is structurally inconsistent
// (CPT size, domain cardinality, unknown parents, cycles, duplicate names).
var ErrMalformedNetwork = errors.New("malformed network")

// ErrInvalidElimination is returned when an elimination step has no factor to fold.
// It means the caller-supplied elimination order does not fit the network structure.
var ErrInvalidElimination = errors.New("invalid elimination")

// ErrUndefinedProbability is reported when an answer is not a finite number. It happens
// when the evidence itself has probability zero and normalization divides by zero.
var ErrUndefinedProbability = errors.New("undefined probability")

// NetworkError collects every problem found while building a network.
// It matches ErrMalformedNetwork under errors.Is.
type NetworkError struct {
	Problems []string
}

func (e *NetworkError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", ErrMalformedNetwork, e.Problems[0])
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d problems:\n", ErrMalformedNetwork, len(e.Problems))
	for i, p := range e.Problems {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, p)
	}
	return sb.String()
}

func (e *NetworkError) Unwrap() error {
	return ErrMalformedNetwork
}

// Problems returns the individual problems if err is a NetworkError.
// Otherwise returns nil.
func Problems(err error) []string {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Problems
	}
	return nil
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// ErrCacheMiss is returned by a ResultCache when no answer is stored under the key.
var ErrCacheMiss = errors.New("cache miss")
