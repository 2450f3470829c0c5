package hash

import (
	"errors"
	"fmt"
)

var (
	// ErrHasherFinalized is returned when data is written to, or a digest is
	// requested from, a hasher whose digest has already been produced.
	// The hasher must be Reset before it can be used again.
	ErrHasherFinalized = errors.New("hasher is finalized")

	// ErrInvalidState is returned when an exported hasher state can't be restored.
	ErrInvalidState = errors.New("invalid hasher state")
)

// FinalizedError indicates a use of a hasher in its finalized state.
// It always wraps ErrHasherFinalized.
type FinalizedError struct {
	err error
}

// NewFinalizedErrorf constructs a FinalizedError describing the rejected operation.
func NewFinalizedErrorf(msg string, args ...interface{}) error {
	return FinalizedError{
		err: fmt.Errorf("%s: %w", fmt.Sprintf(msg, args...), ErrHasherFinalized),
	}
}

func (e FinalizedError) Error() string { return e.err.Error() }
func (e FinalizedError) Unwrap() error { return e.err }

// IsFinalizedError returns whether err is a FinalizedError
func IsFinalizedError(err error) bool {
	var e FinalizedError
	return errors.As(err, &e)
}

// InvalidOutputLengthError is returned when the output buffer handed to a hasher
// doesn't have the exact digest length of the hashing algorithm.
type InvalidOutputLengthError struct {
	Algorithm HashingAlgorithm
	Expected  int
	Got       int
}

// NewInvalidOutputLengthError constructs a new InvalidOutputLengthError
func NewInvalidOutputLengthError(algo HashingAlgorithm, expected, got int) error {
	return InvalidOutputLengthError{
		Algorithm: algo,
		Expected:  expected,
		Got:       got,
	}
}

func (e InvalidOutputLengthError) Error() string {
	return fmt.Sprintf("invalid %s output length: expected %d bytes, got %d", e.Algorithm, e.Expected, e.Got)
}

// IsInvalidOutputLengthError returns whether err is an InvalidOutputLengthError
func IsInvalidOutputLengthError(err error) bool {
	var e InvalidOutputLengthError
	return errors.As(err, &e)
}

// InvalidAlgorithmError indicates that a hashing algorithm is not supported.
type InvalidAlgorithmError struct {
	err error
}

// NewInvalidAlgorithmErrorf constructs a new InvalidAlgorithmError
func NewInvalidAlgorithmErrorf(msg string, args ...interface{}) error {
	return InvalidAlgorithmError{
		err: fmt.Errorf(msg, args...),
	}
}

func (e InvalidAlgorithmError) Error() string { return e.err.Error() }
func (e InvalidAlgorithmError) Unwrap() error { return e.err }

// IsInvalidAlgorithmError returns whether err is an InvalidAlgorithmError
func IsInvalidAlgorithmError(err error) bool {
	var e InvalidAlgorithmError
	return errors.As(err, &e)
}
