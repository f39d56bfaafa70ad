package retry

import "github.com/rohmanhakim/docs-crawler/pkg/failure"

// Result is the outcome of a retried call: the value on success, the final
// classified error on failure, and how many attempts it took either way.
type Result[T any] struct {
	value    T
	err      failure.ClassifiedError
	attempts int
}

// NewSuccessResult wraps a successful value and the attempt it succeeded on.
func NewSuccessResult[T any](value T, attempts int) Result[T] {
	return Result[T]{value: value, attempts: attempts}
}

// Value returns the call's result. It is the zero value when IsFailure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the final classified error, or nil on success.
func (r Result[T]) Err() failure.ClassifiedError {
	return r.err
}

// Attempts reports how many times fn was invoked.
func (r Result[T]) Attempts() int {
	return r.attempts
}

// IsSuccess reports whether the call completed without error.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// IsFailure reports whether the call ended in a classified error.
func (r Result[T]) IsFailure() bool {
	return r.err != nil
}
