// Package result implements the ok/err result-passing convention: functions
// return a Result carrying either a value or an error instead of signaling
// failure through panics. Callers branch on the tag right after the call.
package result

import (
	"fmt"

	"github.com/zeebo/errs"
)

// InvalidState classifies misuse of a Result, such as reading the value of a
// failed result or the error of a successful one.
var InvalidState = errs.Class("invalid result state")

// Result holds either a value or an error, never both. A Result is immutable
// after construction; err == nil means the value may be read.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful result carrying value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err returns a failed result with a formatted message.
func Err[T any](msg string, args ...any) Result[T] {
	return Result[T]{err: errs.New(msg, args...)}
}

// ErrCause returns a failed result whose message wraps cause, so errors.Is
// and errors.As still reach it.
func ErrCause[T any](cause error, msg string, args ...any) Result[T] {
	wrapped := fmt.Errorf(msg+": %w", append(args, cause)...)
	return Result[T]{err: errs.Wrap(wrapped)}
}

// Of adapts a conventional (value, error) pair. A nil error yields an Ok
// carrying value.
func Of[T any](value T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: value}
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Value returns the carried value. It is only meaningful when Err returns
// nil; use Unwrap or MustValue when that is not already established.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the carried error, nil for a successful result.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns the value and error as a conventional pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// MustValue returns the carried value. It panics with an InvalidState error
// when called on a failed result.
func (r Result[T]) MustValue() T {
	if r.err != nil {
		panic(InvalidState.New("value read from a failed result: %v", r.err))
	}
	return r.value
}

// MustErr returns the carried error. It panics with an InvalidState error
// when called on a successful result.
func (r Result[T]) MustErr() error {
	if r.err == nil {
		panic(InvalidState.New("error read from a successful result"))
	}
	return r.err
}

func (r Result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Err(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}
