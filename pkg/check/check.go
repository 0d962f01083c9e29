// Package check holds the development-time side of the result convention:
// return-value shape checking and assertions, each behind a process-wide
// toggle resolved once from the environment. With the toggles off, every
// entry point here is a no-op and wrapped functions are returned untouched.
//
// A failed check is a programming bug, never a runtime condition. It aborts
// locally with a panic instead of being folded into an Err result, so
// contract violations cannot be mistaken for validation failures.
package check

import (
	"os"
	"strconv"
	"sync"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/checked/pkg/result"
	"github.com/Philanthropists/checked/pkg/shape"
)

// Environment variables controlling the toggles. Values are parsed with
// strconv.ParseBool; unset or unparsable means disabled. Each is read once,
// on first use, and never re-read.
const (
	ShapeChecksEnv = "CHECKED_SHAPE_CHECKS"
	AssertionsEnv  = "CHECKED_ASSERTIONS"
)

// ErrAssertion classifies the panic payload of a failed assertion.
var ErrAssertion = errs.Class("assertion failed")

var (
	toggleOnce  sync.Once
	shapeChecks bool
	assertions  bool
)

func loadToggles() {
	toggleOnce.Do(func() {
		shapeChecks = envBool(ShapeChecksEnv)
		assertions = envBool(AssertionsEnv)
	})
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

// ShapeChecksEnabled reports whether return-value shape checking is active.
func ShapeChecksEnabled() bool {
	loadToggles()
	return shapeChecks
}

// AssertionsEnabled reports whether assertions are active.
func AssertionsEnabled() bool {
	loadToggles()
	return assertions
}

// Value passes r through unchanged when shape checking is disabled or r is
// already failed. When enabled, the Ok value is checked against s before it
// reaches the caller; a mismatch panics with a shape.ErrMismatch error.
func Value[T any](s shape.Shape, r result.Result[T]) result.Result[T] {
	if !ShapeChecksEnabled() || r.IsErr() {
		return r
	}

	if err := s.Check(r.Value()); err != nil {
		panic(err)
	}

	return r
}

// Func0 wraps a nullary function so its Ok return value is shape checked.
// With shape checking disabled, fn itself is returned.
func Func0[T any](s shape.Shape, fn func() result.Result[T]) func() result.Result[T] {
	if !ShapeChecksEnabled() {
		return fn
	}

	return func() result.Result[T] {
		return Value(s, fn())
	}
}

// Func wraps a unary function so its Ok return value is shape checked. With
// shape checking disabled, fn itself is returned.
func Func[A, T any](s shape.Shape, fn func(A) result.Result[T]) func(A) result.Result[T] {
	if !ShapeChecksEnabled() {
		return fn
	}

	return func(a A) result.Result[T] {
		return Value(s, fn(a))
	}
}

// Func2 is Func for binary functions.
func Func2[A, B, T any](s shape.Shape, fn func(A, B) result.Result[T]) func(A, B) result.Result[T] {
	if !ShapeChecksEnabled() {
		return fn
	}

	return func(a A, b B) result.Result[T] {
		return Value(s, fn(a, b))
	}
}

// Assert panics with an ErrAssertion error when assertions are enabled and
// cond is false. Otherwise it does nothing.
func Assert(cond bool, msg string, args ...any) {
	if cond || !AssertionsEnabled() {
		return
	}

	panic(ErrAssertion.New(msg, args...))
}
