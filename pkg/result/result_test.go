package result_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/errs"

	"github.com/Philanthropists/checked/pkg/result"
)

func recoveredError(t *testing.T, fn func()) (err error) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")

		var ok bool
		err, ok = r.(error)
		require.True(t, ok, "panic payload should be an error, got %T", r)
	}()

	fn()
	return nil
}

func Test_OkCarriesValueUnchanged(t *testing.T) {
	values := []any{5, "text", 3.14, []int{1, 2, 3}, nil}

	for _, v := range values {
		r := result.Ok(v)

		assert.True(t, r.IsOk())
		assert.False(t, r.IsErr())
		assert.Equal(t, v, r.MustValue())
		assert.NoError(t, r.Err())

		got, err := r.Unwrap()
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func Test_ErrCarriesMessage(t *testing.T) {
	r := result.Err[int]("division by zero")

	assert.True(t, r.IsErr())
	assert.False(t, r.IsOk())
	assert.EqualError(t, r.MustErr(), "division by zero")

	_, err := r.Unwrap()
	assert.EqualError(t, err, "division by zero")
}

func Test_ErrFormatsMessage(t *testing.T) {
	r := result.Err[string]("field %q is empty", "email")

	assert.EqualError(t, r.MustErr(), `field "email" is empty`)
}

func Test_MustValueOnFailedResultPanicsWithInvalidState(t *testing.T) {
	r := result.Err[int]("bad")

	err := recoveredError(t, func() {
		_ = r.MustValue()
	})
	assert.True(t, result.InvalidState.Has(err))
}

func Test_MustErrOnSuccessfulResultPanicsWithInvalidState(t *testing.T) {
	r := result.Ok("good")

	err := recoveredError(t, func() {
		_ = r.MustErr()
	})
	assert.True(t, result.InvalidState.Has(err))
}

func Test_ErrCauseKeepsCauseReachable(t *testing.T) {
	cause := errs.New("connection refused")
	r := result.ErrCause[int](cause, "lookup for %s failed", "user-1")

	require.True(t, r.IsErr())
	assert.ErrorIs(t, r.Err(), cause)
	assert.Contains(t, r.Err().Error(), "lookup for user-1 failed")
	assert.Contains(t, r.Err().Error(), "connection refused")
}

func Test_OfAdaptsConventionalPairs(t *testing.T) {
	okRes := result.Of(42, nil)
	assert.True(t, okRes.IsOk())
	assert.Equal(t, 42, okRes.MustValue())

	failure := errors.New("boom")
	errRes := result.Of(0, failure)
	assert.True(t, errRes.IsErr())
	assert.ErrorIs(t, errRes.Err(), failure)
}

func Test_StringRendersTag(t *testing.T) {
	assert.Equal(t, "Ok(5)", result.Ok(5).String())
	assert.Equal(t, "Err(no luck)", result.Err[int]("no luck").String())
}

func Test_ZeroValueIsOk(t *testing.T) {
	var r result.Result[int]

	assert.True(t, r.IsOk())
	assert.Zero(t, r.MustValue())
}
