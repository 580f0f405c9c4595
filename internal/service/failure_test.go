package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCause_CodeAndMessage(t *testing.T) {
	tests := []struct {
		cause Cause
		code  int
		msg   string
	}{
		{ErrNotFound, 1, "File not found"},
		{ErrHashMismatch, 2, "Hash does not match"},
		{ErrAlreadyExists, 3, "File with the same MD5 already exists"},
		{ErrDBError, 4, "Exception occurs when connecting database"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.cause.Code())
			assert.Equal(t, tt.msg, tt.cause.Message())
			assert.Equal(t, tt.msg, tt.cause.Error())
		})
	}
	assert.Equal(t, "unknown failure 9", Cause(9).Message())
}

func TestFailure_Unwrap(t *testing.T) {
	backend := errors.New("connection refused")
	f := fail(ErrDBError, backend, "AAA")

	assert.True(t, errors.Is(f, ErrDBError))
	assert.False(t, errors.Is(f, ErrNotFound))
	assert.True(t, errors.Is(f, backend))
	assert.Equal(t, "Exception occurs when connecting database (AAA): connection refused", f.Error())

	var got *Failure
	assert.True(t, errors.As(errors.Join(errors.New("outer"), f), &got))
	assert.Equal(t, ErrDBError, got.Cause)

	plain := fail(ErrNotFound, nil, "A", "B")
	assert.True(t, errors.Is(plain, ErrNotFound))
	assert.Equal(t, "File not found (A, B)", plain.Error())
}
