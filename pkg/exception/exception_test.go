package exception

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViHackerErrorWrap(t *testing.T) {
	err := Wrap(io.EOF, "read body")
	assert.EqualError(t, err, "read body: EOF")
	assert.ErrorIs(t, err, io.EOF)

	assert.EqualError(t, New("plain"), "plain")
}

func TestRuntimeErrorDetail(t *testing.T) {
	err := NewRuntimef("order %d closed", 7).WithDetail("order 7 closed at 12:00")
	assert.EqualError(t, err, "order 7 closed")
	assert.Equal(t, "order 7 closed at 12:00", err.ErrorMsg)

	var target *RuntimeError
	require.True(t, errors.As(error(err), &target))
}

func TestAccessDeniedDefaultMessage(t *testing.T) {
	assert.EqualError(t, NewAccessDenied(""), "access denied")
	assert.EqualError(t, NewAccessDenied("admin only"), "admin only")
}

func TestValidationErrorStrings(t *testing.T) {
	bind := &BindError{Errors: []FieldError{{Field: "age", Message: "must be positive"}}}
	assert.EqualError(t, bind, "bind failed: age: must be positive")

	cv := &ConstraintViolationError{Violations: []ConstraintViolation{{PropertyPath: "get.id", Message: "must not be blank"}}}
	assert.EqualError(t, cv, "constraint violation: get.id: must not be blank")

	empty := &MethodArgumentNotValidError{}
	assert.EqualError(t, empty, "method argument not valid: ")
}
