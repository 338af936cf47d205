// Package exception defines the error kinds recognised by the global
// exception translator in pkg/handler.
package exception

import (
	"fmt"
	"strings"
)

// ViHackerError is the framework base error.
type ViHackerError struct {
	Message string
	Err     error
}

func New(message string) *ViHackerError {
	return &ViHackerError{Message: message}
}

func Wrap(err error, message string) *ViHackerError {
	return &ViHackerError{Message: message, Err: err}
}

func (e *ViHackerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ViHackerError) Unwrap() error { return e.Err }

// RuntimeError is a business-rule error. ErrorMsg carries the detail that is
// logged but not necessarily shown to the caller.
type RuntimeError struct {
	Message  string
	ErrorMsg string
	Err      error
}

func NewRuntime(message string) *RuntimeError {
	return &RuntimeError{Message: message, ErrorMsg: message}
}

func NewRuntimef(format string, args ...any) *RuntimeError {
	return NewRuntime(fmt.Sprintf(format, args...))
}

// WrapRuntime reports message to the caller and logs err as the detail.
func WrapRuntime(err error, message string) *RuntimeError {
	e := &RuntimeError{Message: message, ErrorMsg: message, Err: err}
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

func (e *RuntimeError) WithDetail(detail string) *RuntimeError {
	e.ErrorMsg = detail
	return e
}

func (e *RuntimeError) Error() string { return e.Message }

func (e *RuntimeError) Unwrap() error { return e.Err }

// NilPointerError wraps a recovered nil dereference.
type NilPointerError struct {
	Cause any
}

func (e *NilPointerError) Error() string {
	return fmt.Sprintf("nil pointer fault: %v", e.Cause)
}

// AuthError reports an authentication or authorization failure.
type AuthError struct {
	Message string
	Err     error
}

func NewAuth(message string, err error) *AuthError {
	return &AuthError{Message: message, Err: err}
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// ValidateCodeError reports a wrong or expired verification code.
type ValidateCodeError struct {
	Message string
}

func NewValidateCode(message string) *ValidateCodeError {
	return &ValidateCodeError{Message: message}
}

func (e *ValidateCodeError) Error() string { return e.Message }

// AccessDeniedError is rendered with the fixed FORBIDDEN code; its message is
// only logged.
type AccessDeniedError struct {
	Message string
}

func NewAccessDenied(message string) *AccessDeniedError {
	return &AccessDeniedError{Message: message}
}

func (e *AccessDeniedError) Error() string {
	if e.Message == "" {
		return "access denied"
	}
	return e.Message
}

// FieldError is a validation failure tied to one named input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MethodArgumentNotValidError reports request-body validation failures.
type MethodArgumentNotValidError struct {
	Errors []FieldError
	Err    error
}

func (e *MethodArgumentNotValidError) Error() string {
	return "method argument not valid: " + joinFieldErrors(e.Errors)
}

func (e *MethodArgumentNotValidError) Unwrap() error { return e.Err }

// BindError reports validation failures of an object bound from query or form
// parameters.
type BindError struct {
	Errors []FieldError
	Err    error
}

func (e *BindError) Error() string {
	return "bind failed: " + joinFieldErrors(e.Errors)
}

func (e *BindError) Unwrap() error { return e.Err }

// ConstraintViolation is a validation failure of a simple parameter. The
// property path has the form "method.param".
type ConstraintViolation struct {
	PropertyPath string `json:"property_path"`
	Message      string `json:"message"`
}

// ConstraintViolationError reports simple-parameter validation failures.
type ConstraintViolationError struct {
	Violations []ConstraintViolation
}

func (e *ConstraintViolationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.PropertyPath+": "+v.Message)
	}
	return "constraint violation: " + strings.Join(parts, ", ")
}

func joinFieldErrors(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, ", ")
}
