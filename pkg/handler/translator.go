// Package handler translates errors raised by request handlers into the
// uniform result envelope.
//
// The Translator is stateless once built and is mounted on a gin engine with
// Middleware. Handlers report failures with c.Error(err) or by panicking; the
// middleware picks the matching branch for the error kind, logs it and writes
// the envelope. Errors of an unknown kind are left to gin's defaults.
package handler

import (
	"errors"
	"net/http"
	"runtime"
	"strings"

	"github.com/vihackerframework/vihacker-go/model"
	"github.com/vihackerframework/vihacker-go/pkg/common_err"
	"github.com/vihackerframework/vihacker-go/pkg/exception"
	"github.com/vihackerframework/vihacker-go/pkg/utils/logger"
	"go.uber.org/zap"
)

// StatusFunc picks the HTTP status written alongside a translated result.
type StatusFunc func(result model.Result) int

type Option func(*Translator)

type Translator struct {
	log        *zap.Logger
	statusFunc StatusFunc
}

// NewTranslator builds a Translator logging through the process logger and
// answering every translated error with HTTP 200.
func NewTranslator(opts ...Option) *Translator {
	t := &Translator{
		log:        logger.L(),
		statusFunc: AlwaysOK,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func WithLogger(l *zap.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.log = l
		}
	}
}

// WithStatusFunc replaces the HTTP status policy. CodeStatus maps the
// envelope code onto the transport status instead of always answering 200.
func WithStatusFunc(f StatusFunc) Option {
	return func(t *Translator) {
		if f != nil {
			t.statusFunc = f
		}
	}
}

func AlwaysOK(model.Result) int { return http.StatusOK }

func CodeStatus(result model.Result) int {
	if text := http.StatusText(result.Code); text != "" {
		return result.Code
	}
	return http.StatusInternalServerError
}

// Handle converts err into a result. The error chain is walked from the
// outside in and the first recognised kind decides the branch. The boolean is
// false when no kind matched.
func (t *Translator) Handle(err error) (model.Result, bool) {
	for e := err; e != nil; e = unwrapFirst(e) {
		if result, ok := t.dispatch(e); ok {
			return result, true
		}
	}
	return model.Result{}, false
}

func (t *Translator) dispatch(err error) (model.Result, bool) {
	switch e := err.(type) {
	case *exception.ViHackerError:
		t.log.Error("system error", zap.Error(e))
		if e.Message == "" {
			return model.Failed(e.Error()), true
		}
		return model.Failed(e.Message), true

	case *exception.RuntimeError:
		t.log.Error("business error", zap.String("reason", e.ErrorMsg), zap.Error(e))
		return model.Failed(e.Error()), true

	case *exception.NilPointerError:
		t.log.Error("nil pointer fault", zap.Any("cause", e.Cause), zap.Stack("stack"))
		return model.FailedWith(common_err.BODY_NOT_MATCH), true

	case runtime.Error:
		if !isNilDereference(e) {
			return model.Result{}, false
		}
		t.log.Error("nil pointer fault", zap.Error(e))
		return model.FailedWith(common_err.BODY_NOT_MATCH), true

	case *exception.MethodArgumentNotValidError:
		t.log.Error("invalid method argument", zap.Any("errors", e.Errors))
		return model.Failed(methodArgumentMessage(e.Errors)), true

	case *exception.BindError:
		t.log.Warn("bind failed", zap.Any("errors", e.Errors))
		return model.Failed(bindMessage(e.Errors)), true

	case *exception.ConstraintViolationError:
		t.log.Warn("constraint violation", zap.Any("violations", e.Violations))
		return model.Failed(violationMessage(e.Violations)), true

	case *exception.AuthError:
		t.log.Error("auth error", zap.Error(e))
		return model.Failed(e.Error()), true

	case *exception.ValidateCodeError:
		t.log.Error("validate code error", zap.Error(e))
		return model.Failed(e.Error()), true

	case *exception.AccessDeniedError:
		t.log.Warn("access denied", zap.String("reason", e.Error()))
		return model.FailedWith(common_err.FORBIDDEN), true
	}
	return model.Result{}, false
}

func methodArgumentMessage(errs []exception.FieldError) string {
	var b strings.Builder
	for _, fe := range errs {
		b.WriteString(fe.Message)
		b.WriteString("!")
	}
	return b.String()
}

func bindMessage(errs []exception.FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fe.Field+fe.Message)
	}
	return strings.Join(parts, ",")
}

func violationMessage(violations []exception.ConstraintViolation) string {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, paramName(v.PropertyPath)+v.Message)
	}
	return strings.Join(parts, ",")
}

// paramName returns the second segment of a "method.param" path, or the whole
// path when it has no second segment.
func paramName(path string) string {
	segments := strings.Split(path, ".")
	if len(segments) < 2 {
		return path
	}
	return segments[1]
}

func unwrapFirst(err error) error {
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return u.Unwrap()
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if e != nil {
				return e
			}
		}
	}
	return nil
}

func isNilDereference(err error) bool {
	var re runtime.Error
	return errors.As(err, &re) && strings.Contains(re.Error(), "nil pointer dereference")
}
