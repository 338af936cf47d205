package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/vihackerframework/vihacker-go/pkg/exception"
)

var validate = newValidate()

// newValidate reuses gin's validator engine so `binding` struct tags and
// ValidateVar share one set of rules and field names.
func newValidate() *validator.Validate {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("binding")
	}
	v.RegisterTagNameFunc(fieldName)
	return v
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// BindJSON decodes the request body into obj and validates it. Validation
// failures are returned as *exception.MethodArgumentNotValidError.
func BindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &exception.MethodArgumentNotValidError{Errors: FieldErrors(verrs), Err: err}
	}
	return exception.Wrap(err, "malformed request body")
}

// BindQuery binds query parameters into obj and validates it. Validation
// failures are returned as *exception.BindError.
func BindQuery(c *gin.Context, obj any) error {
	err := c.ShouldBindQuery(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &exception.BindError{Errors: FieldErrors(verrs), Err: err}
	}
	return exception.Wrap(err, "malformed query parameters")
}

func FieldErrors(verrs validator.ValidationErrors) []exception.FieldError {
	out := make([]exception.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, exception.FieldError{Field: fe.Field(), Message: Message(fe)})
	}
	return out
}

// VarCheck is one simple parameter to validate with Vars.
type VarCheck struct {
	Param string
	Value any
	Tag   string
}

// ValidateVar validates a single parameter of method against tag.
func ValidateVar(method, param string, value any, tag string) error {
	return Vars(method, VarCheck{Param: param, Value: value, Tag: tag})
}

// Vars validates every check and collects the failures into one
// *exception.ConstraintViolationError with "method.param" paths.
func Vars(method string, checks ...VarCheck) error {
	var violations []exception.ConstraintViolation
	for _, check := range checks {
		err := validate.Var(check.Value, check.Tag)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return exception.Wrap(err, "invalid validation rule for "+check.Param)
		}
		for _, fe := range verrs {
			violations = append(violations, exception.ConstraintViolation{
				PropertyPath: method + "." + check.Param,
				Message:      Message(fe),
			})
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &exception.ConstraintViolationError{Violations: violations}
}
