package handler

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	messagesMu sync.RWMutex
	// keys are either "tag" or "tag=param"; %s receives the param
	messages = map[string]string{
		"required": "must not be blank",
		"gt=0":     "must be positive",
		"gte=0":    "must be positive or zero",
		"lt=0":     "must be negative",
		"gt":       "must be greater than %s",
		"gte":      "must be greater than or equal to %s",
		"lt":       "must be less than %s",
		"lte":      "must be less than or equal to %s",
		"min":      "must not be less than %s",
		"max":      "must not be greater than %s",
		"len":      "length must be %s",
		"oneof":    "must be one of [%s]",
		"email":    "must be a well-formed email address",
		"url":      "must be a valid URL",
		"uuid":     "must be a valid UUID",
		"uuid4":    "must be a valid UUID",
		"numeric":  "must be numeric",
		"alphanum": "must be alphanumeric",
	}
)

// RegisterMessage sets the default message for a validation tag. key is
// either a tag ("max") or a tag with its parameter ("gt=0"); a %s verb in
// text is replaced with the parameter.
func RegisterMessage(key, text string) {
	messagesMu.Lock()
	defer messagesMu.Unlock()
	messages[key] = text
}

// Message returns the default message for a validation failure.
func Message(fe validator.FieldError) string {
	messagesMu.RLock()
	defer messagesMu.RUnlock()

	if fe.Param() != "" {
		if text, ok := messages[fe.Tag()+"="+fe.Param()]; ok {
			return text
		}
	}
	text, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	if strings.Contains(text, "%s") {
		return fmt.Sprintf(text, fe.Param())
	}
	return text
}
