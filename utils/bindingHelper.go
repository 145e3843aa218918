package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BindingErrorMessage flattens gin binding failures into one readable
// message. Tag-level failures name the offending field; anything else
// passes through as-is.
func BindingErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrors))
	for _, ve := range validationErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", ve.Field(), ve.Tag()))
	}
	return strings.Join(parts, "; ")
}
