package validation

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// FieldMessage converts a validator.FieldError to a human-readable message
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "positive_amount":
		return "must be a number greater than 0 with up to 2 decimal places"
	case "transaction_type":
		return "must be a valid transaction type (positive, negative)"
	case "selected_category":
		return "must be a selected category"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
