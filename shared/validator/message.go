package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"url":         "{field} must be a valid URL",
	"oneof":       "{field} must be one of {param}",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"max":         "{field} must be less than or equal to {param}",
	"dive":        "{field} contains an invalid value",
	"empty":       "{field} must be empty",
	"mimetypes":   "{field} must be one of the following types: {param}",
	"maxfilesize": "{field} must not be larger than {param} MB",
}

// length rules read differently on strings and slices.
var lengthMessages = map[string]string{
	"min": "{field} must have at least {param} characters",
	"max": "{field} must have at most {param} characters",
}

// message renders every failed rule, one clause per field, joined by "; ".
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	clauses := make([]string, 0, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		clauses = append(clauses, describe(fieldErr))
	}

	return strings.Join(clauses, "; ")
}

func describe(fieldErr val.FieldError) string {
	template, ok := messages[fieldErr.Tag()]
	if lengthTemplate, isLength := lengthMessages[fieldErr.Tag()]; isLength && fieldErr.Kind() == reflect.String {
		template, ok = lengthTemplate, true
	}

	if !ok {
		return fieldErr.Error()
	}

	return strings.NewReplacer("{field}", fieldName(fieldErr), "{param}", fieldErr.Param()).Replace(template)
}

// fieldName keeps the path below the top level struct, e.g. "amenities[1]".
func fieldName(fieldErr val.FieldError) string {
	namespace := fieldErr.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}

	return fieldErr.Field()
}
