package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors 字段级校验错误，形如 {"username": ["This field is required."]}
type FieldErrors map[string][]string

// Add 追加一条字段错误
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// ValidationErrors 把 validator 的校验结果整理成字段级错误表
func ValidationErrors(err error) FieldErrors {
	result := FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result.Add("non_field_errors", "Invalid request body.")
		return result
	}

	for _, fe := range verrs {
		result.Add(strings.ToLower(fe.Field()), fieldMessage(fe))
	}
	return result
}

// fieldMessage 按校验标签给出错误文案
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "uuid4", "uuid":
		return "Must be a valid UUID."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	default:
		return "This field is invalid."
	}
}
