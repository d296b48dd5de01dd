package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var fieldMessages = map[string]string{
	"productName":        "Product name is required",
	"productDescription": "Product description is required",
	"status":             "Invalid status",
	"stock":              "Stock must be a non-negative integer",
	"price":              "Price must be a non-negative number",
	"discount_type":      "Discount type must be valid value",
}

// FieldError describes one rejected input field.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path,omitempty"`
	Location string `json:"location"`
}

// RequestValidator plugs go-playground/validator into echo.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// ValidateParam checks a single path parameter against tag.
func (v *RequestValidator) ValidateParam(name, value, tag string) []FieldError {
	if err := v.validate.Var(value, tag); err != nil {
		return []FieldError{{Type: "field", Value: value, Msg: "Invalid value", Path: name, Location: "params"}}
	}
	return nil
}

// fieldErrors converts a validation failure into the response error list.
func fieldErrors(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Type: "field", Msg: "Invalid request payload", Location: "body"}}
	}

	out := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		out = append(out, FieldError{
			Type:     "field",
			Value:    fieldValue(fe.Value()),
			Msg:      msg,
			Path:     fe.Field(),
			Location: "body",
		})
	}
	return out
}

// fieldValue dereferences optional fields so the response shows the value sent.
func fieldValue(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return v
}
