package handler

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// oneOf accepts values from a space separated list, e.g. oneOf=one-time recurring
func oneOf(fl validator.FieldLevel) bool {
	return slices.Contains(strings.Fields(fl.Param()), fl.Field().String())
}

// fieldName reports fields by the name clients send, json first and form second.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// RegisterValidation registers the custom validations on gin's validator. It has to run before any request is
// bound.
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("error getting validation engine")
	}

	v.RegisterTagNameFunc(fieldName)
	return v.RegisterValidation("oneOf", oneOf)
}
