// Package validation holds the shared validator instance and the custom
// rules used by both the admin client and the catalog server.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// V returns the process wide validator with custom rules registered.
func V() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterValidation("memorytype", memoryTypeValidator)
	})
	return validate
}

// memoryTypeValidator checks that the field is one of the known memory types.
func memoryTypeValidator(fl validator.FieldLevel) bool {
	return types.MemoryType(fl.Field().String()).IsValid()
}

// Struct validates s and flattens field errors into a single message.
func Struct(s any) error {
	err := V().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "memorytype":
		return fmt.Sprintf("%s: unknown memory type %q", fe.Field(), fe.Value())
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s", fe.Field(), comparisonWord(fe.Tag()), fe.Param())
	case "max":
		return fmt.Sprintf("%s exceeds maximum length %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

func comparisonWord(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}
