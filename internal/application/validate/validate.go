// Package validate holds the shared request validator. Each endpoint
// declares its constraints once, as struct tags on its request type, instead
// of repeating ad hoc checks in every handler.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^0\d{9}$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// lkphone: local ten-digit number starting with 0.
	_ = val.RegisterValidation("lkphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	// pastdate: YYYY-MM-DD, not in the future.
	_ = val.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		t, err := time.Parse("2006-01-02", fl.Field().String())
		if err != nil {
			return false
		}
		return !t.After(time.Now())
	})

	return val
}

// Struct validates a request DTO against its tags. The returned error is
// user-facing: one line naming the offending fields.
// PRE: s is a struct (or pointer to one) with validate tags
// POST: nil when every constraint holds
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "lkphone":
		return fmt.Sprintf("%s must be 10 digits starting with 0", fe.Field())
	case "pastdate":
		return fmt.Sprintf("%s must be a past date in YYYY-MM-DD format", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "len", "numeric":
		return fmt.Sprintf("%s is malformed", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
