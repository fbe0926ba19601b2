package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// BirthDateLayout is the accepted format of birth dates.
const BirthDateLayout = "2006-01-02"

const minimumAge = 18

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator with the booking rules registered:
//   - adult: a birth date at least 18 years ago
//   - strongpwd: 8+ characters with an uppercase letter and a digit
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("adult", validateAdult)
	_ = v.RegisterValidation("strongpwd", validateStrongPassword)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eqfield":
		return field + " does not match"
	case "adult":
		return fmt.Sprintf("%s must be a %s date at least %d years ago", field, BirthDateLayout, minimumAge)
	case "strongpwd":
		return field + " must have at least 8 characters, one uppercase letter and one digit"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func validateAdult(fl validator.FieldLevel) bool {
	return isAdult(fl.Field().String(), time.Now())
}

func isAdult(birthDate string, now time.Time) bool {
	born, err := time.Parse(BirthDateLayout, birthDate)
	if err != nil {
		return false
	}
	return !born.AddDate(minimumAge, 0, 0).After(now)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return isStrongPassword(fl.Field().String())
}

func isStrongPassword(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}
	var upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}
