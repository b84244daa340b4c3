package internal

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// PhoneRegex is the single phone shape rule: optional leading +, optional
// country digit 1, then 9 to 15 digits. Request DTOs and the phone answer
// field both check against it.
var PhoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)

func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return PhoneRegex.MatchString(value)
	})

	return v
}

func ValidateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err != nil {
		return err
	}
	return nil
}
