package question

import (
	"formcraft/form-builder-backend/internal"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

type EmailField struct {
	question Question
}

func NewEmailField(q Question) EmailField {
	return EmailField{question: q}
}

func (e EmailField) Question() Question {
	return e.question
}

func (e EmailField) Validate(rawValue string) error {
	if rawValue == "" {
		return nil
	}

	if err := emailValidator.Var(rawValue, "email"); err != nil {
		return ErrInvalidEmailFormat{
			QuestionID: e.question.ID.String(),
			Value:      rawValue,
		}
	}

	return nil
}

type PhoneNumberField struct {
	question Question
}

func NewPhoneNumberField(q Question) PhoneNumberField {
	return PhoneNumberField{question: q}
}

func (p PhoneNumberField) Question() Question {
	return p.question
}

func (p PhoneNumberField) Validate(rawValue string) error {
	if rawValue == "" {
		return nil
	}

	if !internal.PhoneRegex.MatchString(rawValue) {
		return ErrInvalidPhoneNumberFormat{
			QuestionID: p.question.ID.String(),
			Value:      rawValue,
		}
	}

	return nil
}
