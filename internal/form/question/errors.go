package question

import (
	"fmt"

	"formcraft/form-builder-backend/internal"
)

type ErrInvalidAnswerLength struct {
	QuestionID string
	Limit      int
	Given      int
}

func (e ErrInvalidAnswerLength) Error() string {
	return fmt.Sprintf("answer for question %s exceeds %d characters, got %d", e.QuestionID, e.Limit, e.Given)
}

func (e ErrInvalidAnswerLength) Unwrap() error {
	return internal.ErrInvalidFormat
}

type ErrInvalidEmailFormat struct {
	QuestionID string
	Value      string
}

func (e ErrInvalidEmailFormat) Error() string {
	return fmt.Sprintf("invalid email for question %s: %s", e.QuestionID, e.Value)
}

func (e ErrInvalidEmailFormat) Unwrap() error {
	return internal.ErrInvalidFormat
}

type ErrInvalidPhoneNumberFormat struct {
	QuestionID string
	Value      string
}

func (e ErrInvalidPhoneNumberFormat) Error() string {
	return fmt.Sprintf("invalid phone number for question %s: %s", e.QuestionID, e.Value)
}

func (e ErrInvalidPhoneNumberFormat) Unwrap() error {
	return internal.ErrInvalidFormat
}

type ErrInvalidNumberFormat struct {
	QuestionID string
	Value      string
}

func (e ErrInvalidNumberFormat) Error() string {
	return fmt.Sprintf("answer for question %s is not an integer: %s", e.QuestionID, e.Value)
}

func (e ErrInvalidNumberFormat) Unwrap() error {
	return internal.ErrInvalidFormat
}

type ErrInvalidChoiceID struct {
	QuestionID string
	ChoiceID   string
}

func (e ErrInvalidChoiceID) Error() string {
	return fmt.Sprintf("choice %s does not belong to question %s", e.ChoiceID, e.QuestionID)
}

func (e ErrInvalidChoiceID) Unwrap() error {
	return internal.ErrInvalidChoice
}

type ErrInvalidFileID struct {
	QuestionID string
	Value      string
}

func (e ErrInvalidFileID) Error() string {
	return fmt.Sprintf("answer for question %s is not a valid file reference: %s", e.QuestionID, e.Value)
}

func (e ErrInvalidFileID) Unwrap() error {
	return internal.ErrInvalidFormat
}

type ErrUnsupportedAnswerType struct {
	AnswerType string
}

func (e ErrUnsupportedAnswerType) Error() string {
	return fmt.Sprintf("unsupported answer type: %s", e.AnswerType)
}

func (e ErrUnsupportedAnswerType) Unwrap() error {
	return internal.ErrUnsupportedType
}

type ErrChoicesNotAllowed struct {
	AnswerType string
}

func (e ErrChoicesNotAllowed) Error() string {
	return fmt.Sprintf("choices are only allowed on multiple-choice questions, got type %s", e.AnswerType)
}

func (e ErrChoicesNotAllowed) Unwrap() error {
	return internal.ErrInvalidSchema
}
