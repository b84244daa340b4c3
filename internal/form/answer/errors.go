package answer

import (
	"fmt"

	"formcraft/form-builder-backend/internal"

	"github.com/google/uuid"
)

type ErrAlreadyAnswered struct {
	QuestionID uuid.UUID
}

func (e ErrAlreadyAnswered) Error() string {
	return fmt.Sprintf("question %s already answered in this response", e.QuestionID)
}

func (e ErrAlreadyAnswered) Unwrap() error {
	return internal.ErrDuplicateAnswer
}

type ErrTypeMismatch struct {
	QuestionID uuid.UUID
	Declared   string
	Actual     string
}

func (e ErrTypeMismatch) Error() string {
	return fmt.Sprintf("question %s expects answer type %q, got %q", e.QuestionID, e.Actual, e.Declared)
}

func (e ErrTypeMismatch) Unwrap() error {
	return internal.ErrTypeMismatch
}

type ErrValueRequired struct {
	QuestionID uuid.UUID
}

func (e ErrValueRequired) Error() string {
	return fmt.Sprintf("question %s is required", e.QuestionID)
}

func (e ErrValueRequired) Unwrap() error {
	return internal.ErrRequiredField
}
