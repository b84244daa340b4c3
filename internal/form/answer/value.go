package answer

import (
	"formcraft/form-builder-backend/internal/form/question"

	"github.com/google/uuid"
)

// Value is a validated answer normalized for storage. Exactly one of the
// payload fields is meaningful, selected by Type.
type Value struct {
	Type     question.AnswerType
	Text     string
	Number   int64
	ChoiceID uuid.UUID
	FileID   uuid.UUID
}

// IsZero reports an absent value, produced when an optional question is
// submitted empty. Zero values are not persisted.
func (v Value) IsZero() bool {
	return v.Type == ""
}
