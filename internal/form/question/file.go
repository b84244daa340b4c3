package question

import "github.com/google/uuid"

// FileField answers carry an opaque file reference; the engine checks the
// referenced record exists, this only checks the reference shape.
type FileField struct {
	question Question
}

func NewFileField(q Question) FileField {
	return FileField{question: q}
}

func (f FileField) Question() Question {
	return f.question
}

func (f FileField) Validate(rawValue string) error {
	if rawValue == "" {
		return nil
	}

	if _, err := uuid.Parse(rawValue); err != nil {
		return ErrInvalidFileID{
			QuestionID: f.question.ID.String(),
			Value:      rawValue,
		}
	}

	return nil
}
