package question

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMultipleChoice_Validate(t *testing.T) {
	q := Question{ID: uuid.New(), AnswerType: AnswerTypeMultipleChoice}
	first := Choice{ID: uuid.New(), QuestionID: q.ID, Title: "Red"}
	second := Choice{ID: uuid.New(), QuestionID: q.ID, Title: "Blue"}
	mc := NewMultipleChoice(q, []Choice{first, second})

	tests := []struct {
		name        string
		rawValue    string
		shouldError bool
	}{
		{
			name:        "Should accept the first choice",
			rawValue:    first.ID.String(),
			shouldError: false,
		},
		{
			name:        "Should accept the second choice",
			rawValue:    second.ID.String(),
			shouldError: false,
		},
		{
			name:        "Should accept empty string",
			rawValue:    "",
			shouldError: false,
		},
		{
			name:        "Should reject a choice from another question",
			rawValue:    uuid.New().String(),
			shouldError: true,
		},
		{
			name:        "Should reject a value that is not a uuid",
			rawValue:    "Red",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mc.Validate(tt.rawValue)

			if tt.shouldError {
				if err == nil {
					t.Errorf("Expected error but got nil")
					return
				}
				var choiceErr ErrInvalidChoiceID
				if !errors.As(err, &choiceErr) {
					t.Errorf("Expected ErrInvalidChoiceID, got %T", err)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestMultipleChoice_Validate_NoChoices(t *testing.T) {
	mc := NewMultipleChoice(Question{ID: uuid.New(), AnswerType: AnswerTypeMultipleChoice}, nil)

	if err := mc.Validate(uuid.New().String()); err == nil {
		t.Errorf("Expected error for a question with no choices")
	}
}
