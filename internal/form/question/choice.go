package question

import "github.com/google/uuid"

type MultipleChoice struct {
	question Question
	Choices  []Choice
}

func NewMultipleChoice(q Question, choices []Choice) MultipleChoice {
	return MultipleChoice{
		question: q,
		Choices:  choices,
	}
}

func (m MultipleChoice) Question() Question {
	return m.question
}

// Validate requires the raw value to be the id of one of this question's own
// choices. A question with zero choices rejects every non-empty value.
func (m MultipleChoice) Validate(rawValue string) error {
	if rawValue == "" {
		return nil
	}

	choiceID, err := uuid.Parse(rawValue)
	if err != nil {
		return ErrInvalidChoiceID{
			QuestionID: m.question.ID.String(),
			ChoiceID:   rawValue,
		}
	}

	if !m.Contains(choiceID) {
		return ErrInvalidChoiceID{
			QuestionID: m.question.ID.String(),
			ChoiceID:   choiceID.String(),
		}
	}

	return nil
}

func (m MultipleChoice) Contains(choiceID uuid.UUID) bool {
	for _, choice := range m.Choices {
		if choice.ID == choiceID {
			return true
		}
	}
	return false
}
