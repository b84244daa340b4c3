package question

import "strconv"

type NumberField struct {
	question Question
}

func NewNumberField(q Question) NumberField {
	return NumberField{question: q}
}

func (n NumberField) Question() Question {
	return n.question
}

func (n NumberField) Validate(rawValue string) error {
	if rawValue == "" {
		return nil
	}

	if _, err := strconv.ParseInt(rawValue, 10, 64); err != nil {
		return ErrInvalidNumberFormat{
			QuestionID: n.question.ID.String(),
			Value:      rawValue,
		}
	}

	return nil
}
