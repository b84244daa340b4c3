package question

import "unicode/utf8"

// ShortTextMaxLength bounds short answers the way the storage column does.
const ShortTextMaxLength = 256

type LongText struct {
	question Question
}

func NewLongText(q Question) LongText {
	return LongText{question: q}
}

func (l LongText) Question() Question {
	return l.question
}

// Validate accepts any free text; long answers are unbounded.
func (l LongText) Validate(rawValue string) error {
	return nil
}

type ShortText struct {
	question Question
}

func NewShortText(q Question) ShortText {
	return ShortText{question: q}
}

func (s ShortText) Question() Question {
	return s.question
}

func (s ShortText) Validate(rawValue string) error {
	// The column limit counts characters, not bytes.
	if n := utf8.RuneCountInString(rawValue); n > ShortTextMaxLength {
		return ErrInvalidAnswerLength{
			QuestionID: s.question.ID.String(),
			Limit:      ShortTextMaxLength,
			Given:      n,
		}
	}

	return nil
}
