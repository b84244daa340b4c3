package question

// AnswerType enumerates the closed set of answer kinds a question can declare.
// The wire codes match the storage values.
type AnswerType string

const (
	AnswerTypeLong           AnswerType = "long"
	AnswerTypeShort          AnswerType = "short"
	AnswerTypeMultipleChoice AnswerType = "multi"
	AnswerTypeEmail          AnswerType = "email"
	AnswerTypePhoneNumber    AnswerType = "phone-no"
	AnswerTypeNumber         AnswerType = "number"
	AnswerTypeFile           AnswerType = "file"
)

// AllTypes returns every supported answer type in declaration order.
func AllTypes() []AnswerType {
	return []AnswerType{
		AnswerTypeLong,
		AnswerTypeShort,
		AnswerTypeMultipleChoice,
		AnswerTypeEmail,
		AnswerTypePhoneNumber,
		AnswerTypeNumber,
		AnswerTypeFile,
	}
}

func (t AnswerType) Valid() bool {
	switch t {
	case AnswerTypeLong, AnswerTypeShort, AnswerTypeMultipleChoice,
		AnswerTypeEmail, AnswerTypePhoneNumber, AnswerTypeNumber, AnswerTypeFile:
		return true
	}
	return false
}

// AllowsChoices reports whether the type carries a closed choice vocabulary.
// Only multiple-choice questions may own choices; a multiple-choice question
// with zero choices is accepted but unanswerable.
func (t AnswerType) AllowsChoices() bool {
	return t == AnswerTypeMultipleChoice
}

// Answerable binds a question to the shape rule of its declared answer type.
// Validate checks a raw value against that rule only; emptiness, duplicates
// and type matching are the answer engine's concern.
type Answerable interface {
	Question() Question

	Validate(rawValue string) error
}

// NewAnswerable dispatches on the question's declared type. choices is only
// consulted for multiple-choice questions.
func NewAnswerable(q Question, choices []Choice) (Answerable, error) {
	switch q.AnswerType {
	case AnswerTypeLong:
		return NewLongText(q), nil
	case AnswerTypeShort:
		return NewShortText(q), nil
	case AnswerTypeMultipleChoice:
		return NewMultipleChoice(q, choices), nil
	case AnswerTypeEmail:
		return NewEmailField(q), nil
	case AnswerTypePhoneNumber:
		return NewPhoneNumberField(q), nil
	case AnswerTypeNumber:
		return NewNumberField(q), nil
	case AnswerTypeFile:
		return NewFileField(q), nil
	}

	return nil, ErrUnsupportedAnswerType{AnswerType: string(q.AnswerType)}
}
