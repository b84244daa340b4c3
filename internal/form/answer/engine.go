package answer

import (
	"context"
	"strconv"
	"strings"

	"formcraft/form-builder-backend/internal/form/question"

	"github.com/google/uuid"
)

// FileStore reports whether an uploaded file record exists. Shape of a file
// answer is checked by the question; existence is checked here.
type FileStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Projector exposes which questions a response has already answered.
type Projector interface {
	AnsweredQuestionIDs(ctx context.Context, responseID uuid.UUID) (map[uuid.UUID]bool, error)
}

// Engine validates one raw answer against its question and normalizes it
// into a Value. It never writes; persisting the Value is the caller's job,
// which lets a submission run the whole batch inside one transaction.
type Engine struct {
	projector Projector
	fileStore FileStore
}

func NewEngine(projector Projector, fileStore FileStore) *Engine {
	return &Engine{projector: projector, fileStore: fileStore}
}

// ValidateAndAccept runs the acceptance checks in a fixed order: duplicate,
// declared-type match, required emptiness, then the per-type shape rules.
// An empty value on an optional question yields a zero Value, meaning skip.
func (e *Engine) ValidateAndAccept(ctx context.Context, responseID uuid.UUID, answerable question.Answerable, declaredType question.AnswerType, raw string) (Value, error) {
	q := answerable.Question()

	answered, err := e.projector.AnsweredQuestionIDs(ctx, responseID)
	if err != nil {
		return Value{}, err
	}
	if answered[q.ID] {
		return Value{}, ErrAlreadyAnswered{QuestionID: q.ID}
	}

	if declaredType != q.AnswerType {
		return Value{}, ErrTypeMismatch{
			QuestionID: q.ID,
			Declared:   string(declaredType),
			Actual:     string(q.AnswerType),
		}
	}

	if strings.TrimSpace(raw) == "" {
		if q.IsRequired {
			return Value{}, ErrValueRequired{QuestionID: q.ID}
		}
		return Value{}, nil
	}

	if err := answerable.Validate(raw); err != nil {
		return Value{}, err
	}

	value := Value{Type: q.AnswerType}
	switch q.AnswerType {
	case question.AnswerTypeLong, question.AnswerTypeShort,
		question.AnswerTypeEmail, question.AnswerTypePhoneNumber:
		value.Text = raw
	case question.AnswerTypeNumber:
		value.Number, _ = strconv.ParseInt(raw, 10, 64)
	case question.AnswerTypeMultipleChoice:
		value.ChoiceID, _ = uuid.Parse(raw)
	case question.AnswerTypeFile:
		fileID, _ := uuid.Parse(raw)
		exists, err := e.fileStore.Exists(ctx, fileID)
		if err != nil {
			return Value{}, err
		}
		if !exists {
			return Value{}, question.ErrInvalidFileID{QuestionID: q.ID.String(), Value: raw}
		}
		value.FileID = fileID
	}

	return value, nil
}
