package question

import (
	"context"
	"errors"

	"formcraft/form-builder-backend/internal"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (Question, error)
	Update(ctx context.Context, arg UpdateParams) (Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Question, error)
	ListByFormID(ctx context.Context, formID uuid.UUID) ([]Question, error)
	CreateChoice(ctx context.Context, arg CreateChoiceParams) (Choice, error)
	DeleteChoice(ctx context.Context, id uuid.UUID) error
	ListChoicesByQuestionID(ctx context.Context, questionID uuid.UUID) ([]Choice, error)
	ListChoicesByFormID(ctx context.Context, formID uuid.UUID) ([]Choice, error)
}

// AnswerStore reports whether any stored answer references a question. It
// backs the answer-type immutability rule.
type AnswerStore interface {
	HasAnswers(ctx context.Context, questionID uuid.UUID) (bool, error)
}

type Service struct {
	logger      *zap.Logger
	queries     Querier
	tracer      trace.Tracer
	answerStore AnswerStore
}

func NewService(logger *zap.Logger, db DBTX, answerStore AnswerStore) *Service {
	return &Service{
		logger:      logger,
		queries:     New(db),
		tracer:      otel.Tracer("question/service"),
		answerStore: answerStore,
	}
}

type CreateRequest struct {
	FormID      uuid.UUID
	Body        string
	AnswerType  AnswerType
	IsRequired  bool
	Choices     []string
	ImageFileID pgtype.UUID
}

// ValidateSchema checks a declared answer type against the supplied choice
// titles. Choices on a non-multiple-choice question are a schema error; a
// multiple-choice question with zero choices is accepted.
func ValidateSchema(answerType AnswerType, choiceCount int) error {
	if !answerType.Valid() {
		return ErrUnsupportedAnswerType{AnswerType: string(answerType)}
	}

	if choiceCount > 0 && !answerType.AllowsChoices() {
		return ErrChoicesNotAllowed{AnswerType: string(answerType)}
	}

	return nil
}

func (s *Service) Create(ctx context.Context, input CreateRequest) (Answerable, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	if err := ValidateSchema(input.AnswerType, len(input.Choices)); err != nil {
		span.RecordError(err)
		return nil, err
	}

	row, err := s.queries.Create(ctx, CreateParams{
		FormID:      input.FormID,
		Body:        input.Body,
		AnswerType:  input.AnswerType,
		IsRequired:  input.IsRequired,
		ImageFileID: input.ImageFileID,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create question")
		span.RecordError(err)
		return nil, err
	}

	choices := make([]Choice, 0, len(input.Choices))
	for _, title := range input.Choices {
		choice, err := s.queries.CreateChoice(ctx, CreateChoiceParams{
			QuestionID: row.ID,
			Title:      title,
		})
		if err != nil {
			err = databaseutil.WrapDBError(err, logger, "create choice")
			span.RecordError(err)
			return nil, err
		}
		choices = append(choices, choice)
	}

	return NewAnswerable(row, choices)
}

type UpdateRequest struct {
	ID          uuid.UUID
	Body        string
	AnswerType  AnswerType
	IsRequired  bool
	ImageFileID pgtype.UUID
}

// Update rewrites a question's body/required flag and, only while no answer
// references it yet, its answer type. Changing the type afterwards would
// orphan stored answers.
func (s *Service) Update(ctx context.Context, input UpdateRequest) (Answerable, error) {
	ctx, span := s.tracer.Start(ctx, "Update")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	current, err := s.queries.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrQuestionNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "question", "id", input.ID.String(), logger, "get question by id")
		span.RecordError(err)
		return nil, err
	}

	if input.AnswerType != current.AnswerType {
		if !input.AnswerType.Valid() {
			return nil, ErrUnsupportedAnswerType{AnswerType: string(input.AnswerType)}
		}

		answered, err := s.answerStore.HasAnswers(ctx, input.ID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if answered {
			return nil, internal.ErrAnswerTypeLocked
		}
	}

	row, err := s.queries.Update(ctx, UpdateParams{
		ID:          input.ID,
		Body:        input.Body,
		AnswerType:  input.AnswerType,
		IsRequired:  input.IsRequired,
		ImageFileID: input.ImageFileID,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "update question")
		span.RecordError(err)
		return nil, err
	}

	choices, err := s.queries.ListChoicesByQuestionID(ctx, row.ID)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list choices")
		span.RecordError(err)
		return nil, err
	}

	return NewAnswerable(row, choices)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "Delete")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	err := s.queries.Delete(ctx, id)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "question", "id", id.String(), logger, "delete question")
		span.RecordError(err)
		return err
	}

	return nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (Answerable, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	row, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrQuestionNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "question", "id", id.String(), logger, "get question by id")
		span.RecordError(err)
		return nil, err
	}

	var choices []Choice
	if row.AnswerType.AllowsChoices() {
		choices, err = s.queries.ListChoicesByQuestionID(ctx, row.ID)
		if err != nil {
			err = databaseutil.WrapDBError(err, logger, "list choices")
			span.RecordError(err)
			return nil, err
		}
	}

	return NewAnswerable(row, choices)
}

// ListByFormID returns the form's questions as Answerables in creation order.
func (s *Service) ListByFormID(ctx context.Context, formID uuid.UUID) ([]Answerable, error) {
	ctx, span := s.tracer.Start(ctx, "ListByFormID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	questions, err := s.queries.ListByFormID(ctx, formID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "question", "form_id", formID.String(), logger, "list questions by form id")
		span.RecordError(err)
		return nil, err
	}

	choices, err := s.queries.ListChoicesByFormID(ctx, formID)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list choices by form id")
		span.RecordError(err)
		return nil, err
	}

	choicesByQuestion := make(map[uuid.UUID][]Choice)
	for _, choice := range choices {
		choicesByQuestion[choice.QuestionID] = append(choicesByQuestion[choice.QuestionID], choice)
	}

	answerables := make([]Answerable, 0, len(questions))
	for _, q := range questions {
		answerable, err := NewAnswerable(q, choicesByQuestion[q.ID])
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		answerables = append(answerables, answerable)
	}

	return answerables, nil
}
