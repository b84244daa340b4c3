package submit

import (
	"context"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/form"
	"formcraft/form-builder-backend/internal/form/answer"
	"formcraft/form-builder-backend/internal/form/question"
	"formcraft/form-builder-backend/internal/form/response"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type FormStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (form.Form, error)
}

type QuestionStore interface {
	ListByFormID(ctx context.Context, formID uuid.UUID) ([]question.Answerable, error)
}

type AnswerInput struct {
	QuestionID uuid.UUID
	AnswerType question.AnswerType
	Value      string
}

type Result struct {
	Response response.Response
	Answers  []answer.View
}

// Service assembles a response and its answers atomically. Either the whole
// submission lands or none of it does.
type Service struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	db            DB
	formStore     FormStore
	questionStore QuestionStore
	fileStore     answer.FileStore
	answers       *answer.Service
}

func NewService(logger *zap.Logger, db DB, formStore FormStore, questionStore QuestionStore, fileStore answer.FileStore, answers *answer.Service) *Service {
	return &Service{
		logger:        logger,
		tracer:        otel.Tracer("submit/service"),
		db:            db,
		formStore:     formStore,
		questionStore: questionStore,
		fileStore:     fileStore,
		answers:       answers,
	}
}

// Submit validates and stores one response. The closed check runs once at
// the start; a form closing mid-flight does not abort an in-progress
// submission.
func (s *Service) Submit(ctx context.Context, formID uuid.UUID, respondentEmail string, inputs []AnswerInput) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "Submit")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	f, err := s.formStore.GetByID(ctx, formID)
	if err != nil {
		return Result{}, err
	}

	if !f.OwnerIsAnonymous && respondentEmail == "" {
		return Result{}, internal.ErrAnonymityRequired
	}
	if f.IsClosed {
		return Result{}, internal.ErrFormClosed
	}

	answerables, err := s.questionStore.ListByFormID(ctx, formID)
	if err != nil {
		return Result{}, err
	}

	byID := make(map[uuid.UUID]question.Answerable, len(answerables))
	for _, a := range answerables {
		byID[a.Question().ID] = a
	}

	// Presence of the id covers the question; a required question submitted
	// with an empty value is the engine's required-field error, not a
	// missing one.
	covered := make(map[uuid.UUID]bool, len(inputs))
	for _, input := range inputs {
		if _, ok := byID[input.QuestionID]; !ok {
			return Result{}, internal.ErrQuestionNotFound
		}
		covered[input.QuestionID] = true
	}

	var missing []uuid.UUID
	for _, a := range answerables {
		q := a.Question()
		if q.IsRequired && !covered[q.ID] {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return Result{}, internal.ErrResponseIncomplete{MissingQuestionIDs: missing}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "begin transaction")
		span.RecordError(err)
		return Result{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	created, err := response.New(tx).Create(ctx, response.CreateParams{
		FormID:          formID,
		RespondentEmail: pgtype.Text{String: respondentEmail, Valid: respondentEmail != ""},
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create response")
		span.RecordError(err)
		return Result{}, err
	}

	// Tx-bound store so each accepted answer is visible to the duplicate
	// check for the next one.
	txAnswers := answer.NewService(s.logger, tx)
	engine := answer.NewEngine(txAnswers, s.fileStore)

	for _, input := range inputs {
		answerable := byID[input.QuestionID]

		value, err := engine.ValidateAndAccept(ctx, created.ID, answerable, input.AnswerType, input.Value)
		if err != nil {
			span.RecordError(err)
			return Result{}, err
		}
		if value.IsZero() {
			continue
		}

		if err := txAnswers.Create(ctx, created.ID, input.QuestionID, value); err != nil {
			span.RecordError(err)
			return Result{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		err = databaseutil.WrapDBError(err, logger, "commit transaction")
		span.RecordError(err)
		return Result{}, err
	}

	views, err := s.answers.Project(ctx, created.ID)
	if err != nil {
		return Result{}, err
	}

	logger.Info("Accepted response",
		zap.String("form_id", formID.String()),
		zap.String("response_id", created.ID.String()),
		zap.Int("answer_count", len(views)))

	return Result{Response: created, Answers: views}, nil
}
