package answer

import (
	"context"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/form/question"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	CreateLong(ctx context.Context, arg TextAnswerParams) error
	CreateShort(ctx context.Context, arg TextAnswerParams) error
	CreateEmail(ctx context.Context, arg TextAnswerParams) error
	CreatePhoneNumber(ctx context.Context, arg TextAnswerParams) error
	CreateNumber(ctx context.Context, arg NumberAnswerParams) error
	CreateMultipleChoice(ctx context.Context, arg ChoiceAnswerParams) error
	CreateFile(ctx context.Context, arg FileAnswerParams) error
	LongViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error)
	ShortViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error)
	MultipleChoiceViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error)
	EmailViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error)
	PhoneNumberViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error)
	NumberViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error)
	FileViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error)
	HasAnswersForQuestion(ctx context.Context, questionID uuid.UUID) (bool, error)
}

// Service stores typed answers and projects the variant tables into uniform
// views. It works over a pool or an open transaction interchangeably.
type Service struct {
	logger  *zap.Logger
	queries Querier
	tracer  trace.Tracer
}

func NewService(logger *zap.Logger, db DBTX) *Service {
	return &Service{
		logger:  logger,
		queries: New(db),
		tracer:  otel.Tracer("answer/service"),
	}
}

// Project merges the per-variant joined views of one response, variant by
// variant in a fixed order, each variant internally in creation order.
func (s *Service) Project(ctx context.Context, responseID uuid.UUID) ([]View, error) {
	ctx, span := s.tracer.Start(ctx, "Project")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	parts := []func(context.Context, uuid.UUID) ([]View, error){
		s.queries.LongViewsByResponseID,
		s.queries.ShortViewsByResponseID,
		s.queries.MultipleChoiceViewsByResponseID,
		s.queries.EmailViewsByResponseID,
		s.queries.PhoneNumberViewsByResponseID,
		s.queries.NumberViewsByResponseID,
		s.queries.FileViewsByResponseID,
	}

	var views []View
	for _, list := range parts {
		part, err := list(ctx, responseID)
		if err != nil {
			err = databaseutil.WrapDBErrorWithKeyValue(err, "answer", "response_id", responseID.String(), logger, "project answers")
			span.RecordError(err)
			return nil, err
		}
		views = append(views, part...)
	}

	return views, nil
}

// AnsweredQuestionIDs reports which questions the response has already
// answered, derived from Project so duplicate and coverage checks share one
// source of truth.
func (s *Service) AnsweredQuestionIDs(ctx context.Context, responseID uuid.UUID) (map[uuid.UUID]bool, error) {
	views, err := s.Project(ctx, responseID)
	if err != nil {
		return nil, err
	}

	answered := make(map[uuid.UUID]bool, len(views))
	for _, v := range views {
		answered[v.QuestionID] = true
	}
	return answered, nil
}

// HasAnswers reports whether any response has answered the question, across
// all variant tables.
func (s *Service) HasAnswers(ctx context.Context, questionID uuid.UUID) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "HasAnswers")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	ok, err := s.queries.HasAnswersForQuestion(ctx, questionID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "answer", "question_id", questionID.String(), logger, "check question answers")
		span.RecordError(err)
		return false, err
	}

	return ok, nil
}

// Create persists a validated value into its variant table.
func (s *Service) Create(ctx context.Context, responseID, questionID uuid.UUID, value Value) error {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	var err error
	switch value.Type {
	case question.AnswerTypeLong:
		err = s.queries.CreateLong(ctx, TextAnswerParams{ResponseID: responseID, QuestionID: questionID, Value: value.Text})
	case question.AnswerTypeShort:
		err = s.queries.CreateShort(ctx, TextAnswerParams{ResponseID: responseID, QuestionID: questionID, Value: value.Text})
	case question.AnswerTypeEmail:
		err = s.queries.CreateEmail(ctx, TextAnswerParams{ResponseID: responseID, QuestionID: questionID, Value: value.Text})
	case question.AnswerTypePhoneNumber:
		err = s.queries.CreatePhoneNumber(ctx, TextAnswerParams{ResponseID: responseID, QuestionID: questionID, Value: value.Text})
	case question.AnswerTypeNumber:
		err = s.queries.CreateNumber(ctx, NumberAnswerParams{ResponseID: responseID, QuestionID: questionID, Value: value.Number})
	case question.AnswerTypeMultipleChoice:
		err = s.queries.CreateMultipleChoice(ctx, ChoiceAnswerParams{ResponseID: responseID, QuestionID: questionID, ChoiceID: value.ChoiceID})
	case question.AnswerTypeFile:
		err = s.queries.CreateFile(ctx, FileAnswerParams{ResponseID: responseID, QuestionID: questionID, FileID: value.FileID})
	default:
		return internal.ErrUnsupportedType
	}
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "answer", "question_id", questionID.String(), logger, "create answer")
		span.RecordError(err)
		return err
	}

	return nil
}
