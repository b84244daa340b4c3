package form

import (
	"context"
	"errors"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/form/question"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// uniqueViolation is the postgres error code raised by the forms.slug index.
const uniqueViolation = "23505"

type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Service struct {
	logger  *zap.Logger
	db      DB
	queries *Queries
	tracer  trace.Tracer
}

func NewService(logger *zap.Logger, db DB) *Service {
	return &Service{
		logger:  logger,
		db:      db,
		queries: New(db),
		tracer:  otel.Tracer("form/service"),
	}
}

type QuestionInput struct {
	Body        string
	AnswerType  question.AnswerType
	IsRequired  bool
	Choices     []string
	ImageFileID pgtype.UUID
}

type CreateRequest struct {
	BusinessID       uuid.UUID
	OwnerSlug        string
	Title            string
	Description      string
	Template         Template
	OwnerIsAnonymous bool
	Questions        []QuestionInput
}

// Create inserts the form together with its initial questions and choices in
// one transaction, so a schema error on any question leaves nothing behind.
func (s *Service) Create(ctx context.Context, input CreateRequest) (Form, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	if input.Template == "" {
		input.Template = TemplateBlank
	}
	if !input.Template.Valid() {
		return Form{}, internal.ErrInvalidRequestBody
	}

	for _, q := range input.Questions {
		if err := question.ValidateSchema(q.AnswerType, len(q.Choices)); err != nil {
			span.RecordError(err)
			return Form{}, err
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "begin transaction")
		span.RecordError(err)
		return Form{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	created, err := New(tx).Create(ctx, CreateParams{
		BusinessID:       input.BusinessID,
		Title:            input.Title,
		Slug:             internal.Slugify(input.OwnerSlug + "-" + input.Title),
		Description:      pgtype.Text{String: input.Description, Valid: input.Description != ""},
		Template:         string(input.Template),
		OwnerIsAnonymous: input.OwnerIsAnonymous,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Form{}, internal.ErrDuplicateTitle
		}
		err = databaseutil.WrapDBError(err, logger, "create form")
		span.RecordError(err)
		return Form{}, err
	}

	questionQueries := question.New(tx)
	for _, q := range input.Questions {
		row, err := questionQueries.Create(ctx, question.CreateParams{
			FormID:      created.ID,
			Body:        q.Body,
			AnswerType:  q.AnswerType,
			IsRequired:  q.IsRequired,
			ImageFileID: q.ImageFileID,
		})
		if err != nil {
			err = databaseutil.WrapDBError(err, logger, "create question")
			span.RecordError(err)
			return Form{}, err
		}

		for _, title := range q.Choices {
			_, err := questionQueries.CreateChoice(ctx, question.CreateChoiceParams{
				QuestionID: row.ID,
				Title:      title,
			})
			if err != nil {
				err = databaseutil.WrapDBError(err, logger, "create choice")
				span.RecordError(err)
				return Form{}, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		err = databaseutil.WrapDBError(err, logger, "commit transaction")
		span.RecordError(err)
		return Form{}, err
	}

	logger.Info("Created form",
		zap.String("form_id", created.ID.String()),
		zap.String("slug", created.Slug),
		zap.Int("question_count", len(input.Questions)))

	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (Form, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	form, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Form{}, internal.ErrFormNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form", "id", id.String(), logger, "get form by id")
		span.RecordError(err)
		return Form{}, err
	}

	return form, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Form, error) {
	ctx, span := s.tracer.Start(ctx, "GetBySlug")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	form, err := s.queries.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Form{}, internal.ErrFormNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form", "slug", slug, logger, "get form by slug")
		span.RecordError(err)
		return Form{}, err
	}

	return form, nil
}

func (s *Service) ListByBusiness(ctx context.Context, businessID uuid.UUID, orderBy string) ([]Form, error) {
	ctx, span := s.tracer.Start(ctx, "ListByBusiness")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	if orderBy != "" && !ValidOrderColumn(orderBy) {
		return nil, internal.ErrInvalidOrderColumn
	}

	forms, err := s.queries.ListByBusinessID(ctx, ListByBusinessIDParams{
		BusinessID: businessID,
		OrderBy:    orderBy,
	})
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form", "business_id", businessID.String(), logger, "list forms by business")
		span.RecordError(err)
		return nil, err
	}

	return forms, nil
}

type PatchRequest struct {
	ID               uuid.UUID
	OwnerSlug        string
	Title            *string
	Description      *string
	Template         *Template
	OwnerIsAnonymous *bool
}

// Patch applies the non-nil fields. A title change re-derives the slug under
// the same uniqueness rule as Create.
func (s *Service) Patch(ctx context.Context, input PatchRequest) (Form, error) {
	ctx, span := s.tracer.Start(ctx, "Patch")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	current, err := s.GetByID(ctx, input.ID)
	if err != nil {
		return Form{}, err
	}

	params := UpdateParams{
		ID:               current.ID,
		Title:            current.Title,
		Slug:             current.Slug,
		Description:      current.Description,
		Template:         current.Template,
		OwnerIsAnonymous: current.OwnerIsAnonymous,
	}
	if input.Title != nil && *input.Title != current.Title {
		params.Title = *input.Title
		params.Slug = internal.Slugify(input.OwnerSlug + "-" + *input.Title)
	}
	if input.Description != nil {
		params.Description = pgtype.Text{String: *input.Description, Valid: *input.Description != ""}
	}
	if input.Template != nil {
		if !input.Template.Valid() {
			return Form{}, internal.ErrInvalidRequestBody
		}
		params.Template = string(*input.Template)
	}
	if input.OwnerIsAnonymous != nil {
		params.OwnerIsAnonymous = *input.OwnerIsAnonymous
	}

	updated, err := s.queries.Update(ctx, params)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Form{}, internal.ErrDuplicateTitle
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form", "id", input.ID.String(), logger, "update form")
		span.RecordError(err)
		return Form{}, err
	}

	return updated, nil
}

// Close marks the form as no longer accepting submissions. Closing an
// already-closed form is a no-op.
func (s *Service) Close(ctx context.Context, id uuid.UUID) (Form, error) {
	ctx, span := s.tracer.Start(ctx, "Close")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	form, err := s.queries.SetClosed(ctx, SetClosedParams{ID: id, IsClosed: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Form{}, internal.ErrFormNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form", "id", id.String(), logger, "close form")
		span.RecordError(err)
		return Form{}, err
	}

	return form, nil
}

// Delete re-points the form's responses at the tombstone and removes the
// form in one transaction. Questions, choices and answers go with the form
// via ON DELETE CASCADE; responses survive.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "Delete")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "begin transaction")
		span.RecordError(err)
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txQueries := New(tx)
	if err := txQueries.ReassignResponses(ctx, id, TombstoneID); err != nil {
		err = databaseutil.WrapDBError(err, logger, "reassign responses to tombstone")
		span.RecordError(err)
		return err
	}
	if err := txQueries.Delete(ctx, id); err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form", "id", id.String(), logger, "delete form")
		span.RecordError(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		err = databaseutil.WrapDBError(err, logger, "commit transaction")
		span.RecordError(err)
		return err
	}

	logger.Info("Deleted form", zap.String("form_id", id.String()))
	return nil
}
