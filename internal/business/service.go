package business

import (
	"context"
	"errors"

	"formcraft/form-builder-backend/internal"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (Business, error)
	GetByID(ctx context.Context, id uuid.UUID) (Business, error)
	GetBySlug(ctx context.Context, slug string) (Business, error)
}

type Service struct {
	logger  *zap.Logger
	queries Querier
	tracer  trace.Tracer
}

func NewService(logger *zap.Logger, db DBTX) *Service {
	return &Service{
		logger:  logger,
		queries: New(db),
		tracer:  otel.Tracer("business/service"),
	}
}

func (s *Service) Create(ctx context.Context, label string) (Business, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	newBusiness, err := s.queries.Create(ctx, CreateParams{
		Label: label,
		Slug:  internal.Slugify(label),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Business{}, internal.ErrBusinessLabelConflict
		}
		err = databaseutil.WrapDBError(err, logger, "create business")
		span.RecordError(err)
		return Business{}, err
	}

	return newBusiness, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (Business, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	b, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Business{}, internal.ErrBusinessNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "business", "id", id.String(), logger, "get business by id")
		span.RecordError(err)
		return Business{}, err
	}

	return b, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Business, error) {
	ctx, span := s.tracer.Start(ctx, "GetBySlug")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	b, err := s.queries.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Business{}, internal.ErrBusinessNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "business", "slug", slug, logger, "get business by slug")
		span.RecordError(err)
		return Business{}, err
	}

	return b, nil
}

