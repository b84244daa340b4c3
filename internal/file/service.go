package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"formcraft/form-builder-backend/internal"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MaxFileSize caps a single uploaded file at 100MB.
const MaxFileSize = 100 << 20

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (File, error)
	GetByID(ctx context.Context, id uuid.UUID) (File, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service records file metadata; answers reference files by id only, the
// bytes themselves live on disk under storagePath.
type Service struct {
	logger      *zap.Logger
	queries     Querier
	tracer      trace.Tracer
	storagePath string
}

func NewService(logger *zap.Logger, db DBTX, storagePath string) *Service {
	return &Service{
		logger:      logger,
		queries:     New(db),
		tracer:      otel.Tracer("file/service"),
		storagePath: storagePath,
	}
}

func (s *Service) SaveFile(ctx context.Context, fileContent io.Reader, originalFilename, contentType string) (File, error) {
	ctx, span := s.tracer.Start(ctx, "SaveFile")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	if err := os.MkdirAll(s.storagePath, 0o755); err != nil {
		span.RecordError(err)
		return File{}, err
	}

	tmp, err := os.CreateTemp(s.storagePath, "upload-*")
	if err != nil {
		span.RecordError(err)
		return File{}, err
	}
	defer func() {
		if cerr := tmp.Close(); cerr != nil {
			logger.Warn("Failed to close temp file", zap.Error(cerr))
		}
	}()

	size, err := io.Copy(tmp, io.LimitReader(fileContent, MaxFileSize+1))
	if err != nil {
		_ = os.Remove(tmp.Name())
		span.RecordError(err)
		return File{}, err
	}
	if size > MaxFileSize {
		_ = os.Remove(tmp.Name())
		return File{}, internal.ErrFileTooLarge
	}

	newFile, err := s.queries.Create(ctx, CreateParams{
		Filename:    originalFilename,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		_ = os.Remove(tmp.Name())
		err = databaseutil.WrapDBError(err, logger, "create file record")
		span.RecordError(err)
		return File{}, err
	}

	if err := os.Rename(tmp.Name(), s.diskPath(newFile.ID)); err != nil {
		span.RecordError(err)
		return File{}, err
	}

	logger.Info("Saved file", zap.String("id", newFile.ID.String()), zap.Int64("size", size))
	return newFile, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (File, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	f, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return File{}, internal.ErrFileNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "file", "id", id.String(), logger, "get file by id")
		span.RecordError(err)
		return File{}, err
	}

	return f, nil
}

// Exists reports whether a file record is present; the answer engine uses it
// to validate file-typed answers without touching file bytes.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "Exists")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	ok, err := s.queries.Exists(ctx, id)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "check file exists")
		span.RecordError(err)
		return false, err
	}

	return ok, nil
}

// Open returns a reader over the stored bytes for download.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (File, io.ReadCloser, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return File{}, nil, err
	}

	r, err := os.Open(s.diskPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil, internal.ErrFileNotFound
		}
		return File{}, nil, err
	}

	return f, r, nil
}

func (s *Service) diskPath(id uuid.UUID) string {
	return filepath.Join(s.storagePath, id.String())
}
