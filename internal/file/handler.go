package file

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"formcraft/form-builder-backend/internal"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Response struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Store interface {
	SaveFile(ctx context.Context, fileContent io.Reader, originalFilename, contentType string) (File, error)
	Open(ctx context.Context, id uuid.UUID) (File, io.ReadCloser, error)
}

type Handler struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	validator     *validator.Validate
	problemWriter *problem.HttpWriter
	store         Store
}

func NewHandler(logger *zap.Logger, validator *validator.Validate, problemWriter *problem.HttpWriter, store Store) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("file/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		store:         store,
	}
}

func ToResponse(f File) Response {
	return Response{
		ID:          f.ID.String(),
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   f.CreatedAt.Time,
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Upload")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	if err := r.ParseMultipartForm(MaxFileSize); err != nil {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidMultipart, logger)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidMultipart, logger)
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("Failed to close uploaded file", zap.Error(cerr))
		}
	}()

	newFile, err := h.store.SaveFile(traceCtx, f, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, ToResponse(newFile))
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Download")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	id, err := handlerutil.ParseUUID(r.PathValue("id"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	f, reader, err := h.store.Open(traceCtx, id)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			logger.Warn("Failed to close file reader", zap.Error(cerr))
		}
	}()

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename+`"`)
	if _, err := io.Copy(w, reader); err != nil {
		logger.Error("Failed to stream file", zap.Error(err))
	}
}
