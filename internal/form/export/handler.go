package export

import (
	"context"
	"net/http"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/auth"
	"formcraft/form-builder-backend/internal/form"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type FormStore interface {
	GetBySlug(ctx context.Context, slug string) (form.Form, error)
}

type Exporter interface {
	BuildTable(ctx context.Context, formID uuid.UUID) (Table, error)
	Render(table Table, format Format) ([]byte, string, error)
}

type Handler struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	problemWriter *problem.HttpWriter
	formStore     FormStore
	exporter      Exporter
}

func NewHandler(logger *zap.Logger, problemWriter *problem.HttpWriter, formStore FormStore, exporter Exporter) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("export/handler"),
		problemWriter: problemWriter,
		formStore:     formStore,
		exporter:      exporter,
	}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Export")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	owner, ok := auth.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoBusinessInContext, logger)
		return
	}

	f, err := h.formStore.GetBySlug(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}
	if f.BusinessID != owner.ID {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrPermissionDenied, logger)
		return
	}

	format := Format(r.URL.Query().Get("format"))
	if format == "" {
		format = FormatCSV
	}

	table, err := h.exporter.BuildTable(traceCtx, f.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	data, contentType, err := h.exporter.Render(table, format)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Slug+`.`+string(format)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error("Failed to write export payload", zap.Error(err))
	}
}
