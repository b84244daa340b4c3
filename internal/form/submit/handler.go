package submit

import (
	"context"
	"net/http"
	"time"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/auth"
	"formcraft/form-builder-backend/internal/form"
	"formcraft/form-builder-backend/internal/form/answer"
	"formcraft/form-builder-backend/internal/form/question"
	"formcraft/form-builder-backend/internal/form/response"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Submitter interface {
	Submit(ctx context.Context, formID uuid.UUID, respondentEmail string, inputs []AnswerInput) (Result, error)
}

type SlugStore interface {
	GetBySlug(ctx context.Context, slug string) (form.Form, error)
	GetByID(ctx context.Context, id uuid.UUID) (form.Form, error)
}

type ResponseStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (response.Response, error)
	ListByFormID(ctx context.Context, formID uuid.UUID) ([]response.Response, error)
}

type Projector interface {
	Project(ctx context.Context, responseID uuid.UUID) ([]answer.View, error)
}

type AnswerRequest struct {
	QuestionID string `json:"questionId" validate:"required,uuid"`
	AnswerType string `json:"answerType" validate:"required"`
	Value      string `json:"value"`
}

type SubmitRequest struct {
	RespondentEmail string          `json:"respondentEmail" validate:"omitempty,email"`
	Answers         []AnswerRequest `json:"answers" validate:"omitempty,dive"`
}

type AnswerView struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	AnswerType string `json:"answerType"`
	Answer     string `json:"answer"`
}

type Response struct {
	ID              string       `json:"id"`
	FormID          string       `json:"formId"`
	RespondentEmail string       `json:"respondentEmail,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	Answers         []AnswerView `json:"answers"`
}

type Handler struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	validator     *validator.Validate
	problemWriter *problem.HttpWriter
	submitter     Submitter
	formStore     SlugStore
	responseStore ResponseStore
	projector     Projector
}

func NewHandler(logger *zap.Logger, validator *validator.Validate, problemWriter *problem.HttpWriter, submitter Submitter, formStore SlugStore, responseStore ResponseStore, projector Projector) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("submit/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		submitter:     submitter,
		formStore:     formStore,
		responseStore: responseStore,
		projector:     projector,
	}
}

func toResponse(r response.Response, views []answer.View) Response {
	resp := Response{
		ID:              r.ID.String(),
		FormID:          r.FormID.String(),
		RespondentEmail: r.RespondentEmail.String,
		CreatedAt:       r.CreatedAt.Time,
		Answers:         make([]AnswerView, 0, len(views)),
	}
	for _, v := range views {
		resp.Answers = append(resp.Answers, AnswerView{
			QuestionID: v.QuestionID.String(),
			Question:   v.QuestionText,
			AnswerType: string(v.AnswerType),
			Answer:     v.AnswerValue,
		})
	}
	return resp
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Submit")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	f, err := h.formStore.GetBySlug(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	var req SubmitRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	inputs := make([]AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		questionID, err := handlerutil.ParseUUID(a.QuestionID)
		if err != nil {
			h.problemWriter.WriteError(traceCtx, w, err, logger)
			return
		}
		inputs = append(inputs, AnswerInput{
			QuestionID: questionID,
			AnswerType: question.AnswerType(a.AnswerType),
			Value:      a.Value,
		})
	}

	result, err := h.submitter.Submit(traceCtx, f.ID, req.RespondentEmail, inputs)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, toResponse(result.Response, result.Answers))
}

// ownedForm resolves the slug and checks the caller owns the form.
func (h *Handler) ownedForm(ctx context.Context, slug string) (form.Form, error) {
	owner, ok := auth.GetFromContext(ctx)
	if !ok {
		return form.Form{}, internal.ErrNoBusinessInContext
	}

	f, err := h.formStore.GetBySlug(ctx, slug)
	if err != nil {
		return form.Form{}, err
	}
	if f.BusinessID != owner.ID {
		return form.Form{}, internal.ErrPermissionDenied
	}

	return f, nil
}

func (h *Handler) ListByForm(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "ListByForm")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	f, err := h.ownedForm(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	responses, err := h.responseStore.ListByFormID(traceCtx, f.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	result := make([]Response, 0, len(responses))
	for _, resp := range responses {
		views, err := h.projector.Project(traceCtx, resp.ID)
		if err != nil {
			h.problemWriter.WriteError(traceCtx, w, err, logger)
			return
		}
		result = append(result, toResponse(resp, views))
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, result)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "GetByID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	owner, ok := auth.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoBusinessInContext, logger)
		return
	}

	responseID, err := handlerutil.ParseUUID(r.PathValue("responseId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	resp, err := h.responseStore.GetByID(traceCtx, responseID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	// Tombstoned responses have no owning form left to check against, so
	// any authenticated owner may read them.
	if resp.FormID != form.TombstoneID {
		f, err := h.formStore.GetByID(traceCtx, resp.FormID)
		if err != nil {
			h.problemWriter.WriteError(traceCtx, w, err, logger)
			return
		}
		if f.BusinessID != owner.ID {
			h.problemWriter.WriteError(traceCtx, w, internal.ErrPermissionDenied, logger)
			return
		}
	}

	views, err := h.projector.Project(traceCtx, resp.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, toResponse(resp, views))
}
