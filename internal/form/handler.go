package form

import (
	"context"
	"net/http"
	"time"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/auth"
	"formcraft/form-builder-backend/internal/form/question"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, input CreateRequest) (Form, error)
	GetBySlug(ctx context.Context, slug string) (Form, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, orderBy string) ([]Form, error)
	Patch(ctx context.Context, input PatchRequest) (Form, error)
	Close(ctx context.Context, id uuid.UUID) (Form, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type QuestionStore interface {
	Create(ctx context.Context, input question.CreateRequest) (question.Answerable, error)
	Update(ctx context.Context, input question.UpdateRequest) (question.Answerable, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (question.Answerable, error)
	ListByFormID(ctx context.Context, formID uuid.UUID) ([]question.Answerable, error)
}

type QuestionRequest struct {
	Body        string   `json:"body" validate:"required"`
	AnswerType  string   `json:"answerType" validate:"required"`
	IsRequired  bool     `json:"isRequired"`
	Choices     []string `json:"choices"`
	ImageFileID string   `json:"imageFileId" validate:"omitempty,uuid"`
}

type CreateFormRequest struct {
	Title            string            `json:"title" validate:"required,max=128"`
	Description      string            `json:"description"`
	Template         string            `json:"template" validate:"omitempty,oneof=blank cv quiz registration"`
	OwnerIsAnonymous *bool             `json:"ownerIsAnonymous"`
	Questions        []QuestionRequest `json:"questions" validate:"omitempty,dive"`
}

type PatchFormRequest struct {
	Title            *string `json:"title" validate:"omitempty,max=128"`
	Description      *string `json:"description"`
	Template         *string `json:"template" validate:"omitempty,oneof=blank cv quiz registration"`
	OwnerIsAnonymous *bool   `json:"ownerIsAnonymous"`
}

type ChoiceResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type QuestionResponse struct {
	ID          string           `json:"id"`
	Body        string           `json:"body"`
	AnswerType  string           `json:"answerType"`
	IsRequired  bool             `json:"isRequired"`
	ImageFileID string           `json:"imageFileId,omitempty"`
	Choices     []ChoiceResponse `json:"choices,omitempty"`
}

type Response struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Slug             string             `json:"slug"`
	Description      string             `json:"description"`
	Template         string             `json:"template"`
	OwnerIsAnonymous bool               `json:"ownerIsAnonymous"`
	IsClosed         bool               `json:"isClosed"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	Questions        []QuestionResponse `json:"questions,omitempty"`
}

type Handler struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	validator     *validator.Validate
	problemWriter *problem.HttpWriter
	store         Store
	questionStore QuestionStore
}

func NewHandler(logger *zap.Logger, validator *validator.Validate, problemWriter *problem.HttpWriter, store Store, questionStore QuestionStore) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("form/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		store:         store,
		questionStore: questionStore,
	}
}

func ToResponse(f Form, questions []question.Answerable) Response {
	resp := Response{
		ID:               f.ID.String(),
		Title:            f.Title,
		Slug:             f.Slug,
		Description:      f.Description.String,
		Template:         f.Template,
		OwnerIsAnonymous: f.OwnerIsAnonymous,
		IsClosed:         f.IsClosed,
		CreatedAt:        f.CreatedAt.Time,
		UpdatedAt:        f.UpdatedAt.Time,
	}
	for _, answerable := range questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(answerable))
	}
	return resp
}

func toQuestionResponse(answerable question.Answerable) QuestionResponse {
	q := answerable.Question()
	resp := QuestionResponse{
		ID:         q.ID.String(),
		Body:       q.Body,
		AnswerType: string(q.AnswerType),
		IsRequired: q.IsRequired,
	}
	if q.ImageFileID.Valid {
		resp.ImageFileID = uuid.UUID(q.ImageFileID.Bytes).String()
	}
	if multi, ok := answerable.(question.MultipleChoice); ok {
		for _, choice := range multi.Choices {
			resp.Choices = append(resp.Choices, ChoiceResponse{ID: choice.ID.String(), Title: choice.Title})
		}
	}
	return resp
}

func parseImageFileID(raw string) pgtype.UUID {
	if raw == "" {
		return pgtype.UUID{}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Create")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	owner, ok := auth.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoBusinessInContext, logger)
		return
	}

	var req CreateFormRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	ownerIsAnonymous := true
	if req.OwnerIsAnonymous != nil {
		ownerIsAnonymous = *req.OwnerIsAnonymous
	}

	input := CreateRequest{
		BusinessID:       owner.ID,
		OwnerSlug:        owner.Slug,
		Title:            req.Title,
		Description:      req.Description,
		Template:         Template(req.Template),
		OwnerIsAnonymous: ownerIsAnonymous,
	}
	for _, q := range req.Questions {
		input.Questions = append(input.Questions, QuestionInput{
			Body:        q.Body,
			AnswerType:  question.AnswerType(q.AnswerType),
			IsRequired:  q.IsRequired,
			Choices:     q.Choices,
			ImageFileID: parseImageFileID(q.ImageFileID),
		})
	}

	created, err := h.store.Create(traceCtx, input)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	questions, err := h.questionStore.ListByFormID(traceCtx, created.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, ToResponse(created, questions))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "List")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	owner, ok := auth.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoBusinessInContext, logger)
		return
	}

	forms, err := h.store.ListByBusiness(traceCtx, owner.ID, r.URL.Query().Get("order_by"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	resp := make([]Response, 0, len(forms))
	for _, f := range forms {
		resp = append(resp, ToResponse(f, nil))
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, resp)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "GetBySlug")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	form, err := h.store.GetBySlug(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	questions, err := h.questionStore.ListByFormID(traceCtx, form.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToResponse(form, questions))
}

// ownedForm resolves the slug and checks the caller owns the form.
func (h *Handler) ownedForm(ctx context.Context, slug string) (Form, error) {
	owner, ok := auth.GetFromContext(ctx)
	if !ok {
		return Form{}, internal.ErrNoBusinessInContext
	}

	form, err := h.store.GetBySlug(ctx, slug)
	if err != nil {
		return Form{}, err
	}
	if form.BusinessID != owner.ID {
		return Form{}, internal.ErrPermissionDenied
	}

	return form, nil
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Patch")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	form, err := h.ownedForm(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	var req PatchFormRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	owner, _ := auth.GetFromContext(traceCtx)
	input := PatchRequest{
		ID:               form.ID,
		OwnerSlug:        owner.Slug,
		Title:            req.Title,
		Description:      req.Description,
		OwnerIsAnonymous: req.OwnerIsAnonymous,
	}
	if req.Template != nil {
		template := Template(*req.Template)
		input.Template = &template
	}

	updated, err := h.store.Patch(traceCtx, input)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToResponse(updated, nil))
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Close")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	form, err := h.ownedForm(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	closed, err := h.store.Close(traceCtx, form.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToResponse(closed, nil))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Delete")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	form, err := h.ownedForm(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	if err := h.store.Delete(traceCtx, form.ID); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "AddQuestion")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	form, err := h.ownedForm(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	var req QuestionRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	answerable, err := h.questionStore.Create(traceCtx, question.CreateRequest{
		FormID:      form.ID,
		Body:        req.Body,
		AnswerType:  question.AnswerType(req.AnswerType),
		IsRequired:  req.IsRequired,
		Choices:     req.Choices,
		ImageFileID: parseImageFileID(req.ImageFileID),
	})
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, toQuestionResponse(answerable))
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "UpdateQuestion")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	form, err := h.ownedForm(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	questionID, err := handlerutil.ParseUUID(r.PathValue("questionId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	existing, err := h.questionStore.GetByID(traceCtx, questionID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}
	if existing.Question().FormID != form.ID {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrQuestionNotFound, logger)
		return
	}

	var req QuestionRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	answerable, err := h.questionStore.Update(traceCtx, question.UpdateRequest{
		ID:          questionID,
		Body:        req.Body,
		AnswerType:  question.AnswerType(req.AnswerType),
		IsRequired:  req.IsRequired,
		ImageFileID: parseImageFileID(req.ImageFileID),
	})
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, toQuestionResponse(answerable))
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "DeleteQuestion")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	form, err := h.ownedForm(traceCtx, r.PathValue("slug"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	questionID, err := handlerutil.ParseUUID(r.PathValue("questionId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	existing, err := h.questionStore.GetByID(traceCtx, questionID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}
	if existing.Question().FormID != form.ID {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrQuestionNotFound, logger)
		return
	}

	if err := h.questionStore.Delete(traceCtx, questionID); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
