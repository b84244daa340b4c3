package internal

import (
	"errors"
	"strings"

	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/google/uuid"
)

// ErrResponseIncomplete is returned when a submission is missing answers for
// required questions. It carries the missing question IDs so callers can
// surface field-level feedback.
type ErrResponseIncomplete struct {
	MissingQuestionIDs []uuid.UUID
}

func (e ErrResponseIncomplete) Error() string {
	ids := make([]string, len(e.MissingQuestionIDs))
	for i, id := range e.MissingQuestionIDs {
		ids[i] = id.String()
	}

	return "response is incomplete, required questions not answered: " + strings.Join(ids, ", ")
}

func (e ErrResponseIncomplete) Is(target error) bool {
	_, ok := target.(ErrResponseIncomplete)
	return ok
}

var (
	// Auth Errors
	ErrMissingAuthHeader       = errors.New("missing access token")
	ErrInvalidAuthHeaderFormat = errors.New("invalid access token")
	ErrInvalidJWTToken         = errors.New("invalid JWT token")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrInternalServerError     = errors.New("internal server error")
	ErrNotFound                = errors.New("not found")
	ErrInvalidRequestBody      = errors.New("invalid request body")

	// Business Errors
	ErrBusinessNotFound      = errors.New("business not found")
	ErrNoBusinessInContext   = errors.New("no business found in request context")
	ErrBusinessLabelConflict = errors.New("business label already taken")

	// Form Errors
	ErrFormNotFound       = errors.New("form not found")
	ErrDuplicateTitle     = errors.New("a form with this title already exists for this owner")
	ErrFormClosed         = errors.New("form is closed and no longer accepts responses")
	ErrInvalidOrderColumn = errors.New("invalid order_by column")

	// Question Errors
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidSchema    = errors.New("question configuration does not match its answer type")
	ErrAnswerTypeLocked = errors.New("answer type cannot change once answers exist")
	ErrUnsupportedType  = errors.New("unsupported answer type")
	ErrChoiceNotFound   = errors.New("choice not found")

	// Answer Errors
	ErrDuplicateAnswer = errors.New("question already answered in this response")
	ErrTypeMismatch    = errors.New("answer variant does not match the question's answer type")
	ErrRequiredField   = errors.New("answer is required but empty")
	ErrInvalidChoice   = errors.New("selected choice does not belong to this question")
	ErrInvalidFormat   = errors.New("answer value does not match the expected format")

	// Response Errors
	ErrResponseNotFound  = errors.New("response not found")
	ErrAnonymityRequired = errors.New("form does not accept anonymous responses, email required")

	// Export Errors
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// File Errors
	ErrFileNotFound     = errors.New("file not found")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
	ErrInvalidMultipart = errors.New("failed to parse multipart form")
)

func NewProblemWriter() *problem.HttpWriter {
	return problem.NewWithMapping(ErrorHandler)
}

func ErrorHandler(err error) problem.Problem {
	switch {
	// Auth Errors
	case errors.Is(err, ErrMissingAuthHeader):
		return problem.NewUnauthorizedProblem("missing access token")
	case errors.Is(err, ErrInvalidAuthHeaderFormat):
		return problem.NewUnauthorizedProblem("invalid access token")
	case errors.Is(err, ErrInvalidJWTToken):
		return problem.NewUnauthorizedProblem("invalid JWT token")
	case errors.Is(err, ErrPermissionDenied):
		return problem.NewForbiddenProblem("permission denied")
	case errors.Is(err, ErrInternalServerError):
		return problem.NewInternalServerProblem("internal server error")
	case errors.Is(err, ErrNotFound):
		return problem.NewNotFoundProblem("not found")
	case errors.Is(err, ErrInvalidRequestBody):
		return problem.NewBadRequestProblem("invalid request body")

	// Business Errors
	case errors.Is(err, ErrBusinessNotFound):
		return problem.NewNotFoundProblem("business not found")
	case errors.Is(err, ErrNoBusinessInContext):
		return problem.NewUnauthorizedProblem("no business found in request context")
	case errors.Is(err, ErrBusinessLabelConflict):
		return problem.NewValidateProblem("business label already taken")

	// Form Errors
	case errors.Is(err, ErrFormNotFound):
		return problem.NewNotFoundProblem("form not found")
	case errors.Is(err, ErrDuplicateTitle):
		return problem.NewValidateProblem("a form with this title already exists for this owner")
	case errors.Is(err, ErrFormClosed):
		return problem.NewValidateProblem("form is closed and no longer accepts responses")
	case errors.Is(err, ErrInvalidOrderColumn):
		return problem.NewBadRequestProblem("invalid order_by column")

	// Question Errors
	case errors.Is(err, ErrQuestionNotFound):
		return problem.NewNotFoundProblem("question not found")
	case errors.Is(err, ErrInvalidSchema):
		return problem.NewValidateProblem("question configuration does not match its answer type")
	case errors.Is(err, ErrAnswerTypeLocked):
		return problem.NewValidateProblem("answer type cannot change once answers exist")
	case errors.Is(err, ErrUnsupportedType):
		return problem.NewBadRequestProblem("unsupported answer type")
	case errors.Is(err, ErrChoiceNotFound):
		return problem.NewNotFoundProblem("choice not found")

	// Answer Errors
	case errors.Is(err, ErrDuplicateAnswer):
		return problem.NewValidateProblem("question already answered in this response")
	case errors.Is(err, ErrTypeMismatch):
		return problem.NewValidateProblem("answer variant does not match the question's answer type")
	case errors.Is(err, ErrRequiredField):
		return problem.NewValidateProblem("answer is required but empty")
	case errors.Is(err, ErrInvalidChoice):
		return problem.NewValidateProblem("selected choice does not belong to this question")
	case errors.Is(err, ErrInvalidFormat):
		return problem.NewValidateProblem("answer value does not match the expected format")

	// Response Errors
	case errors.Is(err, ErrResponseNotFound):
		return problem.NewNotFoundProblem("response not found")
	case errors.Is(err, ErrAnonymityRequired):
		return problem.NewValidateProblem("form does not accept anonymous responses, email required")
	case errors.Is(err, ErrResponseIncomplete{}):
		return problem.NewValidateProblem(err.Error())

	// Export Errors
	case errors.Is(err, ErrUnsupportedFormat):
		return problem.NewBadRequestProblem("unsupported export format")

	// File Errors
	case errors.Is(err, ErrFileNotFound):
		return problem.NewNotFoundProblem("file not found")
	case errors.Is(err, ErrFileTooLarge):
		return problem.NewValidateProblem("file exceeds maximum size (max 100MB)")
	case errors.Is(err, ErrInvalidMultipart):
		return problem.NewBadRequestProblem("failed to parse multipart form")
	}
	return problem.Problem{}
}
