package questionbuilder

import (
	"formcraft/form-builder-backend/internal/form/question"

	"github.com/google/uuid"
)

type Option func(*FactoryParams)

type FactoryParams struct {
	FormID     uuid.UUID
	Body       string
	AnswerType question.AnswerType
	IsRequired bool
	Choices    []string
}

func WithFormID(formID uuid.UUID) Option {
	return func(p *FactoryParams) { p.FormID = formID }
}

func WithBody(body string) Option {
	return func(p *FactoryParams) { p.Body = body }
}

func WithAnswerType(answerType question.AnswerType) Option {
	return func(p *FactoryParams) { p.AnswerType = answerType }
}

func WithRequired() Option {
	return func(p *FactoryParams) { p.IsRequired = true }
}

func WithChoices(titles ...string) Option {
	return func(p *FactoryParams) { p.Choices = titles }
}
