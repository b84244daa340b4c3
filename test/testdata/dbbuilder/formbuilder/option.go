package formbuilder

import (
	"formcraft/form-builder-backend/internal/business"
	"formcraft/form-builder-backend/internal/form"

	"github.com/google/uuid"
)

type Option func(*FactoryParams)

type FactoryParams struct {
	BusinessID       uuid.UUID
	OwnerSlug        string
	Title            string
	Description      string
	Template         form.Template
	OwnerIsAnonymous bool
	IsClosed         bool
}

func WithBusiness(b business.Business) Option {
	return func(p *FactoryParams) {
		p.BusinessID = b.ID
		p.OwnerSlug = b.Slug
	}
}

func WithTitle(title string) Option {
	return func(p *FactoryParams) { p.Title = title }
}

func WithDescription(description string) Option {
	return func(p *FactoryParams) { p.Description = description }
}

func WithTemplate(template form.Template) Option {
	return func(p *FactoryParams) { p.Template = template }
}

func WithOwnerIsAnonymous(anonymous bool) Option {
	return func(p *FactoryParams) { p.OwnerIsAnonymous = anonymous }
}

func WithClosed() Option {
	return func(p *FactoryParams) { p.IsClosed = true }
}
