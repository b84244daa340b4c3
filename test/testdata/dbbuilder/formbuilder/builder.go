package formbuilder

import (
	"context"
	"testing"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/form"
	"formcraft/form-builder-backend/test/testdata"
	"formcraft/form-builder-backend/test/testdata/dbbuilder"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

type Builder struct {
	t  *testing.T
	db dbbuilder.DBTX
}

func New(t *testing.T, db dbbuilder.DBTX) *Builder {
	return &Builder{t: t, db: db}
}

func (b Builder) Queries() *form.Queries {
	return form.New(b.db)
}

func (b Builder) Create(opts ...Option) form.Form {
	p := &FactoryParams{
		Title:            testdata.RandomName(),
		Description:      testdata.RandomDescription(),
		Template:         form.TemplateBlank,
		OwnerIsAnonymous: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NotEqual(b.t, [16]byte{}, p.BusinessID, "form builder needs WithBusiness")

	row, err := b.Queries().Create(context.Background(), form.CreateParams{
		BusinessID:       p.BusinessID,
		Title:            p.Title,
		Slug:             internal.Slugify(p.OwnerSlug + "-" + p.Title),
		Description:      pgtype.Text{String: p.Description, Valid: p.Description != ""},
		Template:         string(p.Template),
		OwnerIsAnonymous: p.OwnerIsAnonymous,
	})
	require.NoError(b.t, err)

	if p.IsClosed {
		row, err = b.Queries().SetClosed(context.Background(), form.SetClosedParams{ID: row.ID, IsClosed: true})
		require.NoError(b.t, err)
	}

	return row
}
