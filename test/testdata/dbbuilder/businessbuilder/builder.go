package businessbuilder

import (
	"context"
	"testing"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/business"
	"formcraft/form-builder-backend/test/testdata"
	"formcraft/form-builder-backend/test/testdata/dbbuilder"

	"github.com/stretchr/testify/require"
)

type Builder struct {
	t  *testing.T
	db dbbuilder.DBTX
}

func New(t *testing.T, db dbbuilder.DBTX) *Builder {
	return &Builder{t: t, db: db}
}

func (b Builder) Queries() *business.Queries {
	return business.New(b.db)
}

func (b Builder) Create(opts ...Option) business.Business {
	p := &FactoryParams{
		Label: testdata.RandomLabel(),
	}
	for _, opt := range opts {
		opt(p)
	}

	row, err := b.Queries().Create(context.Background(), business.CreateParams{
		Label: p.Label,
		Slug:  internal.Slugify(p.Label),
	})
	require.NoError(b.t, err)

	return row
}
