package business

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type Business struct {
	ID        uuid.UUID
	Label     string
	Slug      string
	CreatedAt pgtype.Timestamptz
}

const create = `
INSERT INTO businesses (label, slug)
VALUES ($1, $2)
RETURNING id, label, slug, created_at
`

type CreateParams struct {
	Label string
	Slug  string
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (Business, error) {
	row := q.db.QueryRow(ctx, create, arg.Label, arg.Slug)
	var b Business
	err := row.Scan(&b.ID, &b.Label, &b.Slug, &b.CreatedAt)
	return b, err
}

const getByID = `
SELECT id, label, slug, created_at FROM businesses WHERE id = $1
`

func (q *Queries) GetByID(ctx context.Context, id uuid.UUID) (Business, error) {
	row := q.db.QueryRow(ctx, getByID, id)
	var b Business
	err := row.Scan(&b.ID, &b.Label, &b.Slug, &b.CreatedAt)
	return b, err
}

const getBySlug = `
SELECT id, label, slug, created_at FROM businesses WHERE slug = $1
`

func (q *Queries) GetBySlug(ctx context.Context, slug string) (Business, error) {
	row := q.db.QueryRow(ctx, getBySlug, slug)
	var b Business
	err := row.Scan(&b.ID, &b.Label, &b.Slug, &b.CreatedAt)
	return b, err
}

