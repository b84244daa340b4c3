package file

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

type File struct {
	ID          uuid.UUID
	Filename    string
	ContentType string
	Size        int64
	CreatedAt   pgtype.Timestamptz
}

const create = `
INSERT INTO files (filename, content_type, size)
VALUES ($1, $2, $3)
RETURNING id, filename, content_type, size, created_at
`

type CreateParams struct {
	Filename    string
	ContentType string
	Size        int64
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (File, error) {
	row := q.db.QueryRow(ctx, create, arg.Filename, arg.ContentType, arg.Size)
	var f File
	err := row.Scan(&f.ID, &f.Filename, &f.ContentType, &f.Size, &f.CreatedAt)
	return f, err
}

const getByID = `
SELECT id, filename, content_type, size, created_at FROM files WHERE id = $1
`

func (q *Queries) GetByID(ctx context.Context, id uuid.UUID) (File, error) {
	row := q.db.QueryRow(ctx, getByID, id)
	var f File
	err := row.Scan(&f.ID, &f.Filename, &f.ContentType, &f.Size, &f.CreatedAt)
	return f, err
}

const exists = `
SELECT EXISTS(SELECT 1 FROM files WHERE id = $1)
`

func (q *Queries) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	row := q.db.QueryRow(ctx, exists, id)
	var ok bool
	err := row.Scan(&ok)
	return ok, err
}
