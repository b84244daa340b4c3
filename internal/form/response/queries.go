package response

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

type Response struct {
	ID              uuid.UUID
	FormID          uuid.UUID
	RespondentEmail pgtype.Text
	CreatedAt       pgtype.Timestamptz
}

const create = `
INSERT INTO responses (form_id, respondent_email)
VALUES ($1, $2)
RETURNING id, form_id, respondent_email, created_at
`

type CreateParams struct {
	FormID          uuid.UUID
	RespondentEmail pgtype.Text
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (Response, error) {
	row := q.db.QueryRow(ctx, create, arg.FormID, arg.RespondentEmail)
	var r Response
	err := row.Scan(&r.ID, &r.FormID, &r.RespondentEmail, &r.CreatedAt)
	return r, err
}

const getByID = `
SELECT id, form_id, respondent_email, created_at FROM responses WHERE id = $1
`

func (q *Queries) GetByID(ctx context.Context, id uuid.UUID) (Response, error) {
	row := q.db.QueryRow(ctx, getByID, id)
	var r Response
	err := row.Scan(&r.ID, &r.FormID, &r.RespondentEmail, &r.CreatedAt)
	return r, err
}

const listByFormID = `
SELECT id, form_id, respondent_email, created_at FROM responses
WHERE form_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListByFormID(ctx context.Context, formID uuid.UUID) ([]Response, error) {
	rows, err := q.db.Query(ctx, listByFormID, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []Response
	for rows.Next() {
		var r Response
		if err := rows.Scan(&r.ID, &r.FormID, &r.RespondentEmail, &r.CreatedAt); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}
