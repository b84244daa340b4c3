package form

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// TombstoneID is the id of the placeholder form that orphaned responses are
// re-pointed to when their form is deleted. The row is seeded by migrations.
var TombstoneID = uuid.Nil

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

type Form struct {
	ID               uuid.UUID
	BusinessID       uuid.UUID
	Title            string
	Slug             string
	Description      pgtype.Text
	Template         string
	OwnerIsAnonymous bool
	IsClosed         bool
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

const formColumns = `id, business_id, title, slug, description, template, owner_is_anonymous, is_closed, created_at, updated_at`

func scanForm(row pgx.Row) (Form, error) {
	var f Form
	err := row.Scan(&f.ID, &f.BusinessID, &f.Title, &f.Slug, &f.Description, &f.Template, &f.OwnerIsAnonymous, &f.IsClosed, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

const create = `
INSERT INTO forms (business_id, title, slug, description, template, owner_is_anonymous)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + formColumns

type CreateParams struct {
	BusinessID       uuid.UUID
	Title            string
	Slug             string
	Description      pgtype.Text
	Template         string
	OwnerIsAnonymous bool
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (Form, error) {
	row := q.db.QueryRow(ctx, create, arg.BusinessID, arg.Title, arg.Slug, arg.Description, arg.Template, arg.OwnerIsAnonymous)
	return scanForm(row)
}

const update = `
UPDATE forms
SET title = $2, slug = $3, description = $4, template = $5, owner_is_anonymous = $6, updated_at = now()
WHERE id = $1
RETURNING ` + formColumns

type UpdateParams struct {
	ID               uuid.UUID
	Title            string
	Slug             string
	Description      pgtype.Text
	Template         string
	OwnerIsAnonymous bool
}

func (q *Queries) Update(ctx context.Context, arg UpdateParams) (Form, error) {
	row := q.db.QueryRow(ctx, update, arg.ID, arg.Title, arg.Slug, arg.Description, arg.Template, arg.OwnerIsAnonymous)
	return scanForm(row)
}

const reassignResponses = `
UPDATE responses SET form_id = $2 WHERE form_id = $1
`

// ReassignResponses re-points a form's responses at another form, normally
// the tombstone, so submissions outlive form deletion.
func (q *Queries) ReassignResponses(ctx context.Context, fromFormID, toFormID uuid.UUID) error {
	_, err := q.db.Exec(ctx, reassignResponses, fromFormID, toFormID)
	return err
}

const setClosed = `
UPDATE forms SET is_closed = $2, updated_at = now() WHERE id = $1
RETURNING ` + formColumns

type SetClosedParams struct {
	ID       uuid.UUID
	IsClosed bool
}

func (q *Queries) SetClosed(ctx context.Context, arg SetClosedParams) (Form, error) {
	row := q.db.QueryRow(ctx, setClosed, arg.ID, arg.IsClosed)
	return scanForm(row)
}

const deleteForm = `
DELETE FROM forms WHERE id = $1
`

func (q *Queries) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteForm, id)
	return err
}

const getByID = `
SELECT ` + formColumns + ` FROM forms WHERE id = $1
`

func (q *Queries) GetByID(ctx context.Context, id uuid.UUID) (Form, error) {
	row := q.db.QueryRow(ctx, getByID, id)
	return scanForm(row)
}

const getBySlug = `
SELECT ` + formColumns + ` FROM forms WHERE slug = $1
`

func (q *Queries) GetBySlug(ctx context.Context, slug string) (Form, error) {
	row := q.db.QueryRow(ctx, getBySlug, slug)
	return scanForm(row)
}

type ListByBusinessIDParams struct {
	BusinessID uuid.UUID
	OrderBy    string
}

// listColumns is the whitelist of sortable columns. Building the ORDER BY
// clause from anything else risks SQL injection.
var listColumns = map[string]bool{
	"title":      true,
	"created_at": true,
	"updated_at": true,
}

func ValidOrderColumn(column string) bool {
	return listColumns[column]
}

func (q *Queries) ListByBusinessID(ctx context.Context, arg ListByBusinessIDParams) ([]Form, error) {
	orderBy := "created_at"
	if listColumns[arg.OrderBy] {
		orderBy = arg.OrderBy
	}

	query := `SELECT ` + formColumns + ` FROM forms WHERE business_id = $1 AND id <> $2 ORDER BY ` + orderBy + ` ASC, id ASC`

	rows, err := q.db.Query(ctx, query, arg.BusinessID, TombstoneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []Form
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}
