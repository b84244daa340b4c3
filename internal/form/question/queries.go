package question

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

type Question struct {
	ID          uuid.UUID
	FormID      uuid.UUID
	Body        string
	AnswerType  AnswerType
	IsRequired  bool
	ImageFileID pgtype.UUID
	CreatedAt   pgtype.Timestamptz
}

type Choice struct {
	ID         uuid.UUID
	QuestionID uuid.UUID
	Title      string
}

const create = `
INSERT INTO questions (form_id, body, answer_type, is_required, image_file_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, form_id, body, answer_type, is_required, image_file_id, created_at
`

type CreateParams struct {
	FormID      uuid.UUID
	Body        string
	AnswerType  AnswerType
	IsRequired  bool
	ImageFileID pgtype.UUID
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (Question, error) {
	row := q.db.QueryRow(ctx, create,
		arg.FormID,
		arg.Body,
		arg.AnswerType,
		arg.IsRequired,
		arg.ImageFileID,
	)
	var question Question
	err := row.Scan(
		&question.ID,
		&question.FormID,
		&question.Body,
		&question.AnswerType,
		&question.IsRequired,
		&question.ImageFileID,
		&question.CreatedAt,
	)
	return question, err
}

const update = `
UPDATE questions
SET body = $2, answer_type = $3, is_required = $4, image_file_id = $5
WHERE id = $1
RETURNING id, form_id, body, answer_type, is_required, image_file_id, created_at
`

type UpdateParams struct {
	ID          uuid.UUID
	Body        string
	AnswerType  AnswerType
	IsRequired  bool
	ImageFileID pgtype.UUID
}

func (q *Queries) Update(ctx context.Context, arg UpdateParams) (Question, error) {
	row := q.db.QueryRow(ctx, update,
		arg.ID,
		arg.Body,
		arg.AnswerType,
		arg.IsRequired,
		arg.ImageFileID,
	)
	var question Question
	err := row.Scan(
		&question.ID,
		&question.FormID,
		&question.Body,
		&question.AnswerType,
		&question.IsRequired,
		&question.ImageFileID,
		&question.CreatedAt,
	)
	return question, err
}

const deleteQuestion = `
DELETE FROM questions WHERE id = $1
`

func (q *Queries) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteQuestion, id)
	return err
}

const getByID = `
SELECT id, form_id, body, answer_type, is_required, image_file_id, created_at
FROM questions
WHERE id = $1
`

func (q *Queries) GetByID(ctx context.Context, id uuid.UUID) (Question, error) {
	row := q.db.QueryRow(ctx, getByID, id)
	var question Question
	err := row.Scan(
		&question.ID,
		&question.FormID,
		&question.Body,
		&question.AnswerType,
		&question.IsRequired,
		&question.ImageFileID,
		&question.CreatedAt,
	)
	return question, err
}

const listByFormID = `
SELECT id, form_id, body, answer_type, is_required, image_file_id, created_at
FROM questions
WHERE form_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListByFormID(ctx context.Context, formID uuid.UUID) ([]Question, error) {
	rows, err := q.db.Query(ctx, listByFormID, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Question
	for rows.Next() {
		var question Question
		if err := rows.Scan(
			&question.ID,
			&question.FormID,
			&question.Body,
			&question.AnswerType,
			&question.IsRequired,
			&question.ImageFileID,
			&question.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, question)
	}
	return items, rows.Err()
}

const createChoice = `
INSERT INTO choices (question_id, title)
VALUES ($1, $2)
RETURNING id, question_id, title
`

type CreateChoiceParams struct {
	QuestionID uuid.UUID
	Title      string
}

func (q *Queries) CreateChoice(ctx context.Context, arg CreateChoiceParams) (Choice, error) {
	row := q.db.QueryRow(ctx, createChoice, arg.QuestionID, arg.Title)
	var choice Choice
	err := row.Scan(&choice.ID, &choice.QuestionID, &choice.Title)
	return choice, err
}

const deleteChoice = `
DELETE FROM choices WHERE id = $1
`

func (q *Queries) DeleteChoice(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteChoice, id)
	return err
}

const listChoicesByQuestionID = `
SELECT id, question_id, title
FROM choices
WHERE question_id = $1
ORDER BY id
`

func (q *Queries) ListChoicesByQuestionID(ctx context.Context, questionID uuid.UUID) ([]Choice, error) {
	rows, err := q.db.Query(ctx, listChoicesByQuestionID, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Choice
	for rows.Next() {
		var choice Choice
		if err := rows.Scan(&choice.ID, &choice.QuestionID, &choice.Title); err != nil {
			return nil, err
		}
		items = append(items, choice)
	}
	return items, rows.Err()
}

const listChoicesByFormID = `
SELECT c.id, c.question_id, c.title
FROM choices c
JOIN questions q ON q.id = c.question_id
WHERE q.form_id = $1
ORDER BY c.id
`

func (q *Queries) ListChoicesByFormID(ctx context.Context, formID uuid.UUID) ([]Choice, error) {
	rows, err := q.db.Query(ctx, listChoicesByFormID, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Choice
	for rows.Next() {
		var choice Choice
		if err := rows.Scan(&choice.ID, &choice.QuestionID, &choice.Title); err != nil {
			return nil, err
		}
		items = append(items, choice)
	}
	return items, rows.Err()
}
