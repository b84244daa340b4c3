package answer

import (
	"context"
	"strconv"

	"formcraft/form-builder-backend/internal/form/question"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

// View is one stored answer joined with its question, uniform across the
// variant tables. Multiple-choice answers surface the choice title, file
// answers the file id.
type View struct {
	QuestionID   uuid.UUID
	QuestionText string
	AnswerType   question.AnswerType
	AnswerValue  string
}

type TextAnswerParams struct {
	ResponseID uuid.UUID
	QuestionID uuid.UUID
	Value      string
}

type NumberAnswerParams struct {
	ResponseID uuid.UUID
	QuestionID uuid.UUID
	Value      int64
}

type ChoiceAnswerParams struct {
	ResponseID uuid.UUID
	QuestionID uuid.UUID
	ChoiceID   uuid.UUID
}

type FileAnswerParams struct {
	ResponseID uuid.UUID
	QuestionID uuid.UUID
	FileID     uuid.UUID
}

const createLong = `
INSERT INTO long_answers (response_id, question_id, value) VALUES ($1, $2, $3)
`

func (q *Queries) CreateLong(ctx context.Context, arg TextAnswerParams) error {
	_, err := q.db.Exec(ctx, createLong, arg.ResponseID, arg.QuestionID, arg.Value)
	return err
}

const createShort = `
INSERT INTO short_answers (response_id, question_id, value) VALUES ($1, $2, $3)
`

func (q *Queries) CreateShort(ctx context.Context, arg TextAnswerParams) error {
	_, err := q.db.Exec(ctx, createShort, arg.ResponseID, arg.QuestionID, arg.Value)
	return err
}

const createEmail = `
INSERT INTO email_answers (response_id, question_id, value) VALUES ($1, $2, $3)
`

func (q *Queries) CreateEmail(ctx context.Context, arg TextAnswerParams) error {
	_, err := q.db.Exec(ctx, createEmail, arg.ResponseID, arg.QuestionID, arg.Value)
	return err
}

const createPhoneNumber = `
INSERT INTO phone_number_answers (response_id, question_id, value) VALUES ($1, $2, $3)
`

func (q *Queries) CreatePhoneNumber(ctx context.Context, arg TextAnswerParams) error {
	_, err := q.db.Exec(ctx, createPhoneNumber, arg.ResponseID, arg.QuestionID, arg.Value)
	return err
}

const createNumber = `
INSERT INTO number_answers (response_id, question_id, value) VALUES ($1, $2, $3)
`

func (q *Queries) CreateNumber(ctx context.Context, arg NumberAnswerParams) error {
	_, err := q.db.Exec(ctx, createNumber, arg.ResponseID, arg.QuestionID, arg.Value)
	return err
}

const createMultipleChoice = `
INSERT INTO multiple_choice_answers (response_id, question_id, choice_id) VALUES ($1, $2, $3)
`

func (q *Queries) CreateMultipleChoice(ctx context.Context, arg ChoiceAnswerParams) error {
	_, err := q.db.Exec(ctx, createMultipleChoice, arg.ResponseID, arg.QuestionID, arg.ChoiceID)
	return err
}

const createFile = `
INSERT INTO file_answers (response_id, question_id, file_id) VALUES ($1, $2, $3)
`

func (q *Queries) CreateFile(ctx context.Context, arg FileAnswerParams) error {
	_, err := q.db.Exec(ctx, createFile, arg.ResponseID, arg.QuestionID, arg.FileID)
	return err
}

func (q *Queries) textViewsByResponseID(ctx context.Context, table string, responseID uuid.UUID) ([]View, error) {
	query := `
SELECT a.question_id, q.body, q.answer_type, a.value
FROM ` + table + ` a
JOIN questions q ON q.id = a.question_id
WHERE a.response_id = $1
ORDER BY a.created_at, a.id
`
	rows, err := q.db.Query(ctx, query, responseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.QuestionID, &v.QuestionText, &v.AnswerType, &v.AnswerValue); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (q *Queries) LongViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error) {
	return q.textViewsByResponseID(ctx, "long_answers", responseID)
}

func (q *Queries) ShortViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error) {
	return q.textViewsByResponseID(ctx, "short_answers", responseID)
}

func (q *Queries) EmailViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error) {
	return q.textViewsByResponseID(ctx, "email_answers", responseID)
}

func (q *Queries) PhoneNumberViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error) {
	return q.textViewsByResponseID(ctx, "phone_number_answers", responseID)
}

const numberViews = `
SELECT a.question_id, q.body, q.answer_type, a.value
FROM number_answers a
JOIN questions q ON q.id = a.question_id
WHERE a.response_id = $1
ORDER BY a.created_at, a.id
`

func (q *Queries) NumberViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error) {
	rows, err := q.db.Query(ctx, numberViews, responseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var v View
		var value int64
		if err := rows.Scan(&v.QuestionID, &v.QuestionText, &v.AnswerType, &value); err != nil {
			return nil, err
		}
		v.AnswerValue = strconv.FormatInt(value, 10)
		views = append(views, v)
	}
	return views, rows.Err()
}

const multipleChoiceViews = `
SELECT a.question_id, q.body, q.answer_type, c.title
FROM multiple_choice_answers a
JOIN questions q ON q.id = a.question_id
JOIN choices c ON c.id = a.choice_id
WHERE a.response_id = $1
ORDER BY a.created_at, a.id
`

func (q *Queries) MultipleChoiceViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error) {
	rows, err := q.db.Query(ctx, multipleChoiceViews, responseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.QuestionID, &v.QuestionText, &v.AnswerType, &v.AnswerValue); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

const fileViews = `
SELECT a.question_id, q.body, q.answer_type, a.file_id
FROM file_answers a
JOIN questions q ON q.id = a.question_id
WHERE a.response_id = $1
ORDER BY a.created_at, a.id
`

func (q *Queries) FileViewsByResponseID(ctx context.Context, responseID uuid.UUID) ([]View, error) {
	rows, err := q.db.Query(ctx, fileViews, responseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var v View
		var fileID uuid.UUID
		if err := rows.Scan(&v.QuestionID, &v.QuestionText, &v.AnswerType, &fileID); err != nil {
			return nil, err
		}
		v.AnswerValue = fileID.String()
		views = append(views, v)
	}
	return views, rows.Err()
}

const hasAnswersForQuestion = `
SELECT EXISTS(SELECT 1 FROM long_answers WHERE question_id = $1)
    OR EXISTS(SELECT 1 FROM short_answers WHERE question_id = $1)
    OR EXISTS(SELECT 1 FROM multiple_choice_answers WHERE question_id = $1)
    OR EXISTS(SELECT 1 FROM email_answers WHERE question_id = $1)
    OR EXISTS(SELECT 1 FROM phone_number_answers WHERE question_id = $1)
    OR EXISTS(SELECT 1 FROM number_answers WHERE question_id = $1)
    OR EXISTS(SELECT 1 FROM file_answers WHERE question_id = $1)
`

func (q *Queries) HasAnswersForQuestion(ctx context.Context, questionID uuid.UUID) (bool, error) {
	row := q.db.QueryRow(ctx, hasAnswersForQuestion, questionID)
	var ok bool
	err := row.Scan(&ok)
	return ok, err
}
