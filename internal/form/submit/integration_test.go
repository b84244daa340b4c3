package submit_test

import (
	"context"
	"testing"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/file"
	"formcraft/form-builder-backend/internal/form"
	"formcraft/form-builder-backend/internal/form/answer"
	"formcraft/form-builder-backend/internal/form/question"
	"formcraft/form-builder-backend/internal/form/response"
	"formcraft/form-builder-backend/internal/form/submit"
	"formcraft/form-builder-backend/test/testdata"
	"formcraft/form-builder-backend/test/testdata/dbbuilder/businessbuilder"
	"formcraft/form-builder-backend/test/testdata/dbbuilder/formbuilder"
	"formcraft/form-builder-backend/test/testdata/dbbuilder/questionbuilder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type env struct {
	db        *pgxpool.Pool
	forms     *form.Service
	questions *question.Service
	answers   *answer.Service
	responses *response.Service
	submit    *submit.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test needs docker")
	}

	db := testdata.NewDB(t)
	logger := zap.NewNop()

	answers := answer.NewService(logger, db)
	questions := question.NewService(logger, db, answers)
	forms := form.NewService(logger, db)
	responses := response.NewService(logger, db)
	files := file.NewService(logger, db, t.TempDir())
	submitService := submit.NewService(logger, db, forms, questions, files, answers)

	return &env{
		db:        db,
		forms:     forms,
		questions: questions,
		answers:   answers,
		responses: responses,
		submit:    submitService,
	}
}

func (e *env) responseCount(t *testing.T, formID uuid.UUID) int {
	t.Helper()
	responses, err := e.responses.ListByFormID(context.Background(), formID)
	require.NoError(t, err)
	return len(responses)
}

func TestSubmit_FullFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := businessbuilder.New(t, e.db).Create()
	f := formbuilder.New(t, e.db).Create(formbuilder.WithBusiness(owner))

	qb := questionbuilder.New(t, e.db)
	name := qb.Create(
		questionbuilder.WithFormID(f.ID),
		questionbuilder.WithBody("Name?"),
		questionbuilder.WithAnswerType(question.AnswerTypeShort),
		questionbuilder.WithRequired(),
	)
	color := qb.Create(
		questionbuilder.WithFormID(f.ID),
		questionbuilder.WithBody("Favorite color?"),
		questionbuilder.WithAnswerType(question.AnswerTypeMultipleChoice),
		questionbuilder.WithChoices("Red", "Blue"),
	)
	age := qb.Create(
		questionbuilder.WithFormID(f.ID),
		questionbuilder.WithBody("Age?"),
		questionbuilder.WithAnswerType(question.AnswerTypeNumber),
	)
	choices := qb.Choices(color)

	result, err := e.submit.Submit(ctx, f.ID, testdata.RandomEmail(), []submit.AnswerInput{
		{QuestionID: name.ID, AnswerType: question.AnswerTypeShort, Value: "Jane"},
		{QuestionID: color.ID, AnswerType: question.AnswerTypeMultipleChoice, Value: choices[0].ID.String()},
		{QuestionID: age.ID, AnswerType: question.AnswerTypeNumber, Value: "30"},
	})
	require.NoError(t, err)
	require.Equal(t, f.ID, result.Response.FormID)
	require.Len(t, result.Answers, 3)

	byQuestion := make(map[uuid.UUID]answer.View)
	for _, v := range result.Answers {
		byQuestion[v.QuestionID] = v
	}
	require.Equal(t, "Jane", byQuestion[name.ID].AnswerValue)
	require.Equal(t, "Red", byQuestion[color.ID].AnswerValue, "choice answers project the choice title")
	require.Equal(t, "30", byQuestion[age.ID].AnswerValue)
}

func TestSubmit_RollsBackOnInvalidAnswer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := businessbuilder.New(t, e.db).Create()
	f := formbuilder.New(t, e.db).Create(formbuilder.WithBusiness(owner))

	qb := questionbuilder.New(t, e.db)
	name := qb.Create(questionbuilder.WithFormID(f.ID), questionbuilder.WithAnswerType(question.AnswerTypeShort))
	color := qb.Create(
		questionbuilder.WithFormID(f.ID),
		questionbuilder.WithAnswerType(question.AnswerTypeMultipleChoice),
		questionbuilder.WithChoices("Red"),
	)

	_, err := e.submit.Submit(ctx, f.ID, "", []submit.AnswerInput{
		{QuestionID: name.ID, AnswerType: question.AnswerTypeShort, Value: "Jane"},
		{QuestionID: color.ID, AnswerType: question.AnswerTypeMultipleChoice, Value: uuid.New().String()},
	})
	require.ErrorIs(t, err, internal.ErrInvalidChoice)

	require.Zero(t, e.responseCount(t, f.ID), "failed submission must leave nothing behind")
}

// A required question answered with an empty value is a required-field
// failure inside the transaction, not an incomplete submission.
func TestSubmit_RequiredEmptyValue(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := businessbuilder.New(t, e.db).Create()
	f := formbuilder.New(t, e.db).Create(formbuilder.WithBusiness(owner))

	name := questionbuilder.New(t, e.db).Create(
		questionbuilder.WithFormID(f.ID),
		questionbuilder.WithAnswerType(question.AnswerTypeShort),
		questionbuilder.WithRequired(),
	)

	_, err := e.submit.Submit(ctx, f.ID, "", []submit.AnswerInput{
		{QuestionID: name.ID, AnswerType: question.AnswerTypeShort, Value: "   "},
	})
	require.ErrorIs(t, err, internal.ErrRequiredField)
	require.NotErrorIs(t, err, internal.ErrResponseIncomplete{})

	require.Zero(t, e.responseCount(t, f.ID))
}

func TestSubmit_DuplicateAnswerInOneSubmission(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := businessbuilder.New(t, e.db).Create()
	f := formbuilder.New(t, e.db).Create(formbuilder.WithBusiness(owner))

	name := questionbuilder.New(t, e.db).Create(
		questionbuilder.WithFormID(f.ID),
		questionbuilder.WithAnswerType(question.AnswerTypeShort),
	)

	_, err := e.submit.Submit(ctx, f.ID, "", []submit.AnswerInput{
		{QuestionID: name.ID, AnswerType: question.AnswerTypeShort, Value: "Jane"},
		{QuestionID: name.ID, AnswerType: question.AnswerTypeShort, Value: "Janet"},
	})
	require.ErrorIs(t, err, internal.ErrDuplicateAnswer)

	require.Zero(t, e.responseCount(t, f.ID))
}

func TestSubmit_ClosedForm(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := businessbuilder.New(t, e.db).Create()
	f := formbuilder.New(t, e.db).Create(formbuilder.WithBusiness(owner), formbuilder.WithClosed())

	_, err := e.submit.Submit(ctx, f.ID, "", nil)
	require.ErrorIs(t, err, internal.ErrFormClosed)
}

func TestSubmit_AnswerTypeLockedAfterSubmission(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := businessbuilder.New(t, e.db).Create()
	f := formbuilder.New(t, e.db).Create(formbuilder.WithBusiness(owner))

	name := questionbuilder.New(t, e.db).Create(
		questionbuilder.WithFormID(f.ID),
		questionbuilder.WithAnswerType(question.AnswerTypeShort),
	)

	_, err := e.submit.Submit(ctx, f.ID, "", []submit.AnswerInput{
		{QuestionID: name.ID, AnswerType: question.AnswerTypeShort, Value: "Jane"},
	})
	require.NoError(t, err)

	_, err = e.questions.Update(ctx, question.UpdateRequest{
		ID:         name.ID,
		Body:       name.Body,
		AnswerType: question.AnswerTypeLong,
	})
	require.ErrorIs(t, err, internal.ErrAnswerTypeLocked)

	// Body changes stay allowed.
	updated, err := e.questions.Update(ctx, question.UpdateRequest{
		ID:         name.ID,
		Body:       "Full name?",
		AnswerType: question.AnswerTypeShort,
	})
	require.NoError(t, err)
	require.Equal(t, "Full name?", updated.Question().Body)
}

func TestDeleteForm_RepointsResponsesToTombstone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := businessbuilder.New(t, e.db).Create()
	f := formbuilder.New(t, e.db).Create(formbuilder.WithBusiness(owner))

	name := questionbuilder.New(t, e.db).Create(
		questionbuilder.WithFormID(f.ID),
		questionbuilder.WithAnswerType(question.AnswerTypeShort),
	)

	result, err := e.submit.Submit(ctx, f.ID, "", []submit.AnswerInput{
		{QuestionID: name.ID, AnswerType: question.AnswerTypeShort, Value: "Jane"},
	})
	require.NoError(t, err)

	require.NoError(t, e.forms.Delete(ctx, f.ID))

	_, err = e.forms.GetByID(ctx, f.ID)
	require.ErrorIs(t, err, internal.ErrFormNotFound)

	survivor, err := e.responses.GetByID(ctx, result.Response.ID)
	require.NoError(t, err)
	require.Equal(t, form.TombstoneID, survivor.FormID)
}

func TestCreateForm_DuplicateTitle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := businessbuilder.New(t, e.db).Create()

	input := form.CreateRequest{
		BusinessID: owner.ID,
		OwnerSlug:  owner.Slug,
		Title:      "Yearly Survey",
	}

	_, err := e.forms.Create(ctx, input)
	require.NoError(t, err)

	_, err = e.forms.Create(ctx, input)
	require.ErrorIs(t, err, internal.ErrDuplicateTitle)
}
