package submit

import (
	"context"
	"errors"
	"testing"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/form"
	"formcraft/form-builder-backend/internal/form/question"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockFormStore struct {
	mock.Mock
}

func (m *mockFormStore) GetByID(ctx context.Context, id uuid.UUID) (form.Form, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(form.Form)
	return f, args.Error(1)
}

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) ListByFormID(ctx context.Context, formID uuid.UUID) ([]question.Answerable, error) {
	args := m.Called(ctx, formID)
	answerables, _ := args.Get(0).([]question.Answerable)
	return answerables, args.Error(1)
}

// beginErrorDB fails at Begin so a test can prove the pre-transaction
// checks passed without standing up a database.
type beginErrorDB struct {
	err error
}

func (d beginErrorDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, d.err
}

func mustAnswerable(t *testing.T, q question.Question) question.Answerable {
	t.Helper()
	answerable, err := question.NewAnswerable(q, nil)
	require.NoError(t, err)
	return answerable
}

// newPrecheckService builds a service whose transaction is never reached;
// these tests exercise the validation that runs before Begin.
func newPrecheckService(formStore *mockFormStore, questionStore *mockQuestionStore) *Service {
	return NewService(zap.NewNop(), nil, formStore, questionStore, nil, nil)
}

func TestService_Submit_AnonymityRequired(t *testing.T) {
	formID := uuid.New()

	formStore := &mockFormStore{}
	formStore.On("GetByID", mock.Anything, formID).Return(form.Form{ID: formID, OwnerIsAnonymous: false}, nil)

	svc := newPrecheckService(formStore, &mockQuestionStore{})

	_, err := svc.Submit(context.Background(), formID, "", nil)
	require.ErrorIs(t, err, internal.ErrAnonymityRequired)
}

func TestService_Submit_FormClosed(t *testing.T) {
	formID := uuid.New()

	formStore := &mockFormStore{}
	formStore.On("GetByID", mock.Anything, formID).Return(form.Form{ID: formID, OwnerIsAnonymous: true, IsClosed: true}, nil)

	svc := newPrecheckService(formStore, &mockQuestionStore{})

	_, err := svc.Submit(context.Background(), formID, "", nil)
	require.ErrorIs(t, err, internal.ErrFormClosed)
}

func TestService_Submit_UnknownQuestion(t *testing.T) {
	formID := uuid.New()

	formStore := &mockFormStore{}
	formStore.On("GetByID", mock.Anything, formID).Return(form.Form{ID: formID, OwnerIsAnonymous: true}, nil)

	questionStore := &mockQuestionStore{}
	questionStore.On("ListByFormID", mock.Anything, formID).Return([]question.Answerable{}, nil)

	svc := newPrecheckService(formStore, questionStore)

	_, err := svc.Submit(context.Background(), formID, "", []AnswerInput{
		{QuestionID: uuid.New(), AnswerType: question.AnswerTypeShort, Value: "hello"},
	})
	require.ErrorIs(t, err, internal.ErrQuestionNotFound)
}

func TestService_Submit_MissingRequired(t *testing.T) {
	formID := uuid.New()
	required := question.Question{ID: uuid.New(), FormID: formID, AnswerType: question.AnswerTypeShort, IsRequired: true}
	optional := question.Question{ID: uuid.New(), FormID: formID, AnswerType: question.AnswerTypeLong}

	formStore := &mockFormStore{}
	formStore.On("GetByID", mock.Anything, formID).Return(form.Form{ID: formID, OwnerIsAnonymous: true}, nil)

	questionStore := &mockQuestionStore{}
	questionStore.On("ListByFormID", mock.Anything, formID).Return([]question.Answerable{
		mustAnswerable(t, required),
		mustAnswerable(t, optional),
	}, nil)

	svc := newPrecheckService(formStore, questionStore)

	_, err := svc.Submit(context.Background(), formID, "", []AnswerInput{
		{QuestionID: optional.ID, AnswerType: question.AnswerTypeLong, Value: "present"},
	})
	require.ErrorIs(t, err, internal.ErrResponseIncomplete{})

	var incomplete internal.ErrResponseIncomplete
	require.True(t, errors.As(err, &incomplete))
	require.Equal(t, []uuid.UUID{required.ID}, incomplete.MissingQuestionIDs)
}

// An empty value still covers its question: the submission passes the
// coverage sweep and the required-field check happens inside the
// transaction instead.
func TestService_Submit_EmptyValueCoversRequired(t *testing.T) {
	formID := uuid.New()
	required := question.Question{ID: uuid.New(), FormID: formID, AnswerType: question.AnswerTypeShort, IsRequired: true}

	formStore := &mockFormStore{}
	formStore.On("GetByID", mock.Anything, formID).Return(form.Form{ID: formID, OwnerIsAnonymous: true}, nil)

	questionStore := &mockQuestionStore{}
	questionStore.On("ListByFormID", mock.Anything, formID).Return([]question.Answerable{
		mustAnswerable(t, required),
	}, nil)

	db := beginErrorDB{err: errors.New("begin refused")}
	svc := NewService(zap.NewNop(), db, formStore, questionStore, nil, nil)

	_, err := svc.Submit(context.Background(), formID, "", []AnswerInput{
		{QuestionID: required.ID, AnswerType: question.AnswerTypeShort, Value: ""},
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, internal.ErrResponseIncomplete{})
}
