package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/form/answer"
	"formcraft/form-builder-backend/internal/form/question"
	"formcraft/form-builder-backend/internal/form/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) ListByFormID(ctx context.Context, formID uuid.UUID) ([]question.Answerable, error) {
	args := m.Called(ctx, formID)
	answerables, _ := args.Get(0).([]question.Answerable)
	return answerables, args.Error(1)
}

type mockResponseStore struct {
	mock.Mock
}

func (m *mockResponseStore) ListByFormID(ctx context.Context, formID uuid.UUID) ([]response.Response, error) {
	args := m.Called(ctx, formID)
	responses, _ := args.Get(0).([]response.Response)
	return responses, args.Error(1)
}

type mockProjector struct {
	mock.Mock
}

func (m *mockProjector) Project(ctx context.Context, responseID uuid.UUID) ([]answer.View, error) {
	args := m.Called(ctx, responseID)
	views, _ := args.Get(0).([]answer.View)
	return views, args.Error(1)
}

func TestService_BuildTable(t *testing.T) {
	formID := uuid.New()
	nameQuestion := question.Question{ID: uuid.New(), FormID: formID, Body: "Name?", AnswerType: question.AnswerTypeShort}
	ageQuestion := question.Question{ID: uuid.New(), FormID: formID, Body: "Age?", AnswerType: question.AnswerTypeNumber}

	nameAnswerable, err := question.NewAnswerable(nameQuestion, nil)
	require.NoError(t, err)
	ageAnswerable, err := question.NewAnswerable(ageQuestion, nil)
	require.NoError(t, err)

	answered := response.Response{ID: uuid.New(), FormID: formID, RespondentEmail: pgtype.Text{String: "jane@example.com", Valid: true}}
	partial := response.Response{ID: uuid.New(), FormID: formID}

	questionStore := &mockQuestionStore{}
	questionStore.On("ListByFormID", mock.Anything, formID).Return([]question.Answerable{nameAnswerable, ageAnswerable}, nil)

	responseStore := &mockResponseStore{}
	responseStore.On("ListByFormID", mock.Anything, formID).Return([]response.Response{answered, partial}, nil)

	projector := &mockProjector{}
	projector.On("Project", mock.Anything, answered.ID).Return([]answer.View{
		{QuestionID: nameQuestion.ID, QuestionText: "Name?", AnswerType: question.AnswerTypeShort, AnswerValue: "Jane"},
		{QuestionID: ageQuestion.ID, QuestionText: "Age?", AnswerType: question.AnswerTypeNumber, AnswerValue: "30"},
	}, nil)
	projector.On("Project", mock.Anything, partial.ID).Return([]answer.View{
		{QuestionID: nameQuestion.ID, QuestionText: "Name?", AnswerType: question.AnswerTypeShort, AnswerValue: "Bob"},
	}, nil)

	svc := NewService(zap.NewNop(), questionStore, responseStore, projector)

	table, err := svc.BuildTable(context.Background(), formID)
	require.NoError(t, err)

	require.Equal(t, []string{"Response ID", "Respondent", "Name?", "Age?"}, table.Header)
	require.Len(t, table.Rows, 2)
	require.Equal(t, []string{answered.ID.String(), "jane@example.com", "Jane", "30"}, table.Rows[0])
	require.Equal(t, []string{partial.ID.String(), "", "Bob", ""}, table.Rows[1])
}

func testTable() Table {
	return Table{
		Header: []string{"Response ID", "Respondent", "Name?"},
		Rows: [][]string{
			{"r1", "jane@example.com", "Jane"},
			{"r2", "", "<script>alert(1)</script>"},
		},
	}
}

func TestService_Render_CSV(t *testing.T) {
	svc := NewService(zap.NewNop(), nil, nil, nil)

	data, contentType, err := svc.Render(testTable(), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"Response ID", "Respondent", "Name?"}, records[0])
	require.Equal(t, "Jane", records[1][2])
}

func TestService_Render_JSON(t *testing.T) {
	svc := NewService(zap.NewNop(), nil, nil, nil)

	data, contentType, err := svc.Render(testTable(), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, "application/json", contentType)

	var records []map[string]string
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	require.Equal(t, "Jane", records[0]["Name?"])
	require.Equal(t, "jane@example.com", records[0]["Respondent"])
}

func TestService_Render_HTML_Sanitizes(t *testing.T) {
	svc := NewService(zap.NewNop(), nil, nil, nil)

	data, contentType, err := svc.Render(testTable(), FormatHTML)
	require.NoError(t, err)
	require.Equal(t, "text/html; charset=utf-8", contentType)

	html := string(data)
	require.Contains(t, html, "<td>Jane</td>")
	require.NotContains(t, html, "<script>")
}

func TestService_Render_XLSX(t *testing.T) {
	svc := NewService(zap.NewNop(), nil, nil, nil)

	data, contentType, err := svc.Render(testTable(), FormatXLSX)
	require.NoError(t, err)
	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	require.NotEmpty(t, data)
}

func TestService_Render_UnsupportedFormat(t *testing.T) {
	svc := NewService(zap.NewNop(), nil, nil, nil)

	_, _, err := svc.Render(testTable(), Format("pdf"))
	require.ErrorIs(t, err, internal.ErrUnsupportedFormat)
}
