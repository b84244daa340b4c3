package questionbuilder

import (
	"context"
	"testing"

	"formcraft/form-builder-backend/internal/form/question"
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

func (b Builder) Queries() *question.Queries {
	return question.New(b.db)
}

func (b Builder) Create(opts ...Option) question.Question {
	p := &FactoryParams{
		Body:       testdata.RandomQuestionBody(),
		AnswerType: question.AnswerTypeShort,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NotEqual(b.t, [16]byte{}, p.FormID, "question builder needs WithFormID")

	row, err := b.Queries().Create(context.Background(), question.CreateParams{
		FormID:     p.FormID,
		Body:       p.Body,
		AnswerType: p.AnswerType,
		IsRequired: p.IsRequired,
	})
	require.NoError(b.t, err)

	for _, title := range p.Choices {
		_, err := b.Queries().CreateChoice(context.Background(), question.CreateChoiceParams{
			QuestionID: row.ID,
			Title:      title,
		})
		require.NoError(b.t, err)
	}

	return row
}

// Choices returns the stored choices of a question, in insertion order.
func (b Builder) Choices(q question.Question) []question.Choice {
	choices, err := b.Queries().ListChoicesByQuestionID(context.Background(), q.ID)
	require.NoError(b.t, err)
	return choices
}
