package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"html/template"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/form/answer"
	"formcraft/form-builder-backend/internal/form/question"
	"formcraft/form-builder-backend/internal/form/response"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type a rendered export should be served with.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return ""
}

type QuestionStore interface {
	ListByFormID(ctx context.Context, formID uuid.UUID) ([]question.Answerable, error)
}

type ResponseStore interface {
	ListByFormID(ctx context.Context, formID uuid.UUID) ([]response.Response, error)
}

type Projector interface {
	Project(ctx context.Context, responseID uuid.UUID) ([]answer.View, error)
}

// Table is a form's responses flattened against its question list: one
// column per question in creation order, one row per response, blank cells
// where an optional question went unanswered.
type Table struct {
	Header []string
	Rows   [][]string
}

type Service struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	questionStore QuestionStore
	responseStore ResponseStore
	projector     Projector
	sanitizer     *bluemonday.Policy
}

func NewService(logger *zap.Logger, questionStore QuestionStore, responseStore ResponseStore, projector Projector) *Service {
	return &Service{
		logger:        logger,
		tracer:        otel.Tracer("export/service"),
		questionStore: questionStore,
		responseStore: responseStore,
		projector:     projector,
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *Service) BuildTable(ctx context.Context, formID uuid.UUID) (Table, error) {
	ctx, span := s.tracer.Start(ctx, "BuildTable")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	answerables, err := s.questionStore.ListByFormID(ctx, formID)
	if err != nil {
		span.RecordError(err)
		return Table{}, err
	}

	header := []string{"Response ID", "Respondent"}
	questionIDs := make([]uuid.UUID, 0, len(answerables))
	for _, a := range answerables {
		q := a.Question()
		header = append(header, q.Body)
		questionIDs = append(questionIDs, q.ID)
	}

	responses, err := s.responseStore.ListByFormID(ctx, formID)
	if err != nil {
		span.RecordError(err)
		return Table{}, err
	}

	rows := make([][]string, 0, len(responses))
	for _, r := range responses {
		views, err := s.projector.Project(ctx, r.ID)
		if err != nil {
			span.RecordError(err)
			return Table{}, err
		}

		byQuestion := make(map[uuid.UUID]string, len(views))
		for _, v := range views {
			byQuestion[v.QuestionID] = v.AnswerValue
		}

		row := make([]string, 0, len(header))
		row = append(row, r.ID.String(), r.RespondentEmail.String)
		for _, questionID := range questionIDs {
			row = append(row, byQuestion[questionID])
		}
		rows = append(rows, row)
	}

	logger.Debug("Built export table",
		zap.String("form_id", formID.String()),
		zap.Int("column_count", len(header)),
		zap.Int("row_count", len(rows)))

	return Table{Header: header, Rows: rows}, nil
}

// Render serializes a table into the requested format and returns the bytes
// together with their content type.
func (s *Service) Render(table Table, format Format) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		data, err := s.renderCSV(table)
		return data, format.ContentType(), err
	case FormatJSON:
		data, err := s.renderJSON(table)
		return data, format.ContentType(), err
	case FormatHTML:
		data, err := s.renderHTML(table)
		return data, format.ContentType(), err
	case FormatXLSX:
		data, err := s.renderXLSX(table)
		return data, format.ContentType(), err
	}
	return nil, "", internal.ErrUnsupportedFormat
}

func (s *Service) renderCSV(table Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Header); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) renderJSON(table Table) ([]byte, error) {
	records := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make(map[string]string, len(table.Header))
		for i, column := range table.Header {
			record[column] = row[i]
		}
		records = append(records, record)
	}
	return json.Marshal(records)
}

var htmlTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
<table border="1">
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

func (s *Service) renderHTML(table Table) ([]byte, error) {
	// Respondent text goes through the sanitizer first so markup smuggled
	// into an answer never reaches the document.
	clean := Table{Header: make([]string, len(table.Header)), Rows: make([][]string, len(table.Rows))}
	for i, column := range table.Header {
		clean.Header[i] = s.sanitizer.Sanitize(column)
	}
	for i, row := range table.Rows {
		clean.Rows[i] = make([]string, len(row))
		for j, cell := range row {
			clean.Rows[i][j] = s.sanitizer.Sanitize(cell)
		}
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, clean); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) renderXLSX(table Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	const sheet = "Sheet1"
	for i, column := range table.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range table.Rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
