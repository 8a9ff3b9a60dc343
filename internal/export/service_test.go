package export

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"examforge/constants"
	"examforge/internal/entity"
	"examforge/internal/importer"
	"examforge/internal/parse"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSession() *importer.ScanSession {
	q1 := &parse.Question{
		Text: "Which redundancy option replicates across availability zones?",
		Choices: []entity.Choice{
			{Label: "A", Text: "LRS"},
			{Label: "B", Text: "ZRS"},
		},
		CorrectAnswers: []string{"B"},
		Explanation:    "ZRS keeps three zonal copies.",
		QuestionType:   constants.QuestionSingle,
		DomainID:       "storage",
		SourcePage:     3,
	}
	q2 := &parse.Question{
		Text: "What should you do second?",
		Choices: []entity.Choice{
			{Label: "A", Text: "Create the vault"},
			{Label: "B", Text: "Enable replication"},
		},
		QuestionType:   constants.QuestionSingle,
		DomainID:       "monitoring",
		SourcePage:     4,
		SeriesID:       "a1b2c3d4e5f60718",
		SequenceNumber: 2,
		Issues:         []string{"missing_answer"},
	}

	report := parse.NewReport("az104.pdf")
	report.Questions = []*parse.Question{q1, q2}
	report.TotalQuestions = 2
	report.ValidQuestions = 1
	report.MissingAnswers = 1

	return &importer.ScanSession{
		ID:        "sess-1",
		Reports:   []*importer.FileReport{{Report: report, FileHash: "cafe01"}},
		Questions: report.Questions,
	}
}

func TestSessionWorkbook(t *testing.T) {
	svc := NewService(discardLogger())
	b, err := svc.SessionWorkbook(sampleSession())
	require.NoError(t, err)
	require.NotEmpty(t, b)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	text, err := f.GetCellValue(questionsSheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "Which redundancy option replicates across availability zones?", text)

	id, err := f.GetCellValue(questionsSheet, "B2")
	require.NoError(t, err)
	assert.Len(t, id, 16)

	choices, err := f.GetCellValue(questionsSheet, "G2")
	require.NoError(t, err)
	assert.Contains(t, choices, "B. ZRS")

	seq, err := f.GetCellValue(questionsSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "2", seq)

	issues, err := f.GetCellValue(questionsSheet, "K3")
	require.NoError(t, err)
	assert.Equal(t, "missing_answer", issues)

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "az104.pdf", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "1", rows[1][3])
	assert.Equal(t, "cafe01", rows[1][6])
}

func TestSessionWorkbookNilSession(t *testing.T) {
	svc := NewService(discardLogger())
	_, err := svc.SessionWorkbook(nil)
	require.Error(t, err)
}

func TestWriteSession(t *testing.T) {
	svc := NewService(discardLogger())
	path := filepath.Join(t.TempDir(), "review.xlsx")
	require.NoError(t, svc.WriteSession(path, sampleSession()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.ElementsMatch(t, []string{questionsSheet, summarySheet}, f.GetSheetList())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc…", truncate("abcdef", 4))
	assert.Equal(t, "abc", truncate("abc", 4))
	assert.Equal(t, "", truncate("", 5))
	assert.Equal(t, "abcdef", truncate("abcdef", 0))
}
