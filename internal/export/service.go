// Package export renders scan sessions as XLSX review workbooks.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"examforge/internal/common"
	"examforge/internal/importer"
	"examforge/internal/parse"
)

// Cell content longer than this is cut with an ellipsis so the sheet
// stays readable.
const cellLimit = 300

const (
	questionsSheet = "Questions"
	summarySheet   = "Summary"
)

// Service produces XLSX bytes from a scan session.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// SessionWorkbook renders the session's questions and per-report counters
// into a two-sheet workbook and returns it as bytes.
func (s *Service) SessionWorkbook(session *importer.ScanSession) ([]byte, error) {
	if session == nil {
		return nil, common.InvalidArgumentError("no scan session")
	}
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", questionsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	if err := writeQuestions(f, session.Questions); err != nil {
		return nil, err
	}
	if err := writeSummary(f, session.Reports); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"session_id", session.ID,
		"rows", len(session.Questions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteSession renders the session workbook straight to a file.
func (s *Service) WriteSession(path string, session *importer.ScanSession) error {
	b, err := s.SessionWorkbook(session)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	s.logger.Info("export.xlsx.saved", "path", path)
	return nil
}

func writeQuestions(f *excelize.File, questions []*parse.Question) error {
	headers := []string{
		"Sequence",
		"Stable ID",
		"Page",
		"Type",
		"Domain",
		"Question",
		"Choices",
		"Answers",
		"Explanation",
		"Series",
		"Issues",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(questionsSheet, cell, h)
	}

	row := 2
	for _, q := range questions {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(questionsSheet, cell, v)
		}

		if q.SequenceNumber > 0 {
			write(1, q.SequenceNumber)
		}
		write(2, q.StableID())
		write(3, q.SourcePage)
		write(4, string(q.QuestionType))
		write(5, q.DomainID)
		write(6, truncate(q.Text, cellLimit))
		write(7, truncate(joinChoices(q), cellLimit))
		write(8, strings.Join(q.CorrectAnswers, ", "))
		write(9, truncate(q.Explanation, cellLimit))
		write(10, q.SeriesID)
		write(11, strings.Join(q.Issues, "; "))

		row++
	}

	_ = f.SetColWidth(questionsSheet, "B", "B", 18) // stable id
	_ = f.SetColWidth(questionsSheet, "F", "F", 60) // question text
	_ = f.SetColWidth(questionsSheet, "G", "G", 48) // choices
	_ = f.SetColWidth(questionsSheet, "I", "I", 48) // explanation
	_ = f.SetColWidth(questionsSheet, "K", "K", 32) // issues
	return nil
}

func writeSummary(f *excelize.File, reports []*importer.FileReport) error {
	headers := []string{
		"Filename",
		"Total Questions",
		"Valid Questions",
		"Missing Answers",
		"Broken Choices",
		"Duplicates",
		"File Hash",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(summarySheet, cell, h)
	}

	row := 2
	for _, fr := range reports {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(summarySheet, cell, v)
		}

		write(1, fr.Report.Filename)
		write(2, fr.Report.TotalQuestions)
		write(3, fr.Report.ValidQuestions)
		write(4, fr.Report.MissingAnswers)
		write(5, fr.Report.BrokenChoices)
		write(6, fr.Report.Duplicates)
		write(7, fr.FileHash)

		row++
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 32) // filename
	_ = f.SetColWidth(summarySheet, "G", "G", 40) // hash
	return nil
}

func joinChoices(q *parse.Question) string {
	parts := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		parts[i] = c.Label + ". " + c.Text
	}
	return strings.Join(parts, "\n")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
