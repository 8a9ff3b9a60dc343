package parse

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"examforge/constants"
	"examforge/internal/pdftext"
)

// Classifier assigns a domain id to question text.
type Classifier interface {
	Classify(text string) string
}

// Parser runs the ingestion pipeline for one document at a time: segment
// the extracted text into blocks, lift fields out of each block, then link
// images, detect series and validate over the full question list. Each
// ParseFile call keeps all state local, so distinct documents may be
// parsed concurrently by the caller.
type Parser struct {
	Logger     *slog.Logger
	Extractor  *pdftext.Chain
	Classifier Classifier
	Images     *Associator
}

func NewParser(extractor *pdftext.Chain, classifier Classifier, images *Associator, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		Logger:     logger,
		Extractor:  extractor,
		Classifier: classifier,
		Images:     images,
	}
}

// ParseFile parses one document end to end. Extraction failure is recorded
// on the report rather than returned, so batch callers carry on with their
// remaining documents.
func (p *Parser) ParseFile(ctx context.Context, path string) *Report {
	report := NewReport(filepath.Base(path))
	p.Logger.Info("parse.start", "path", path)

	res, err := p.Extractor.ExtractPages(ctx, path)
	if err != nil {
		p.Logger.Error("parse.extract_failed", "path", path, "error", err)
		report.PageIssues[0] = []string{fmt.Sprintf("Failed to read PDF: %v", err)}
		return report
	}
	if len(res.Warnings) > 0 {
		report.PageIssues[0] = append(report.PageIssues[0], res.Warnings...)
	}

	questions := p.parseQuestions(joinPages(res.Pages))

	if p.Images != nil {
		if src, err := pdftext.OpenImages(path, p.Logger); err != nil {
			p.Logger.Warn("parse.images_unavailable", "path", path, "error", err)
		} else {
			p.Images.Associate(ctx, src, questions, res.Pages)
		}
	}

	DetectSeries(questions, p.Logger)

	for i, q := range questions {
		q.SequenceNumber = i + 1
	}

	p.validate(report, questions)

	p.Logger.Info("parse.ok",
		"path", path, "method", res.Method,
		"total", report.TotalQuestions, "valid", report.ValidQuestions,
	)
	return report
}

func (p *Parser) parseQuestions(fullText string) []*Question {
	blocks := SplitBlocks(fullText)
	questions := make([]*Question, 0, len(blocks))
	for _, block := range blocks {
		q := parseBlock(block)
		if q == nil {
			p.Logger.Warn("block skipped, no question recovered", "bytes", len(block))
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

// Choice texts ending in one of these read like a sentence cut mid-stream.
var truncatedEndings = []string{"?", "and then", "and", "the", "to", "as the", "from"}

// validate classifies every question, flags data-quality issues and fills
// the report counters. Issues never block a question from the report; the
// import side decides what to do with flagged entries.
func (p *Parser) validate(report *Report, questions []*Question) {
	seen := make(map[string]struct{})
	for _, q := range questions {
		report.TotalQuestions++

		q.DomainID = p.Classifier.Classify(q.Text)

		if q.QuestionType != constants.QuestionStudy {
			if len(q.CorrectAnswers) == 0 {
				report.MissingAnswers++
				q.Issues = append(q.Issues, "Missing correct answer")
			}
			if len(q.Choices) < 2 {
				report.BrokenChoices++
				q.Issues = append(q.Issues, "Less than 2 choices")
			}
			for _, c := range q.Choices {
				if utf8.RuneCountInString(c.Text) < 10 {
					q.Issues = append(q.Issues, fmt.Sprintf("Choice %s is suspiciously short: '%s'", c.Label, c.Text))
				} else if endsTruncated(c.Text) {
					q.Issues = append(q.Issues, fmt.Sprintf("Choice %s may be truncated: ends with '%s'", c.Label, runeSuffix(c.Text, 20)))
				}
			}
		}

		id := q.StableID()
		if _, ok := seen[id]; ok {
			report.Duplicates++
			q.Issues = append(q.Issues, "Duplicate question")
		} else {
			seen[id] = struct{}{}
		}

		if q.IsValid() {
			report.ValidQuestions++
		}
		report.Questions = append(report.Questions, q)
	}
}

func endsTruncated(text string) bool {
	for _, ending := range truncatedEndings {
		if strings.HasSuffix(text, ending) {
			return true
		}
	}
	return false
}

func joinPages(pages map[int]string) string {
	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = pages[n]
	}
	return strings.Join(parts, "\n")
}
