// Package importer turns directory scans into reviewed, deduplicated
// question imports.
package importer

import (
	"sync"
	"time"

	"examforge/internal/entity"
	"examforge/internal/parse"
)

// FileReport pairs one document's parse report with its content hash.
type FileReport struct {
	Report   *parse.Report `json:"report"`
	FileHash string        `json:"file_hash"`
}

// IssueSummary aggregates data-quality counters across one scan.
type IssueSummary struct {
	MissingAnswers int    `json:"missing_answers"`
	BrokenChoices  int    `json:"broken_choices"`
	Duplicates     int    `json:"duplicates"`
	Info           string `json:"info,omitempty"`
}

// DuplicateHint marks a question whose text nearly matches an earlier one
// in the same scan. Hints are for reviewers; they never block an import.
type DuplicateHint struct {
	StableID   string  `json:"stable_id"`
	MatchesID  string  `json:"matches_id"`
	Similarity float64 `json:"similarity"`
}

// ScanSession is the caller-owned result of one directory scan. It is
// reviewed, optionally edited, and consumed by exactly one import.
type ScanSession struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	Demo       bool              `json:"demo"`
	FilesFound int               `json:"files_found"`
	Reports    []*FileReport     `json:"reports"`
	Questions  []*parse.Question `json:"-"`
	Issues     IssueSummary      `json:"issues_summary"`
	Hints      []DuplicateHint   `json:"duplicate_hints,omitempty"`

	mu    sync.Mutex
	spent bool
}

// NeedsImport reports whether the session carries anything to import.
func (s *ScanSession) NeedsImport() bool {
	return len(s.Reports) > 0
}

// TotalQuestions sums extracted questions across all reports.
func (s *ScanSession) TotalQuestions() int {
	n := 0
	for _, r := range s.Reports {
		n += r.Report.TotalQuestions
	}
	return n
}

// ValidQuestions sums importable questions across all reports.
func (s *ScanSession) ValidQuestions() int {
	n := 0
	for _, r := range s.Reports {
		n += r.Report.ValidQuestions
	}
	return n
}

// QuestionEdit is a user correction applied before import, keyed by the
// question's stable id at scan time. Zero-valued fields leave the question
// unchanged; Skip drops it entirely.
type QuestionEdit struct {
	StableID       string          `json:"stable_id"`
	Text           string          `json:"text,omitempty"`
	Choices        []entity.Choice `json:"choices,omitempty"`
	CorrectAnswers []string        `json:"correct_answers,omitempty"`
	DomainID       string          `json:"domain_id,omitempty"`
	Skip           bool            `json:"skip,omitempty"`
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Imported  int `json:"imported"`
	Skipped   int `json:"skipped"`
	TotalInDB int `json:"total_in_db"`
}

// Status answers whether an import is needed without parsing anything.
type Status struct {
	QuestionsInDB int      `json:"questions_in_db"`
	PDFFilesFound int      `json:"pdf_files_found"`
	NewFiles      []string `json:"new_files"`
	NeedsImport   bool     `json:"needs_import"`
}
