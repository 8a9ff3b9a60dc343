// Package parse turns extracted document text into structured exam questions.
package parse

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"examforge/constants"
	"examforge/internal/entity"
)

// Question is one question lifted out of a source document. It is the
// working record of a single pipeline run; persisted rows live in entity.
type Question struct {
	Text           string                 `json:"text"`
	Choices        []entity.Choice        `json:"choices"`
	CorrectAnswers []string               `json:"correct_answers"`
	Explanation    string                 `json:"explanation,omitempty"`
	QuestionType   constants.QuestionType `json:"question_type"`
	DomainID       string                 `json:"domain_id,omitempty"`
	SourcePage     int                    `json:"source_page"`
	ExhibitImage   string                 `json:"exhibit_image,omitempty"`
	SeriesID       string                 `json:"series_id,omitempty"`
	SequenceNumber int                    `json:"sequence_number"`
	Issues         []string               `json:"issues,omitempty"`
}

// StableID derives a content hash from the question text and choice texts.
// Identical content always yields the identical id, so repeated parses of
// the same document (and the same question appearing in two documents)
// deduplicate against each other.
func (q *Question) StableID() string {
	texts := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		texts[i] = c.Text
	}
	content := q.Text + "|" + strings.Join(texts, "|")
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])[:16]
}

// IsValid reports whether the question has the minimum fields to be worth
// importing. Study questions only need text and an explanation; graded
// questions need text, at least two choices and at least one answer.
func (q *Question) IsValid() bool {
	if q.QuestionType == constants.QuestionStudy {
		return q.Text != "" && q.Explanation != ""
	}
	return q.Text != "" && len(q.Choices) >= 2 && len(q.CorrectAnswers) > 0
}

// Report summarizes one document's parse run. Questions carries the full
// extracted list; the JSON form only exposes the counters.
type Report struct {
	Filename       string           `json:"filename"`
	TotalQuestions int              `json:"total_questions"`
	ValidQuestions int              `json:"valid_questions"`
	MissingAnswers int              `json:"missing_answers"`
	BrokenChoices  int              `json:"broken_choices"`
	Duplicates     int              `json:"duplicates"`
	PageIssues     map[int][]string `json:"page_issues"`
	Questions      []*Question      `json:"-"`
}

func NewReport(filename string) *Report {
	return &Report{
		Filename:   filename,
		PageIssues: make(map[int][]string),
	}
}
