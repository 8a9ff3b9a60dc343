package entity

import (
	"time"

	"examforge/constants"
)

// Choice is one labeled answer option.
type Choice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question represents a stored question for data transfer between layers.
type Question struct {
	StableID       string                 `json:"stable_id"`
	Text           string                 `json:"text"`
	Choices        []Choice               `json:"choices"`
	CorrectAnswers []string               `json:"correct_answers"`
	Explanation    *string                `json:"explanation,omitempty"`
	QuestionType   constants.QuestionType `json:"question_type"`
	DomainID       string                 `json:"domain_id"`
	SourceFile     *string                `json:"source_file,omitempty"`
	SourcePage     int                    `json:"source_page"`
	ExhibitImage   *string                `json:"exhibit_image,omitempty"`
	SeriesID       *string                `json:"series_id,omitempty"`
	SequenceNumber int                    `json:"sequence_number"`
	TimesShown     int                    `json:"times_shown"`
	TimesCorrect   int                    `json:"times_correct"`
	CreatedAt      time.Time              `json:"created_at"`
}

// Accuracy returns the historical fraction of correct answers for this question.
func (q *Question) Accuracy() float64 {
	if q.TimesShown == 0 {
		return 0
	}
	return float64(q.TimesCorrect) / float64(q.TimesShown)
}
