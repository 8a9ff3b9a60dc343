package importer

import (
	"strings"

	"github.com/agext/levenshtein"

	"examforge/internal/parse"
)

// Questions whose normalized texts score at or above this are flagged as
// near-duplicates for review.
const duplicateHintThreshold = 0.9

// duplicateHints pairs each question with the first earlier question in
// the scan whose text nearly matches it. Exact copies share a stable id
// and deduplicate at import time on their own; this catches reworded
// copies a reviewer may want to skip. Hints never block an import.
func duplicateHints(questions []*parse.Question) []DuplicateHint {
	type entry struct {
		id   string
		text string
	}

	var hints []DuplicateHint
	seen := make([]entry, 0, len(questions))
	for _, q := range questions {
		id := q.StableID()
		text := normalizeHintText(q.Text)
		for _, prev := range seen {
			if prev.id == id {
				continue
			}
			score := similarity(text, prev.text)
			if score >= duplicateHintThreshold {
				hints = append(hints, DuplicateHint{
					StableID:   id,
					MatchesID:  prev.id,
					Similarity: score,
				})
				break
			}
		}
		seen = append(seen, entry{id: id, text: text})
	}
	return hints
}

// similarity scores two strings in [0, 1], 1 meaning identical. The length
// ratio gates the quadratic edit distance: strings whose lengths differ by
// more than the threshold allows can never score high enough.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if float64(shorter)/float64(longer) < duplicateHintThreshold {
		return 0
	}

	dist := levenshtein.Distance(a, b, nil)
	score := 1.0 - float64(dist)/float64(longer)
	if score < 0 {
		return 0
	}
	return score
}

func normalizeHintText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
