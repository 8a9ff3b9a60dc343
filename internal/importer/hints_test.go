package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"examforge/internal/parse"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("azure monitor alerts", "azure monitor alerts"))
	assert.Zero(t, similarity("", "anything"))
	assert.Zero(t, similarity("anything", ""))
	assert.Zero(t, similarity("short", "a very much longer unrelated string"), "length gate skips hopeless pairs")

	score := similarity("which service provides metric alerts", "which service provides metric alert")
	assert.GreaterOrEqual(t, score, 0.9)
	assert.Less(t, similarity("completely different text here", "unrelated words in this sentence"), 0.5)
}

func TestDuplicateHints(t *testing.T) {
	first := graded("You need to configure alerts when CPU usage exceeds 80%. Which service should you use?")
	nearCopy := graded("You need to configure alerts when CPU usage exceeds 90%. Which service should you use?")
	unrelated := graded("Which redundancy option replicates data across availability zones?")

	hints := duplicateHints([]*parse.Question{first, nearCopy, unrelated})
	if assert.Len(t, hints, 1) {
		assert.Equal(t, nearCopy.StableID(), hints[0].StableID)
		assert.Equal(t, first.StableID(), hints[0].MatchesID)
		assert.GreaterOrEqual(t, hints[0].Similarity, duplicateHintThreshold)
	}
}

func TestDuplicateHintsSkipsExactCopies(t *testing.T) {
	q := graded("Which option replicates across zones?")
	again := graded("Which option replicates across zones?")

	assert.Empty(t, duplicateHints([]*parse.Question{q, again}), "identical stable ids dedup at import, not via hints")
	assert.Empty(t, duplicateHints(nil))
}
