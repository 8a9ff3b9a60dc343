package parse

import (
	"regexp"
	"strings"
)

// splitStrategy marks the start of each question block. Strategies are
// ordered from the most specific header convention to the loosest; the
// first one that yields at least two blocks wins, so at most one fallback
// layer is ever active for a document.
type splitStrategy struct {
	name string
	re   *regexp.Regexp
}

var splitStrategies = []splitStrategy{
	{"q-number", regexp.MustCompile(`(?m)^Q\d+\n`)},
	{"question-marker", regexp.MustCompile(`(?i)QUESTION\s*(?:NO)?[:.]?\s*\d+`)},
	{"numbered-line", regexp.MustCompile(`(?m)^\d+[.)]\s+`)},
}

// SplitBlocks segments concatenated document text into one substring per
// question. Blocks are trimmed and empty ones discarded.
func SplitBlocks(text string) []string {
	var blocks []string
	for _, s := range splitStrategies {
		blocks = splitBefore(text, s.re)
		if len(blocks) >= 2 {
			break
		}
	}

	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// splitBefore cuts text at the start of every match, keeping each match at
// the head of its own segment. The text before the first match becomes the
// first segment, possibly empty.
func splitBefore(text string, re *regexp.Regexp) []string {
	locs := re.FindAllStringIndex(text, -1)
	segments := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		segments = append(segments, text[prev:loc[0]])
		prev = loc[0]
	}
	return append(segments, text[prev:])
}
