package parse

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"regexp"
	"strings"
)

// Phrasings that mark a question as belonging to a series of questions
// built on one shared scenario. Matched against lower-cased text.
var seriesMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`note:\s*this question is part of a series`),
	regexp.MustCompile(`note:\s*the question is included in a number of questions`),
	regexp.MustCompile(`part of a series of questions`),
	regexp.MustCompile(`identical set-up`),
	regexp.MustCompile(`depicts the identical`),
	regexp.MustCompile(`same scenario`),
	regexp.MustCompile(`questions that share the same`),
	regexp.MustCompile(`questions that present the same scenario`),
}

var (
	seriesNoteRe    = regexp.MustCompile(`(?is)^Note:.*?(You have|You are|Your company|A company)`)
	reviewScreenRe  = regexp.MustCompile(`(?is)After you answer a question in this section.*?review screen\.?\s*`)
	solutionSplitRe = regexp.MustCompile(`(?i)Solution:|Does that meet|What should you`)
	companySolRe    = regexp.MustCompile(`(?i)Your company's Azure solution`)
	companyRe       = regexp.MustCompile(`(?i)Your company's`)
	makesUseRe      = regexp.MustCompile(`(?i)makes use of`)
)

// DetectSeries groups questions that share one underlying scenario. The
// first pass registers a fingerprint for every question carrying an
// explicit series marker; the second pass links unmarked questions whose
// scenario matches a registered fingerprint. Documents often mark only the
// first occurrence of a shared scenario, so the second pass is what pulls
// the rest of the group in.
func DetectSeries(questions []*Question, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	known := make(map[string]struct{})
	for _, q := range questions {
		if !hasSeriesMarker(q.Text) {
			continue
		}
		fp := scenarioFingerprint(q.Text)
		if _, ok := known[fp]; !ok {
			known[fp] = struct{}{}
			logger.Info("series detected", "question", q.SourcePage, "series_id", fp)
		}
		q.SeriesID = fp
	}

	for _, q := range questions {
		if q.SeriesID != "" {
			continue
		}
		fp := scenarioFingerprint(q.Text)
		if _, ok := known[fp]; ok {
			q.SeriesID = fp
			logger.Info("series linked", "question", q.SourcePage, "series_id", fp)
		}
	}
}

func hasSeriesMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range seriesMarkerRes {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// scenarioFingerprint hashes the shared scenario core of a question.
func scenarioFingerprint(text string) string {
	sum := sha256.Sum256([]byte(extractCoreScenario(text)))
	return hex.EncodeToString(sum[:])[:12]
}

// extractCoreScenario strips the series preamble and solution-specific
// tail, then normalizes minor wording variants so that lightly reworded
// repeats of one scenario still fingerprint identically.
func extractCoreScenario(text string) string {
	text = seriesNoteRe.ReplaceAllString(text, "$1")
	text = reviewScreenRe.ReplaceAllString(text, "")

	if loc := solutionSplitRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	text = companySolRe.ReplaceAllString(text, "Your company")
	text = companyRe.ReplaceAllString(text, "Your company")
	text = makesUseRe.ReplaceAllString(text, "uses")

	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	return runePrefix(text, 200)
}
