package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"examforge/constants"
	"examforge/internal/entity"
)

var (
	questionNumberRe = regexp.MustCompile(`^Q(\d+)`)
	qHeaderRe        = regexp.MustCompile(`(?m)^Q\d+\n`)
	questionHeaderRe = regexp.MustCompile(`(?i)^QUESTION\s*(?:NO)?[:.]?\s*\d+[:.\s]*`)
	choiceLineRe     = regexp.MustCompile(`(?m)^[A-F][.)]`)
	choiceEndRe      = regexp.MustCompile(`(?i)\b(?:Answer:|Explanation:|Reference:|Correct\s+Answer|Q\d+)`)
	explanationRe    = regexp.MustCompile(`(?is)(?:Explanation|Reference|Note)[:\s]*(.+?)(?:Q\d+|QUESTION|$)`)
	answerLetterRe   = regexp.MustCompile(`[A-F]`)
)

// Ordered answer patterns, tried until one matches. The explicit "Answer:"
// form stops before an Explanation or Reference section so those never
// leak into the captured letters.
var answerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Answer[:\s]+([A-F](?:[,\s]*[A-F])*?)(?:\n|Explanation|Reference|$)`),
	regexp.MustCompile(`(?i)Correct\s+Answer[s]?[:\s]+([A-F](?:[,\s]*[A-F])*)`),
	regexp.MustCompile(`(?i)Answer[:\s]+([A-F])\b`),
	regexp.MustCompile(`(?i)\*\*Answer[s]?\*\*[:\s]*([A-F](?:[,\s]*[A-F])*)`),
}

// Interactive-instruction boilerplate stripped from study questions.
var (
	dragDropHeaderRe    = regexp.MustCompile(`(?i)^DRAGDROP\s*`)
	hotspotHeaderRe     = regexp.MustCompile(`(?i)^HOTSPOT\s*`)
	selectPlaceRe       = regexp.MustCompile(`(?i)Select and Place[:\s]*`)
	hotAreaRe           = regexp.MustCompile(`(?i)Hot Area[:\s]*`)
	dragInstructionRe   = regexp.MustCompile(`(?i)Answer by dragging.*?answer area\.?`)
	toAnswerRe          = regexp.MustCompile(`(?i)To answer,.*?answer area\.?`)
	notePointRe         = regexp.MustCompile(`(?i)NOTE:.*?point\.?`)
	answerExplanationRe = regexp.MustCompile(`(?is)Answer:\s*Explanation:.*$`)
	trailingAnswerRe    = regexp.MustCompile(`(?is)\?\s*Answer:.*$`)
	studyExplanationRe  = regexp.MustCompile(`Explanation[:\s]+([A-Z][^Q]+?)(?:Q\d+|$)`)
	referenceURLRe      = regexp.MustCompile(`(?i)Reference[:\s]*(https?://\S+)`)
)

var multiSelectCues = []string{
	"select all", "choose all", "select two", "select three",
	"which two", "which three", "(choose two)", "(choose three)",
	"select the correct answers", "correct answers are",
}

const (
	dragDropExplanation = "📋 DRAG & DROP: This question requires matching or ordering items. Focus on understanding the relationships between Azure components mentioned in the scenario."
	hotspotExplanation  = "🎯 HOTSPOT: This question requires selecting areas on a diagram. Focus on understanding the Azure portal interface and configuration options mentioned."
)

// parseBlock lifts a single question out of one segmented block. Returns
// nil when no question text can be recovered.
func parseBlock(block string) *Question {
	questionNumber := 0
	if m := questionNumberRe.FindStringSubmatch(block); m != nil {
		questionNumber, _ = strconv.Atoi(m[1])
	}

	blockUpper := strings.ToUpper(block)
	isStudy := strings.Contains(blockUpper, "DRAGDROP") ||
		strings.Contains(blockUpper, "DRAG DROP") ||
		strings.Contains(blockUpper, "HOTSPOT")

	text := extractQuestionText(block)
	if text == "" {
		return nil
	}

	explanation := extractExplanation(block)

	if isStudy {
		return parseStudyQuestion(block, blockUpper, text, explanation, questionNumber)
	}

	choices := extractChoices(block)
	return &Question{
		Text:           text,
		Choices:        choices,
		CorrectAnswers: extractAnswers(block),
		Explanation:    explanation,
		QuestionType:   determineType(text, choices),
		SourcePage:     questionNumber,
	}
}

// parseStudyQuestion handles drag-and-drop and hotspot material. These
// carry no selectable choices, so the question survives as study content:
// cleaned text plus the best explanation that can be recovered.
func parseStudyQuestion(block, blockUpper, text, explanation string, questionNumber int) *Question {
	text = dragDropHeaderRe.ReplaceAllString(text, "")
	text = hotspotHeaderRe.ReplaceAllString(text, "")
	text = selectPlaceRe.ReplaceAllString(text, "")
	text = hotAreaRe.ReplaceAllString(text, "")
	text = dragInstructionRe.ReplaceAllString(text, "")
	text = toAnswerRe.ReplaceAllString(text, "")
	text = notePointRe.ReplaceAllString(text, "")
	text = answerExplanationRe.ReplaceAllString(text, "")
	text = trailingAnswerRe.ReplaceAllString(text, "?")
	text = fixWordSpacing(text)

	// Prefer a clean Explanation section after the Answer marker, but not
	// one that merely repeats the question.
	if m := studyExplanationRe.FindStringSubmatch(block); m != nil {
		explanation = fixWordSpacing(strings.TrimSpace(m[1]))
		if utf8.RuneCountInString(explanation) < 50 ||
			strings.Contains(strings.ToLower(runePrefix(explanation, 100)), strings.ToLower(runePrefix(text, 30))) {
			explanation = ""
		}
	}

	if explanation == "" {
		if m := referenceURLRe.FindStringSubmatch(block); m != nil {
			explanation = "Reference: " + m[1]
		}
	}
	if explanation == "" {
		if strings.Contains(blockUpper, "DRAGDROP") || strings.Contains(blockUpper, "DRAG DROP") {
			explanation = dragDropExplanation
		} else {
			explanation = hotspotExplanation
		}
	}

	return &Question{
		Text:         text,
		Explanation:  explanation,
		QuestionType: constants.QuestionStudy,
		SourcePage:   questionNumber,
	}
}

// extractQuestionText strips the question-number header and truncates at
// the first choice line.
func extractQuestionText(block string) string {
	text := qHeaderRe.ReplaceAllString(block, "")
	text = questionHeaderRe.ReplaceAllString(text, "")
	if loc := choiceLineRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return fixWordSpacingPreserveParagraphs(text)
}

// choiceLabelRes matches one label each, "A." or "A)" at the start of the
// text or after whitespace or sentence punctuation.
var choiceLabelRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(constants.ChoiceLabels))
	for i := 0; i < len(constants.ChoiceLabels); i++ {
		res[i] = regexp.MustCompile(`(?:^|[\s.!?])(` + string(constants.ChoiceLabels[i]) + `[.)])`)
	}
	return res
}()

type choiceMark struct {
	start     int
	textStart int
	label     string
}

// extractChoices scans the whole block for every labeled choice marker and
// slices out the text between consecutive markers. The last choice runs to
// the first answer, explanation or question marker.
func extractChoices(block string) []entity.Choice {
	normalized := strings.ReplaceAll(block, "\n", " ")
	normalized = whitespaceRe.ReplaceAllString(normalized, " ")

	var marks []choiceMark
	for i, re := range choiceLabelRes {
		for _, loc := range re.FindAllStringIndex(normalized, -1) {
			marks = append(marks, choiceMark{
				start:     loc[0],
				textStart: loc[1],
				label:     string(constants.ChoiceLabels[i]),
			})
		}
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].start < marks[j].start })

	var choices []entity.Choice
	for i, m := range marks {
		end := len(normalized)
		if i+1 < len(marks) {
			end = marks[i+1].start
		} else if loc := choiceEndRe.FindStringIndex(normalized[m.textStart:]); loc != nil {
			end = m.textStart + loc[0]
		}

		text := fixWordSpacing(strings.TrimSpace(normalized[m.textStart:end]))
		text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
		if text != "" {
			choices = append(choices, entity.Choice{Label: m.label, Text: text})
		}
	}
	return choices
}

// determineType picks the question kind from multi-select cue phrases in
// the text, then a true/false or yes/no choice pair, defaulting to single.
func determineType(text string, choices []entity.Choice) constants.QuestionType {
	lower := strings.ToLower(text)
	for _, cue := range multiSelectCues {
		if strings.Contains(lower, cue) {
			return constants.QuestionMulti
		}
	}
	if len(choices) == 2 {
		a, b := strings.ToLower(choices[0].Text), strings.ToLower(choices[1].Text)
		if (a == "true" && b == "false") || (a == "false" && b == "true") ||
			(a == "yes" && b == "no") || (a == "no" && b == "yes") {
			return constants.QuestionTrueFalse
		}
	}
	return constants.QuestionSingle
}

// extractAnswers returns the correct-answer labels, trying each answer
// pattern in order and taking every letter from the first matching group.
func extractAnswers(block string) []string {
	for _, re := range answerPatterns {
		m := re.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		letters := answerLetterRe.FindAllString(strings.ToUpper(m[1]), -1)
		if len(letters) > 0 {
			return letters
		}
	}
	return nil
}

// extractExplanation pulls the explanation section, discarding fragments
// under 20 characters and capping runaway captures at 2000.
func extractExplanation(block string) string {
	m := explanationRe.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	explanation := whitespaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
	if utf8.RuneCountInString(explanation) > 20 {
		return runePrefix(explanation, 2000)
	}
	return ""
}

// runePrefix returns the first n runes of s.
func runePrefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// runeSuffix returns the last n runes of s.
func runeSuffix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
