package parse

import (
	"regexp"
	"strings"
)

// Text pulled out of exam PDFs routinely loses the spaces between words,
// either from the PDF encoding itself or from the extraction backend. The
// fixups below reconstruct spacing without touching text that is already
// well formed.
var (
	lowerUpperRe       = regexp.MustCompile(`([a-z])([A-Z])`)
	punctLetterRe      = regexp.MustCompile(`([.!?,:;])([A-Za-z])`)
	letterOpenParenRe  = regexp.MustCompile(`([a-zA-Z])\(`)
	closeParenLetterRe = regexp.MustCompile(`\)([a-zA-Z])`)
	whitespaceRe       = regexp.MustCompile(`\s+`)

	sectionStartRe = regexp.MustCompile(`(?i)^(Note:|Solution:|After you|You |Your |From |To answer|Each |Some |Does |What |Which |How )`)
)

type replacement struct {
	re   *regexp.Regexp
	with string
}

// Shorthand seen in community-edited dumps.
var abbreviations = []replacement{
	{regexp.MustCompile(`(?i)\bqis\b`), "question is"},
	{regexp.MustCompile(`(?i)\bqin\b`), "question in"},
	{regexp.MustCompile(`(?i)\bqs\b`), "questions"},
	{regexp.MustCompile(`(?i)\bqsets\b`), "question sets"},
	{regexp.MustCompile(`(?i)\bqset\b`), "question set"},
}

// Word pairs that show up concatenated in spacing-damaged documents. Only
// full runs are listed so ordinary words are never rewritten.
var concatenations = []replacement{
	{regexp.MustCompile(`(?i)Youhave`), "You have"},
	{regexp.MustCompile(`(?i)Youneed`), "You need"},
	{regexp.MustCompile(`(?i)Youare`), "You are"},
	{regexp.MustCompile(`(?i)Youplan`), "You plan"},
	{regexp.MustCompile(`(?i)Youwant`), "You want"},
	{regexp.MustCompile(`(?i)Whatshould`), "What should"},
	{regexp.MustCompile(`(?i)Whichof`), "Which of"},
	{regexp.MustCompile(`(?i)tothe`), "to the"},
	{regexp.MustCompile(`(?i)ofthe`), "of the"},
	{regexp.MustCompile(`(?i)inthe`), "in the"},
	{regexp.MustCompile(`(?i)onthe`), "on the"},
	{regexp.MustCompile(`(?i)fromthe`), "from the"},
	{regexp.MustCompile(`(?i)allthe`), "all the"},
	{regexp.MustCompile(`(?i)thatthe`), "that the"},
	{regexp.MustCompile(`(?i)isthe`), "is the"},
	{regexp.MustCompile(`(?i)forthe`), "for the"},
	{regexp.MustCompile(`(?i)andthe`), "and the"},
	{regexp.MustCompile(`(?i)thata`), "that a"},
	{regexp.MustCompile(`(?i)tocreate`), "to create"},
	{regexp.MustCompile(`(?i)toensure`), "to ensure"},
	{regexp.MustCompile(`(?i)tomake`), "to make"},
	{regexp.MustCompile(`(?i)toreference`), "to reference"},
	{regexp.MustCompile(`(?i)todeploy`), "to deploy"},
	{regexp.MustCompile(`(?i)toachieve`), "to achieve"},
	{regexp.MustCompile(`(?i)shouldyou`), "should you"},
	{regexp.MustCompile(`(?i)doyou`), "do you"},
	{regexp.MustCompile(`(?i)canyou`), "can you"},
}

// fixWordSpacing repairs run-together and mis-punctuated text, collapsing
// all whitespace to single spaces.
func fixWordSpacing(text string) string {
	if text == "" {
		return text
	}

	text = lowerUpperRe.ReplaceAllString(text, "$1 $2")
	text = punctLetterRe.ReplaceAllString(text, "$1 $2")
	text = letterOpenParenRe.ReplaceAllString(text, "$1 (")
	text = closeParenLetterRe.ReplaceAllString(text, ") $1")

	for _, r := range abbreviations {
		text = r.re.ReplaceAllString(text, r.with)
	}
	for _, r := range concatenations {
		text = r.re.ReplaceAllString(text, r.with)
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// fixWordSpacingPreserveParagraphs applies fixWordSpacing per paragraph.
// Blank lines and lines opening a known section phrase start a new
// paragraph; everything else on consecutive lines is joined.
func fixWordSpacingPreserveParagraphs(text string) string {
	if text == "" {
		return text
	}

	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, fixWordSpacing(strings.Join(current, " ")))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if sectionStartRe.MatchString(line) && len(current) > 0 {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}
