package constants

// QuestionType is the canonical kind for rows in questions.
type QuestionType string

// Stable values (store these exact strings in DB).
const (
	QuestionSingle    QuestionType = "single"    // one correct choice
	QuestionMulti     QuestionType = "multi"     // two or more correct choices
	QuestionTrueFalse QuestionType = "truefalse" // exactly true/false or yes/no
	QuestionStudy     QuestionType = "study"     // no graded answer (drag-drop, hotspot)
)

// Graded reports whether the kind carries machine-gradable answers.
func (t QuestionType) Graded() bool {
	return t != QuestionStudy
}

// ChoiceLabels is the fixed alphabet for answer choice labels.
const ChoiceLabels = "ABCDEF"
