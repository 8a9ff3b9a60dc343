package parse

import (
	"regexp"
	"testing"

	"examforge/constants"
	"examforge/internal/entity"
)

func TestStableID(t *testing.T) {
	q := &Question{
		Text: "What should you configure?",
		Choices: []entity.Choice{
			{Label: "A", Text: "a storage account"},
			{Label: "B", Text: "a virtual network"},
		},
	}

	id := q.StableID()
	if !regexp.MustCompile(`^[0-9a-f]{16}$`).MatchString(id) {
		t.Fatalf("StableID() = %q, want 16 hex chars", id)
	}

	same := &Question{
		Text: "What should you configure?",
		Choices: []entity.Choice{
			{Label: "A", Text: "a storage account"},
			{Label: "B", Text: "a virtual network"},
		},
	}
	if same.StableID() != id {
		t.Errorf("identical content produced different ids: %q vs %q", same.StableID(), id)
	}

	// Labels do not contribute, only texts do.
	relabeled := &Question{
		Text: "What should you configure?",
		Choices: []entity.Choice{
			{Label: "C", Text: "a storage account"},
			{Label: "D", Text: "a virtual network"},
		},
	}
	if relabeled.StableID() != id {
		t.Errorf("relabeled choices changed id: %q vs %q", relabeled.StableID(), id)
	}

	edited := &Question{
		Text: "What should you configure first?",
		Choices: []entity.Choice{
			{Label: "A", Text: "a storage account"},
			{Label: "B", Text: "a virtual network"},
		},
	}
	if edited.StableID() == id {
		t.Error("different text produced the same id")
	}
}

func TestIsValid(t *testing.T) {
	twoChoices := []entity.Choice{
		{Label: "A", Text: "locally redundant"},
		{Label: "B", Text: "zone redundant"},
	}

	tests := []struct {
		name string
		q    Question
		want bool
	}{
		{
			name: "graded with two choices and answer",
			q:    Question{Text: "Pick one.", Choices: twoChoices, CorrectAnswers: []string{"B"}, QuestionType: constants.QuestionSingle},
			want: true,
		},
		{
			name: "graded with one choice and answer",
			q:    Question{Text: "Pick one.", Choices: twoChoices[:1], CorrectAnswers: []string{"A"}, QuestionType: constants.QuestionSingle},
			want: false,
		},
		{
			name: "graded without answers",
			q:    Question{Text: "Pick one.", Choices: twoChoices, QuestionType: constants.QuestionSingle},
			want: false,
		},
		{
			name: "graded without text",
			q:    Question{Choices: twoChoices, CorrectAnswers: []string{"A"}, QuestionType: constants.QuestionSingle},
			want: false,
		},
		{
			name: "study with explanation",
			q:    Question{Text: "Order the steps.", Explanation: "Drag each step into position.", QuestionType: constants.QuestionStudy},
			want: true,
		},
		{
			name: "study without explanation",
			q:    Question{Text: "Order the steps.", QuestionType: constants.QuestionStudy},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
