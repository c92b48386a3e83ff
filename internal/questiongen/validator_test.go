package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/skillpath/internal/quiz"
)

func draft(t *testing.T, text string, opts ...string) quiz.Draft {
	t.Helper()
	do := make([]quiz.DraftOption, len(opts))
	for i, o := range opts {
		do[i] = quiz.DraftOption{Text: o, IsCorrect: i == 0}
	}
	d, err := quiz.NewDraft(text, do)
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	return d
}

func TestValidators(t *testing.T) {
	long := strings.Repeat("x", maxQuestionLen+1)
	longOpt := strings.Repeat("y", maxOptionLen+1)

	tests := []struct {
		name      string
		validator Validator
		draft     func(t *testing.T) quiz.Draft
		exclude   []string
		wantErr   string
	}{
		{
			name:      "structural ok",
			validator: &StructuralValidator{},
			draft:     func(t *testing.T) quiz.Draft { return draft(t, "What is a closure?", "a", "b", "c", "d") },
		},
		{
			name:      "question too long",
			validator: &StructuralValidator{},
			draft:     func(t *testing.T) quiz.Draft { return draft(t, long, "a", "b", "c", "d") },
			wantErr:   "question text exceeds 500 characters",
		},
		{
			name:      "blank option",
			validator: &StructuralValidator{},
			draft:     func(t *testing.T) quiz.Draft { return draft(t, "Q?", "a", "  ", "c", "d") },
			wantErr:   "option 2 is empty",
		},
		{
			name:      "option too long",
			validator: &StructuralValidator{},
			draft:     func(t *testing.T) quiz.Draft { return draft(t, "Q?", "a", "b", "c", longOpt) },
			wantErr:   "option 4 exceeds 200 characters",
		},
		{
			name:      "distinct ok",
			validator: &DistinctOptionsValidator{},
			draft:     func(t *testing.T) quiz.Draft { return draft(t, "Q?", "a", "b", "c", "d") },
		},
		{
			name:      "duplicate option ignores case and spacing",
			validator: &DistinctOptionsValidator{},
			draft:     func(t *testing.T) quiz.Draft { return draft(t, "Q?", "Use a map", "b", "use  a MAP", "d") },
			wantErr:   `duplicate option "use  a MAP"`,
		},
		{
			name:      "no repeat ok",
			validator: &NoRepeatValidator{},
			draft:     func(t *testing.T) quiz.Draft { return draft(t, "What is a goroutine?", "a", "b", "c", "d") },
			exclude:   []string{"What is a channel?"},
		},
		{
			name:      "repeat of pool question",
			validator: &NoRepeatValidator{},
			draft:     func(t *testing.T) quiz.Draft { return draft(t, "What is  a Goroutine?", "a", "b", "c", "d") },
			exclude:   []string{"what is a goroutine?"},
			wantErr:   "question repeats an existing pool question",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := quiz.GenerateInput{Topic: "go", Difficulty: "beginner", Count: 1, Exclude: tt.exclude}
			verr := tt.validator.Validate(tt.draft(t), input)
			if tt.wantErr == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected error %q, got nil", tt.wantErr)
			}
			if verr.Message != tt.wantErr {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantErr)
			}
			if verr.Validator != tt.validator.Name() {
				t.Errorf("validator = %q, want %q", verr.Validator, tt.validator.Name())
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Validator: "structural", Message: "option 1 is empty"}
	if got := err.Error(); got != `validator "structural": option 1 is empty` {
		t.Errorf("Error() = %q", got)
	}
}
