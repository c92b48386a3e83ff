package quiz

import (
	"errors"
	"testing"

	"github.com/abhisek/skillpath/internal/question"
)

func fourOptions(correct ...int) []DraftOption {
	opts := []DraftOption{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}}
	for _, i := range correct {
		opts[i].IsCorrect = true
	}
	return opts
}

func TestNewDraft(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		options []DraftOption
		wantErr string
	}{
		{"valid", "What does useEffect do?", fourOptions(2), ""},
		{"three options", "q", fourOptions(0)[:3], "must have 4 options"},
		{"five options", "q", append(fourOptions(0), DraftOption{Text: "e"}), "must have 4 options"},
		{"no correct", "q", fourOptions(), "must have exactly 1 correct answer"},
		{"two correct", "q", fourOptions(0, 3), "must have exactly 1 correct answer"},
		{"blank text", " ", fourOptions(1), "question text is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDraft(tt.text, tt.options)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(d.Options()) != 4 || d.Text() != tt.text {
					t.Fatalf("unexpected draft: %+v", d)
				}
				return
			}
			var verr *question.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *question.ValidationError, got %v", err)
			}
			if verr.Message != tt.wantErr {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantErr)
			}
		})
	}
}

func TestDraftOptionsAreCopied(t *testing.T) {
	opts := fourOptions(0)
	d, err := NewDraft("q", opts)
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	opts[0].Text = "changed"
	got := d.Options()
	got[1].Text = "changed too"
	if d.Options()[0].Text != "a" || d.Options()[1].Text != "b" {
		t.Errorf("draft shares option storage: %+v", d.Options())
	}
}
