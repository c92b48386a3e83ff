package question

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func testOptions(t *testing.T) []Option {
	t.Helper()
	var opts []Option
	for i, text := range []string{"useState", "useEffect", "useMemo", "useRef"} {
		o, err := NewOption("opt-"+text, text, i == 0)
		if err != nil {
			t.Fatalf("new option: %v", err)
		}
		opts = append(opts, o)
	}
	return opts
}

func TestNew_Valid(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fixedClock(t, ts)

	q, err := New("q1", "Which hook holds local state?", []string{"react-hooks"}, DifficultyBeginner, testOptions(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.UsageCount() != 0 {
		t.Errorf("usage = %d, want 0", q.UsageCount())
	}
	if !q.CreatedAt().Equal(ts) || !q.UpdatedAt().Equal(ts) {
		t.Errorf("timestamps = %v/%v, want %v", q.CreatedAt(), q.UpdatedAt(), ts)
	}
	if len(q.Options()) != 4 {
		t.Errorf("options = %d, want 4", len(q.Options()))
	}
	correct, ok := q.CorrectOption()
	if !ok || correct.Text() != "useState" {
		t.Errorf("correct option = %q (%v), want useState", correct.Text(), ok)
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		tags       []string
		difficulty string
		field      string
	}{
		{"empty text", "", []string{"go"}, DifficultyBeginner, "text"},
		{"whitespace text", "   \t", []string{"go"}, DifficultyBeginner, "text"},
		{"no tags", "What is a goroutine?", nil, DifficultyBeginner, "tags"},
		{"empty tag", "What is a goroutine?", []string{""}, DifficultyBeginner, "tags"},
		{"whitespace tag among valid", "What is a goroutine?", []string{"go", "  "}, DifficultyBeginner, "tags"},
		{"blank difficulty", "What is a goroutine?", []string{"go"}, "  ", "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("q", tt.text, tt.tags, tt.difficulty, nil)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestIncrementUsage(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	q := Reconstitute("q1", "text", []string{"go"}, DifficultyAdvanced, 7, nil, created, created)

	later := created.Add(time.Hour)
	fixedClock(t, later)
	q.IncrementUsage()
	q.IncrementUsage()

	if q.UsageCount() != 9 {
		t.Errorf("usage = %d, want 9", q.UsageCount())
	}
	if !q.UpdatedAt().Equal(later) {
		t.Errorf("updatedAt = %v, want %v", q.UpdatedAt(), later)
	}
	if !q.CreatedAt().Equal(created) {
		t.Errorf("createdAt changed to %v", q.CreatedAt())
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	q, err := New("q1", "text", []string{"go", "channels"}, DifficultyBeginner, testOptions(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	tags := q.Tags()
	tags[0] = "mutated"
	opts := q.Options()
	opts[0] = ReconstituteOption("x", "mutated", false)

	if q.Tags()[0] != "go" {
		t.Errorf("tags mutated through accessor: %v", q.Tags())
	}
	if q.Options()[0].Text() != "useState" {
		t.Errorf("options mutated through accessor: %q", q.Options()[0].Text())
	}
}

func TestNew_CopiesInputSlices(t *testing.T) {
	tags := []string{"go"}
	q, err := New("q1", "text", tags, DifficultyBeginner, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tags[0] = "rust"
	if !q.HasTag("go") || q.HasTag("rust") {
		t.Errorf("question shares caller's tag slice: %v", q.Tags())
	}
}

func TestNewOption_RejectsBlankText(t *testing.T) {
	_, err := NewOption("o1", " ", true)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestReconstituteSkipsValidation(t *testing.T) {
	q := Reconstitute("q1", "", nil, "", 3, nil, time.Time{}, time.Time{})
	if q.Text() != "" || q.UsageCount() != 3 {
		t.Errorf("unexpected reconstituted question: %+v", q)
	}
	o := ReconstituteOption("o1", "", true)
	if !o.IsCorrect() {
		t.Error("expected reconstituted option to keep isCorrect")
	}
}
