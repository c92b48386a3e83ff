package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/skillpath/internal/quiz"
)

func TestBuildUserMessage(t *testing.T) {
	input := quiz.GenerateInput{
		Topic:      "sql-joins",
		Difficulty: "intermediate",
		Count:      7,
		Exclude:    []string{"What is an inner join?"},
	}
	msg := buildUserMessage(input, 3, DefaultConfig())

	for _, want := range []string{
		"Topic: sql-joins\n",
		"Difficulty: intermediate\n",
		"Number of questions: 3\n",
		"Already in the pool:\n1. What is an inner join?",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildExclude(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		max   int
		want  string
	}{
		{"empty", nil, 5, "None"},
		{"all", []string{"a", "b"}, 5, "1. a\n2. b"},
		{"capped", []string{"a", "b", "c"}, 2, "1. a\n2. b"},
		{"no cap", []string{"a", "b", "c"}, 0, "1. a\n2. b\n3. c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildExclude(tt.texts, tt.max); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
