package quiz

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/question"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

const seedYAML = `
questions:
  - id: hooks-1
    text: Which hook holds local component state?
    tags: [react-hooks]
    difficulty: beginner
    options:
      - text: useState
        correct: true
      - text: useEffect
      - text: useRef
      - text: useMemo
  - text: What does a SQL LEFT JOIN keep?
    tags: [sql, sql-joins]
    difficulty: intermediate
    options:
      - text: Only matching rows
      - text: All rows from the left table
        correct: true
      - text: All rows from the right table
      - text: The cartesian product
`

func TestParseSeed(t *testing.T) {
	qs, err := ParseSeed([]byte(seedYAML), counterIDs())
	require.NoError(t, err)
	require.Len(t, qs, 2)

	hooks := qs[0]
	assert.Equal(t, "hooks-1", hooks.ID())
	assert.Equal(t, []string{"react-hooks"}, hooks.Tags())
	assert.Equal(t, 0, hooks.UsageCount())
	assert.Equal(t, "hooks-1-opt-1", hooks.Options()[0].ID(), "stable option ids for stable question ids")
	correct, ok := hooks.CorrectOption()
	require.True(t, ok)
	assert.Equal(t, "useState", correct.Text())

	joins := qs[1]
	assert.Equal(t, "gen-1", joins.ID())
	assert.Equal(t, "gen-2", joins.Options()[0].ID())
	assert.Equal(t, question.DifficultyIntermediate, joins.Difficulty())
}

func TestParseSeed_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "three options",
			yaml: "questions:\n  - text: Q?\n    tags: [go]\n    difficulty: beginner\n    options:\n      - {text: a, correct: true}\n      - {text: b}\n      - {text: c}\n",
			want: "must have 4 options",
		},
		{
			name: "two correct",
			yaml: "questions:\n  - text: Q?\n    tags: [go]\n    difficulty: beginner\n    options:\n      - {text: a, correct: true}\n      - {text: b, correct: true}\n      - {text: c}\n      - {text: d}\n",
			want: "must have exactly 1 correct answer",
		},
		{
			name: "no tags",
			yaml: "questions:\n  - text: Q?\n    difficulty: beginner\n    options:\n      - {text: a, correct: true}\n      - {text: b}\n      - {text: c}\n      - {text: d}\n",
			want: "at least one tag is required",
		},
		{
			name: "blank tag",
			yaml: "questions:\n  - text: Q?\n    tags: [\"\"]\n    difficulty: beginner\n    options:\n      - {text: a, correct: true}\n      - {text: b}\n      - {text: c}\n      - {text: d}\n",
			want: "tags must not be blank",
		},
		{
			name: "duplicate id",
			yaml: "questions:\n  - id: q1\n    text: Q?\n    tags: [go]\n    difficulty: beginner\n    options:\n      - {text: a, correct: true}\n      - {text: b}\n      - {text: c}\n      - {text: d}\n  - id: q1\n    text: Q2?\n    tags: [go]\n    difficulty: beginner\n    options:\n      - {text: a, correct: true}\n      - {text: b}\n      - {text: c}\n      - {text: d}\n",
			want: `duplicate id "q1"`,
		},
		{
			name: "unknown field",
			yaml: "questions:\n  - text: Q?\n    answer: a\n",
			want: "parse seed yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.yaml), counterIDs())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSeed_ValidationErrorType(t *testing.T) {
	_, err := ParseSeed([]byte("questions:\n  - text: \"\"\n"), counterIDs())
	var verr *question.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "text", verr.Field)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	qs, err := LoadSeedFile(path, counterIDs())
	require.NoError(t, err)
	assert.Len(t, qs, 2)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"), counterIDs())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSeedPool_KeepsUsageOfStoredQuestions(t *testing.T) {
	repo := newFakeQuestions(&callLog{})
	ctx := context.Background()
	newID := counterIDs()

	first, err := ParseSeed([]byte(seedYAML), newID)
	require.NoError(t, err)
	require.NoError(t, SeedPool(ctx, repo, first))

	hooks := repo.questions["hooks-1"]
	for range 3 {
		hooks.IncrementUsage()
	}
	created := hooks.CreatedAt()

	again, err := ParseSeed([]byte(seedYAML), newID)
	require.NoError(t, err)
	require.NoError(t, SeedPool(ctx, repo, again))

	reseeded := repo.questions["hooks-1"]
	assert.Equal(t, 3, reseeded.UsageCount())
	assert.True(t, reseeded.CreatedAt().Equal(created))
	assert.Equal(t, "Which hook holds local component state?", reseeded.Text())
	assert.Len(t, repo.questions, 3, "entries without an id are added again")
}
