package question

import (
	"slices"
	"strings"
	"time"
)

// Difficulty levels used by roadmap items and the question pool.
// Stored as free strings; these are the values the generator is asked for.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Difficulties lists the known difficulty levels in ascending order.
var Difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// now is swapped in tests to get stable timestamps.
var now = func() time.Time { return time.Now().UTC() }

// Question is a pooled quiz question. It is reused across many quizzes;
// UsageCount records how often it has been served.
type Question struct {
	id         string
	text       string
	tags       []string
	difficulty string
	usageCount int
	options    []Option
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a question, rejecting blank text, an empty or blank tag set
// or a blank difficulty. The option multiplicity is not checked here.
func New(id, text string, tags []string, difficulty string, options []Option) (*Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "question text is required"}
	}
	if len(tags) == 0 {
		return nil, &ValidationError{Field: "tags", Message: "at least one tag is required"}
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return nil, &ValidationError{Field: "tags", Message: "tags must not be blank"}
		}
	}
	if strings.TrimSpace(difficulty) == "" {
		return nil, &ValidationError{Field: "difficulty", Message: "difficulty is required"}
	}

	ts := now()
	return &Question{
		id:         id,
		text:       text,
		tags:       slices.Clone(tags),
		difficulty: difficulty,
		options:    slices.Clone(options),
		createdAt:  ts,
		updatedAt:  ts,
	}, nil
}

// Reconstitute rebuilds a question from storage without validation.
func Reconstitute(id, text string, tags []string, difficulty string, usageCount int, options []Option, createdAt, updatedAt time.Time) *Question {
	return &Question{
		id:         id,
		text:       text,
		tags:       slices.Clone(tags),
		difficulty: difficulty,
		usageCount: usageCount,
		options:    slices.Clone(options),
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// IncrementUsage records that the question was served once more.
// The change is in memory only; persist it with Repository.SaveMany.
func (q *Question) IncrementUsage() {
	q.usageCount++
	q.updatedAt = now()
}

func (q *Question) ID() string { return q.id }
func (q *Question) Text() string { return q.text }
func (q *Question) Difficulty() string { return q.difficulty }
func (q *Question) UsageCount() int { return q.usageCount }
func (q *Question) CreatedAt() time.Time { return q.createdAt }
func (q *Question) UpdatedAt() time.Time { return q.updatedAt }

// Tags returns a copy of the question's tags.
func (q *Question) Tags() []string { return slices.Clone(q.tags) }

// Options returns a copy of the question's options.
func (q *Question) Options() []Option { return slices.Clone(q.options) }

// CorrectOption returns the option flagged correct, if any.
func (q *Question) CorrectOption() (Option, bool) {
	for _, o := range q.options {
		if o.isCorrect {
			return o, true
		}
	}
	return Option{}, false
}

// HasTag reports whether the question carries tag.
func (q *Question) HasTag(tag string) bool {
	return slices.Contains(q.tags, tag)
}
