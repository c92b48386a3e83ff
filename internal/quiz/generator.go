package quiz

import (
	"context"
	"slices"
	"strings"

	"github.com/abhisek/skillpath/internal/question"
)

// OptionsPerQuestion is the number of answer choices every pool question has.
const OptionsPerQuestion = 4

// Generator produces new question drafts for a topic and difficulty.
type Generator interface {
	// Generate returns up to input.Count drafts. Unusable output is
	// reported as *MalformedOutputError.
	Generate(ctx context.Context, input GenerateInput) ([]Draft, error)
}

// GenerateInput describes what the generator should produce.
type GenerateInput struct {
	Topic      string
	Difficulty string
	Count      int

	// Exclude holds texts of questions already in the pool so the
	// generator can avoid near-duplicates. Optional.
	Exclude []string
}

// DraftOption is a generator-supplied answer choice.
type DraftOption struct {
	Text      string
	IsCorrect bool
}

// Draft is a generator-supplied question that has passed the option rules.
// Build one with NewDraft.
type Draft struct {
	text    string
	options []DraftOption
}

// NewDraft checks the option rules for generated questions: exactly four
// options, exactly one of them correct.
func NewDraft(text string, options []DraftOption) (Draft, error) {
	if strings.TrimSpace(text) == "" {
		return Draft{}, &question.ValidationError{Field: "text", Message: "question text is required"}
	}
	if len(options) != OptionsPerQuestion {
		return Draft{}, &question.ValidationError{Field: "options", Message: "must have 4 options"}
	}
	correct := 0
	for _, o := range options {
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return Draft{}, &question.ValidationError{Field: "options", Message: "must have exactly 1 correct answer"}
	}
	return Draft{text: text, options: slices.Clone(options)}, nil
}

func (d Draft) Text() string { return d.text }
func (d Draft) Options() []DraftOption { return slices.Clone(d.options) }
