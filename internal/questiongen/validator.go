package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/skillpath/internal/quiz"
)

// Validator checks a generated draft beyond the option rules.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if the draft passes.
	Validate(d quiz.Draft, input quiz.GenerateInput) *ValidationError
}

// ValidationError describes why a draft failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxQuestionLen = 500
	maxOptionLen   = 200
)

// StructuralValidator enforces length limits and non-blank options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d quiz.Draft, _ quiz.GenerateInput) *ValidationError {
	if len(d.Text()) > maxQuestionLen {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question text exceeds %d characters", maxQuestionLen)}
	}
	for i, o := range d.Options() {
		if strings.TrimSpace(o.Text) == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i+1)}
		}
		if len(o.Text) > maxOptionLen {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d exceeds %d characters", i+1, maxOptionLen)}
		}
	}
	return nil
}

// DistinctOptionsValidator rejects drafts whose options repeat.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(d quiz.Draft, _ quiz.GenerateInput) *ValidationError {
	seen := make(map[string]bool, quiz.OptionsPerQuestion)
	for _, o := range d.Options() {
		k := normalize(o.Text)
		if seen[k] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate option %q", o.Text)}
		}
		seen[k] = true
	}
	return nil
}

// NoRepeatValidator rejects drafts that repeat a question already in the pool.
type NoRepeatValidator struct{}

func (v *NoRepeatValidator) Name() string { return "no-repeat" }

func (v *NoRepeatValidator) Validate(d quiz.Draft, input quiz.GenerateInput) *ValidationError {
	text := normalize(d.Text())
	for _, existing := range input.Exclude {
		if normalize(existing) == text {
			return &ValidationError{Validator: v.Name(), Message: "question repeats an existing pool question"}
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
