package question

import "strings"

// Option is one answer choice of a Question. Its lifetime is bound to the
// owning question; options are always saved and replaced together with it.
type Option struct {
	id        string
	text      string
	isCorrect bool
}

// NewOption creates an answer option. Blank text is rejected.
func NewOption(id, text string, isCorrect bool) (Option, error) {
	if strings.TrimSpace(text) == "" {
		return Option{}, &ValidationError{Field: "option.text", Message: "option text is required"}
	}
	return Option{id: id, text: text, isCorrect: isCorrect}, nil
}

// ReconstituteOption rebuilds an option from storage without validation.
func ReconstituteOption(id, text string, isCorrect bool) Option {
	return Option{id: id, text: text, isCorrect: isCorrect}
}

func (o Option) ID() string { return o.id }
func (o Option) Text() string { return o.text }
func (o Option) IsCorrect() bool { return o.isCorrect }
