package question

import "context"

// Repository persists the question pool.
type Repository interface {
	// FindByTags returns questions carrying ANY of tags at exactly the given
	// difficulty, least-used first. An empty tag set matches nothing.
	FindByTags(ctx context.Context, tags []string, difficulty string) ([]*Question, error)

	// SaveMany inserts or fully replaces each question, options included.
	// The batch is all-or-nothing.
	SaveMany(ctx context.Context, questions []*Question) error

	// FindByID returns the question, or nil if it does not exist.
	FindByID(ctx context.Context, id string) (*Question, error)
}
