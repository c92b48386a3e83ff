package roadmap

import "context"

// ItemType says how a roadmap milestone is validated.
type ItemType string

const (
	// ItemTheory items are validated with a quiz.
	ItemTheory ItemType = "theory"

	// ItemProject items are validated by project submission and are not
	// quiz-eligible.
	ItemProject ItemType = "project"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == ItemTheory || t == ItemProject
}

// Roadmap is a learner's ordered plan of milestones toward a target role.
type Roadmap struct {
	ID         string
	UserID     string
	TargetRole string
	Items      []Item
}

// Item is a single roadmap milestone.
type Item struct {
	ID         string
	Title      string
	Type       ItemType
	Topic      string
	Difficulty string
	Position   int
}

// Item returns the item with the given id.
func (r *Roadmap) Item(id string) (Item, bool) {
	for _, it := range r.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Repository reads roadmaps. Roadmap CRUD lives elsewhere; Save exists for
// seeding from import files.
type Repository interface {
	// FindByID returns the roadmap with its items, or nil if absent.
	FindByID(ctx context.Context, id string) (*Roadmap, error)

	// Save inserts or replaces a roadmap and all of its items.
	Save(ctx context.Context, r *Roadmap) error
}
