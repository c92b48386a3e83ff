package quiz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/skillpath/internal/question"
)

type seedFile struct {
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	// ID is optional. With an id, reseeding the file replaces the question
	// instead of adding a copy.
	ID         string       `yaml:"id"`
	Text       string       `yaml:"text"`
	Tags       []string     `yaml:"tags"`
	Difficulty string       `yaml:"difficulty"`
	Options    []seedOption `yaml:"options"`
}

type seedOption struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// LoadSeedFile reads hand-written pool questions from YAML.
func LoadSeedFile(path string, newID func() string) ([]*question.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data, newID)
}

// ParseSeed decodes seed YAML. Seeded questions obey the same option rules
// as generated ones.
func ParseSeed(data []byte, newID func() string) ([]*question.Question, error) {
	var f seedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}

	out := make([]*question.Question, 0, len(f.Questions))
	ids := make(map[string]bool, len(f.Questions))
	for i, sq := range f.Questions {
		if sq.ID != "" {
			if ids[sq.ID] {
				return nil, fmt.Errorf("questions[%d]: duplicate id %q", i, sq.ID)
			}
			ids[sq.ID] = true
		}
		opts := make([]DraftOption, len(sq.Options))
		for j, o := range sq.Options {
			opts[j] = DraftOption{Text: o.Text, IsCorrect: o.Correct}
		}
		d, err := NewDraft(sq.Text, opts)
		if err != nil {
			return nil, fmt.Errorf("questions[%d]: %w", i, err)
		}

		id := sq.ID
		optID := func(int) string { return newID() }
		if id == "" {
			id = newID()
		} else {
			optID = func(j int) string { return fmt.Sprintf("%s-opt-%d", sq.ID, j+1) }
		}

		built := make([]question.Option, 0, len(opts))
		for j, do := range d.Options() {
			o, err := question.NewOption(optID(j), do.Text, do.IsCorrect)
			if err != nil {
				return nil, fmt.Errorf("questions[%d] options[%d]: %w", i, j, err)
			}
			built = append(built, o)
		}
		q, err := question.New(id, d.Text(), sq.Tags, sq.Difficulty, built)
		if err != nil {
			return nil, fmt.Errorf("questions[%d]: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// SeedPool saves seeded questions. A question that is already stored keeps
// its usage count and creation time; only its content is replaced.
func SeedPool(ctx context.Context, repo question.Repository, qs []*question.Question) error {
	merged := make([]*question.Question, 0, len(qs))
	for _, q := range qs {
		existing, err := repo.FindByID(ctx, q.ID())
		if err != nil {
			return fmt.Errorf("find question %s: %w", q.ID(), err)
		}
		if existing != nil {
			q = question.Reconstitute(q.ID(), q.Text(), q.Tags(), q.Difficulty(),
				existing.UsageCount(), q.Options(), existing.CreatedAt(), q.UpdatedAt())
		}
		merged = append(merged, q)
	}
	return repo.SaveMany(ctx, merged)
}
