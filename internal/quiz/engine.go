package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/question"
	"github.com/abhisek/skillpath/internal/roadmap"
)

// Config holds the quiz engine's tunables.
type Config struct {
	// QuizSize is the number of questions served per quiz.
	QuizSize int

	// MinPoolSize is the pool size below which new questions are generated.
	MinPoolSize int

	// PassThreshold is the minimum score (0-100) that passes a quiz.
	PassThreshold int
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{
		QuizSize:      5,
		MinPoolSize:   10,
		PassThreshold: 70,
	}
}

// Engine builds quizzes for theory roadmap items from a shared question
// pool, topping the pool up through a Generator when it runs low.
type Engine struct {
	roadmaps  roadmap.Repository
	questions question.Repository
	generator Generator
	cfg       Config

	sampler *sampler
	lock    BackfillLock
	newID   func() string
	log     *zap.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand sets the randomness source used for sampling.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.sampler = newSampler(rng) }
}

// WithIDs sets the id generator for new questions and options.
func WithIDs(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithBackfillLock serializes backfills per (topic, difficulty).
func WithBackfillLock(l BackfillLock) Option {
	return func(e *Engine) { e.lock = l }
}

// WithLogger sets the engine's logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates a quiz engine.
func NewEngine(roadmaps roadmap.Repository, questions question.Repository, gen Generator, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		roadmaps:  roadmaps,
		questions: questions,
		generator: gen,
		cfg:       cfg,
		sampler:   newSampler(nil),
		lock:      noLock{},
		newID:     uuid.NewString,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate builds a quiz for a theory item of the given roadmap.
//
// The pipeline is strictly sequential: resolve the item, look up the pool,
// backfill and persist if the pool is short, sample, persist the usage
// counts, project to a QuizDTO. Any failure aborts the whole call.
func (e *Engine) Generate(ctx context.Context, roadmapID, itemID string) (*QuizDTO, error) {
	item, err := e.resolveItem(ctx, roadmapID, itemID)
	if err != nil {
		return nil, err
	}

	tags, topic := poolTags(item)
	pool, err := e.loadPool(ctx, tags, topic, item.Difficulty)
	if err != nil {
		return nil, err
	}

	picked := sample(e.sampler, pool, e.cfg.QuizSize)
	for _, q := range picked {
		q.IncrementUsage()
	}
	if len(picked) > 0 {
		if err := e.questions.SaveMany(ctx, picked); err != nil {
			return nil, fmt.Errorf("save usage counts: %w", err)
		}
	}

	e.log.Debug("quiz sampled",
		zap.String("roadmap_item", item.ID),
		zap.Int("pool", len(pool)),
		zap.Int("served", len(picked)))

	return newQuizDTO(item, picked), nil
}

// resolveItem loads the roadmap item and applies the quiz eligibility gate.
func (e *Engine) resolveItem(ctx context.Context, roadmapID, itemID string) (roadmap.Item, error) {
	rm, err := e.roadmaps.FindByID(ctx, roadmapID)
	if err != nil {
		return roadmap.Item{}, fmt.Errorf("find roadmap: %w", err)
	}
	if rm == nil {
		return roadmap.Item{}, errRoadmapNotFound
	}
	if user, ok := UserFrom(ctx); ok && rm.UserID != user {
		return roadmap.Item{}, errRoadmapNotFound
	}

	item, ok := rm.Item(itemID)
	if !ok {
		return roadmap.Item{}, errItemNotFound
	}
	if item.Type != roadmap.ItemTheory {
		return roadmap.Item{}, errProjectItem
	}
	return item, nil
}

// poolTags derives the lookup tags and the generation topic for an item.
// A blank topic yields no lookup tags while generation falls back to the
// item title.
func poolTags(item roadmap.Item) (tags []string, topic string) {
	topic = strings.TrimSpace(item.Topic)
	if topic != "" {
		return []string{topic}, topic
	}
	return nil, item.Title
}

// loadPool returns the pool for the item, backfilling it first when it
// holds fewer than MinPoolSize questions.
func (e *Engine) loadPool(ctx context.Context, tags []string, topic, difficulty string) ([]*question.Question, error) {
	release, err := e.lock.Acquire(ctx, poolKey(topic, difficulty))
	if err != nil {
		return nil, fmt.Errorf("acquire backfill lock: %w", err)
	}
	defer release()

	pool, err := e.questions.FindByTags(ctx, tags, difficulty)
	if err != nil {
		return nil, fmt.Errorf("find pool: %w", err)
	}
	if len(pool) >= e.cfg.MinPoolSize {
		return pool, nil
	}

	needed := e.cfg.MinPoolSize - len(pool)
	e.log.Info("backfilling question pool",
		zap.String("topic", topic),
		zap.String("difficulty", difficulty),
		zap.Int("pool", len(pool)),
		zap.Int("needed", needed))

	exclude := make([]string, 0, len(pool))
	for _, q := range pool {
		exclude = append(exclude, q.Text())
	}

	drafts, err := e.generator.Generate(ctx, GenerateInput{
		Topic:      topic,
		Difficulty: difficulty,
		Count:      needed,
		Exclude:    exclude,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	if len(drafts) > needed {
		drafts = drafts[:needed]
	}
	if len(drafts) == 0 && len(pool) == 0 {
		return nil, &MalformedOutputError{Reason: "generator returned no questions"}
	}

	fresh := make([]*question.Question, 0, len(drafts))
	for _, d := range drafts {
		q, err := e.fromDraft(d, topic, difficulty)
		if err != nil {
			return nil, &MalformedOutputError{Reason: "draft rejected", Err: err}
		}
		fresh = append(fresh, q)
	}

	// New questions become durable before they can be served.
	if len(fresh) > 0 {
		if err := e.questions.SaveMany(ctx, fresh); err != nil {
			return nil, fmt.Errorf("save generated questions: %w", err)
		}
	}

	e.log.Info("question pool backfilled",
		zap.String("topic", topic),
		zap.String("difficulty", difficulty),
		zap.Int("generated", len(fresh)))

	return append(pool, fresh...), nil
}

func (e *Engine) fromDraft(d Draft, topic, difficulty string) (*question.Question, error) {
	drafted := d.Options()
	opts := make([]question.Option, 0, len(drafted))
	for _, do := range drafted {
		o, err := question.NewOption(e.newID(), do.Text, do.IsCorrect)
		if err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return question.New(e.newID(), d.Text(), []string{topic}, difficulty, opts)
}
