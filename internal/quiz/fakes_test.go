package quiz

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/skillpath/internal/question"
	"github.com/abhisek/skillpath/internal/roadmap"
)

// callLog records the order of port calls across fakes.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.calls)
}

type fakeRoadmaps struct {
	log      *callLog
	roadmaps map[string]*roadmap.Roadmap
}

func (f *fakeRoadmaps) FindByID(_ context.Context, id string) (*roadmap.Roadmap, error) {
	f.log.add("roadmap.FindByID")
	return f.roadmaps[id], nil
}

func (f *fakeRoadmaps) Save(_ context.Context, r *roadmap.Roadmap) error {
	f.roadmaps[r.ID] = r
	return nil
}

type fakeQuestions struct {
	log       *callLog
	questions map[string]*question.Question
	saves     [][]string // question ids per SaveMany call
	saveErr   error
}

func newFakeQuestions(log *callLog) *fakeQuestions {
	return &fakeQuestions{log: log, questions: make(map[string]*question.Question)}
}

func (f *fakeQuestions) FindByTags(_ context.Context, tags []string, difficulty string) ([]*question.Question, error) {
	f.log.add("questions.FindByTags")
	var out []*question.Question
	for _, q := range f.questions {
		if q.Difficulty() != difficulty {
			continue
		}
		if slices.ContainsFunc(tags, q.HasTag) {
			out = append(out, q)
		}
	}
	slices.SortFunc(out, func(a, b *question.Question) int {
		return cmp.Or(cmp.Compare(a.UsageCount(), b.UsageCount()), cmp.Compare(a.ID(), b.ID()))
	})
	return out, nil
}

func (f *fakeQuestions) SaveMany(_ context.Context, qs []*question.Question) error {
	f.log.add("questions.SaveMany(%d)", len(qs))
	if f.saveErr != nil {
		return f.saveErr
	}
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		f.questions[q.ID()] = q
		ids = append(ids, q.ID())
	}
	f.saves = append(f.saves, ids)
	return nil
}

func (f *fakeQuestions) FindByID(_ context.Context, id string) (*question.Question, error) {
	f.log.add("questions.FindByID")
	return f.questions[id], nil
}

// seed adds n stored questions for tag/difficulty.
func (f *fakeQuestions) seed(n int, tag, difficulty string) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range n {
		id := fmt.Sprintf("%s-%s-%02d", tag, difficulty, i)
		var opts []question.Option
		for j := range OptionsPerQuestion {
			opts = append(opts, question.ReconstituteOption(fmt.Sprintf("%s-o%d", id, j), fmt.Sprintf("option %d", j), j == 0))
		}
		f.questions[id] = question.Reconstitute(id, "Stored question "+id, []string{tag}, difficulty, i%3, opts, ts, ts)
	}
}

type fakeGenerator struct {
	log    *callLog
	inputs []GenerateInput
	// produce is how many drafts are returned; -1 means Count.
	produce int
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, in GenerateInput) ([]Draft, error) {
	f.log.add("generator.Generate(%d)", in.Count)
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	n := in.Count
	if f.produce >= 0 {
		n = f.produce
	}
	drafts := make([]Draft, 0, n)
	for i := range n {
		d, err := NewDraft(fmt.Sprintf("Generated %s question %d", in.Topic, i), []DraftOption{
			{Text: "right", IsCorrect: true},
			{Text: "wrong a"},
			{Text: "wrong b"},
			{Text: "wrong c"},
		})
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func testRoadmap() *roadmap.Roadmap {
	return &roadmap.Roadmap{
		ID:     "rm-1",
		UserID: "user-1",
		Items: []roadmap.Item{
			{ID: "hooks", Title: "React Hooks", Type: roadmap.ItemTheory, Topic: "react-hooks", Difficulty: question.DifficultyBeginner},
			{ID: "portfolio", Title: "Portfolio site", Type: roadmap.ItemProject, Topic: "react", Difficulty: question.DifficultyIntermediate},
			{ID: "untagged", Title: "Web Basics", Type: roadmap.ItemTheory, Topic: "  ", Difficulty: question.DifficultyBeginner},
		},
	}
}

type harness struct {
	log       *callLog
	roadmaps  *fakeRoadmaps
	questions *fakeQuestions
	generator *fakeGenerator
}

func newHarness() *harness {
	log := &callLog{}
	return &harness{
		log:       log,
		roadmaps:  &fakeRoadmaps{log: log, roadmaps: map[string]*roadmap.Roadmap{"rm-1": testRoadmap()}},
		questions: newFakeQuestions(log),
		generator: &fakeGenerator{log: log, produce: -1},
	}
}

func (h *harness) engine(opts ...Option) *Engine {
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("gen-%03d", n)
	}
	opts = append([]Option{WithIDs(ids)}, opts...)
	return NewEngine(h.roadmaps, h.questions, h.generator, DefaultConfig(), opts...)
}

// count returns how many recorded calls start with prefix.
func (h *harness) count(prefix string) int {
	n := 0
	for _, c := range h.log.all() {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
