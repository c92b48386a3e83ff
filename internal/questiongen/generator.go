package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/quiz"
)

// LLMGenerator implements quiz.Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *LLMGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Text    string         `json:"text"`
	Options []optionOutput `json:"options"`
}

type optionOutput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Generate asks the LLM for input.Count questions, in batches of at most
// BatchSize. Fewer drafts than requested are returned if the model
// under-delivers; an empty first batch or any invalid draft fails the call.
func (g *LLMGenerator) Generate(ctx context.Context, input quiz.GenerateInput) ([]quiz.Draft, error) {
	ctx = llm.WithPurpose(ctx, "quiz-question-gen")

	// Drafts accepted so far also count as "already in the pool".
	seen := quiz.GenerateInput{
		Topic:      input.Topic,
		Difficulty: input.Difficulty,
		Exclude:    slices.Clone(input.Exclude),
	}

	var drafts []quiz.Draft
	for len(drafts) < input.Count {
		want := input.Count - len(drafts)
		if g.config.BatchSize > 0 && want > g.config.BatchSize {
			want = g.config.BatchSize
		}

		batch, err := g.generateBatch(ctx, seen, want)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 && len(drafts) == 0 {
			return nil, &quiz.MalformedOutputError{Reason: "LLM returned no questions"}
		}

		for _, d := range batch {
			seen.Exclude = append(seen.Exclude, d.Text())
		}
		drafts = append(drafts, batch...)

		if len(batch) < want {
			g.log.Warn("LLM under-delivered questions",
				zap.String("topic", input.Topic),
				zap.Int("requested", want),
				zap.Int("received", len(batch)))
			break
		}
	}

	return drafts, nil
}

func (g *LLMGenerator) generateBatch(ctx context.Context, input quiz.GenerateInput, count int) ([]quiz.Draft, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, count, g.config)},
		},
		Schema:      QuestionBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &quiz.MalformedOutputError{Reason: "unparseable LLM response", Err: err}
	}
	if len(raw.Questions) > count {
		raw.Questions = raw.Questions[:count]
	}

	// Catch repeats within the batch too.
	input.Exclude = slices.Clone(input.Exclude)

	drafts := make([]quiz.Draft, 0, len(raw.Questions))
	for i, rq := range raw.Questions {
		opts := make([]quiz.DraftOption, 0, len(rq.Options))
		for _, ro := range rq.Options {
			opts = append(opts, quiz.DraftOption{Text: ro.Text, IsCorrect: ro.IsCorrect})
		}

		d, err := quiz.NewDraft(rq.Text, opts)
		if err != nil {
			return nil, &quiz.MalformedOutputError{Reason: fmt.Sprintf("question %d", i+1), Err: err}
		}

		for _, v := range g.config.Validators {
			if verr := v.Validate(d, input); verr != nil {
				return nil, &quiz.MalformedOutputError{Reason: fmt.Sprintf("question %d", i+1), Err: verr}
			}
		}

		input.Exclude = append(input.Exclude, d.Text())
		drafts = append(drafts, d)
	}
	return drafts, nil
}
