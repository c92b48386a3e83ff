package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skillpath/internal/llm"
)

// EventRepo is the LLM request log. It implements llm.EventRecorder.
type EventRepo struct {
	s *Store
}

var _ llm.EventRecorder = (*EventRepo)(nil)

// LLMEvent is a stored llm.RequestEvent.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	llm.RequestEvent
}

// QueryOpts narrows QueryLLMEvents.
type QueryOpts struct {
	Limit   int
	Purpose string
}

// PurposeUsage aggregates calls for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates calls for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

var eventColumns = []string{
	"id", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *EventRepo) RecordLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	ins := r.s.stmt().Insert(LLMRequestEventsTable.Name).
		Columns(eventColumns[1:]...).
		Values(time.Now().UTC(), ev.Provider, ev.Model, ev.Purpose, ev.InputTokens, ev.OutputTokens,
			ev.LatencyMs, ev.Success, ev.ErrorMessage, ev.RequestBody, ev.ResponseBody)
	_, err := execB(ctx, r.s.db, ins)
	return fail("record llm request", err)
}

// QueryLLMEvents returns events newest first.
func (r *EventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	b := r.s.stmt()
	sel := b.Select(eventColumns...).
		From(b.Table(LLMRequestEventsTable.Name)).
		OrderBy(entsql.Desc("id"))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	evs, err := r.scan(ctx, sel)
	return evs, fail("query llm events", err)
}

// GetLLMEvent returns nil, nil when id is unknown.
func (r *EventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	b := r.s.stmt()
	sel := b.Select(eventColumns...).
		From(b.Table(LLMRequestEventsTable.Name)).
		Where(entsql.EQ("id", id))
	evs, err := r.scan(ctx, sel)
	if err != nil {
		return nil, fail("get llm event", err)
	}
	if len(evs) == 0 {
		return nil, nil
	}
	return &evs[0], nil
}

func (r *EventRepo) scan(ctx context.Context, sel *entsql.Selector) ([]LLMEvent, error) {
	rows, err := queryB(ctx, r.s.db, sel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		var e LLMEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LLMUsageByPurpose sums tokens per purpose, busiest first.
func (r *EventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	b := r.s.stmt()
	sel := b.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
	).
		From(b.Table(LLMRequestEventsTable.Name)).
		GroupBy("purpose").
		OrderBy(entsql.Desc("calls"), "purpose")

	rows, err := queryB(ctx, r.s.db, sel)
	if err != nil {
		return nil, fail("usage by purpose", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var (
			u   PurposeUsage
			avg float64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, fail("usage by purpose", err)
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
	}
	return out, fail("usage by purpose", rows.Err())
}

// LLMUsageByModel sums tokens per model for cost estimates.
func (r *EventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	b := r.s.stmt()
	sel := b.Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(b.Table(LLMRequestEventsTable.Name)).
		GroupBy("model").
		OrderBy("model")

	rows, err := queryB(ctx, r.s.db, sel)
	if err != nil {
		return nil, fail("usage by model", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fail("usage by model", err)
		}
		out = append(out, u)
	}
	return out, fail("usage by model", rows.Err())
}
