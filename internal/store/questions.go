package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skillpath/internal/question"
)

// QuestionRepo implements question.Repository.
type QuestionRepo struct {
	s *Store
}

var _ question.Repository = (*QuestionRepo)(nil)

var questionColumns = []string{"id", "text", "difficulty", "usage_count", "created_at", "updated_at"}

// FindByTags returns questions of the given difficulty carrying at least
// one of tags, least used first. No tags matches nothing.
func (r *QuestionRepo) FindByTags(ctx context.Context, tags []string, difficulty string) ([]*question.Question, error) {
	if len(tags) == 0 {
		return []*question.Question{}, nil
	}
	b := r.s.stmt()
	tagged := b.Select("question_id").
		From(b.Table(QuestionTagsTable.Name)).
		Where(entsql.In("tag", toAny(tags)...))
	sel := b.Select(questionColumns...).
		From(b.Table(QuestionsTable.Name)).
		Where(entsql.And(
			entsql.EQ("difficulty", difficulty),
			entsql.In("id", tagged),
		)).
		OrderBy("usage_count", "created_at", "id")

	qs, err := r.load(ctx, sel)
	return qs, fail("find questions by tags", err)
}

func (r *QuestionRepo) FindByID(ctx context.Context, id string) (*question.Question, error) {
	b := r.s.stmt()
	sel := b.Select(questionColumns...).
		From(b.Table(QuestionsTable.Name)).
		Where(entsql.EQ("id", id))

	qs, err := r.load(ctx, sel)
	if err != nil {
		return nil, fail("find question", err)
	}
	if len(qs) == 0 {
		return nil, nil
	}
	return qs[0], nil
}

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	Tag        string
	Difficulty string
	Limit      int
}

// List returns questions newest first.
func (r *QuestionRepo) List(ctx context.Context, f ListFilter) ([]*question.Question, error) {
	b := r.s.stmt()
	sel := b.Select(questionColumns...).
		From(b.Table(QuestionsTable.Name)).
		OrderBy(entsql.Desc("created_at"), "id")

	var preds []*entsql.Predicate
	if f.Difficulty != "" {
		preds = append(preds, entsql.EQ("difficulty", f.Difficulty))
	}
	if f.Tag != "" {
		preds = append(preds, entsql.In("id", b.Select("question_id").
			From(b.Table(QuestionTagsTable.Name)).
			Where(entsql.EQ("tag", f.Tag))))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}

	qs, err := r.load(ctx, sel)
	return qs, fail("list questions", err)
}

// PoolSize is one (tag, difficulty) bucket.
type PoolSize struct {
	Tag        string
	Difficulty string
	Count      int
}

// PoolSizes counts questions per tag and difficulty.
func (r *QuestionRepo) PoolSizes(ctx context.Context) ([]PoolSize, error) {
	b := r.s.stmt()
	t := b.Table(QuestionTagsTable.Name).As("t")
	q := b.Table(QuestionsTable.Name).As("q")
	sel := b.Select(t.C("tag"), q.C("difficulty"), entsql.As(entsql.Count("*"), "n")).
		From(t).
		Join(q).On(t.C("question_id"), q.C("id")).
		GroupBy(t.C("tag"), q.C("difficulty")).
		OrderBy(t.C("tag"), q.C("difficulty"))

	rows, err := queryB(ctx, r.s.db, sel)
	if err != nil {
		return nil, fail("count pools", err)
	}
	defer rows.Close()

	var out []PoolSize
	for rows.Next() {
		var p PoolSize
		if err := rows.Scan(&p.Tag, &p.Difficulty, &p.Count); err != nil {
			return nil, fail("count pools", err)
		}
		out = append(out, p)
	}
	return out, fail("count pools", rows.Err())
}

// SaveMany upserts qs in one transaction. Options and tags are replaced
// wholesale. Either every question is written or none is.
func (r *QuestionRepo) SaveMany(ctx context.Context, qs []*question.Question) error {
	if len(qs) == 0 {
		return nil
	}
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		b := r.s.stmt()

		upsert := b.Insert(QuestionsTable.Name).
			Columns(questionColumns...).
			OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
		ids := make([]any, 0, len(qs))
		for _, q := range qs {
			upsert.Values(q.ID(), q.Text(), q.Difficulty(), q.UsageCount(), q.CreatedAt().UTC(), q.UpdatedAt().UTC())
			ids = append(ids, q.ID())
		}
		if _, err := execB(ctx, tx, upsert); err != nil {
			return fmt.Errorf("upsert questions: %w", err)
		}

		for _, table := range []string{QuestionOptionsTable.Name, QuestionTagsTable.Name} {
			del := b.Delete(table).Where(entsql.In("question_id", ids...))
			if _, err := execB(ctx, tx, del); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		opts := b.Insert(QuestionOptionsTable.Name).Columns("id", "question_id", "position", "text", "is_correct")
		tags := b.Insert(QuestionTagsTable.Name).Columns("question_id", "tag")
		var nOpts, nTags int
		for _, q := range qs {
			for i, o := range q.Options() {
				opts.Values(o.ID(), q.ID(), i, o.Text(), o.IsCorrect())
				nOpts++
			}
			for _, tag := range uniq(q.Tags()) {
				tags.Values(q.ID(), tag)
				nTags++
			}
		}
		if nOpts > 0 {
			if _, err := execB(ctx, tx, opts); err != nil {
				return fmt.Errorf("insert options: %w", err)
			}
		}
		if nTags > 0 {
			if _, err := execB(ctx, tx, tags); err != nil {
				return fmt.Errorf("insert tags: %w", err)
			}
		}
		return nil
	})
	return fail("save questions", err)
}

type questionRow struct {
	id, text, difficulty string
	usage                int
	created, updated     time.Time
}

// load runs sel and attaches options and tags, preserving sel's order.
func (r *QuestionRepo) load(ctx context.Context, sel *entsql.Selector) ([]*question.Question, error) {
	rows, err := queryB(ctx, r.s.db, sel)
	if err != nil {
		return nil, err
	}
	var qrows []questionRow
	for rows.Next() {
		var q questionRow
		if err := rows.Scan(&q.id, &q.text, &q.difficulty, &q.usage, &q.created, &q.updated); err != nil {
			rows.Close()
			return nil, err
		}
		qrows = append(qrows, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(qrows) == 0 {
		return []*question.Question{}, nil
	}

	ids := make([]any, len(qrows))
	for i, q := range qrows {
		ids[i] = q.id
	}
	options, err := r.loadOptions(ctx, ids)
	if err != nil {
		return nil, err
	}
	tags, err := r.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*question.Question, len(qrows))
	for i, q := range qrows {
		out[i] = question.Reconstitute(q.id, q.text, tags[q.id], q.difficulty, q.usage, options[q.id], q.created, q.updated)
	}
	return out, nil
}

func (r *QuestionRepo) loadOptions(ctx context.Context, ids []any) (map[string][]question.Option, error) {
	b := r.s.stmt()
	sel := b.Select("question_id", "id", "text", "is_correct").
		From(b.Table(QuestionOptionsTable.Name)).
		Where(entsql.In("question_id", ids...)).
		OrderBy("question_id", "position")

	rows, err := queryB(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]question.Option, len(ids))
	for rows.Next() {
		var (
			qid, id, text string
			correct       bool
		)
		if err := rows.Scan(&qid, &id, &text, &correct); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		out[qid] = append(out[qid], question.ReconstituteOption(id, text, correct))
	}
	return out, rows.Err()
}

func (r *QuestionRepo) loadTags(ctx context.Context, ids []any) (map[string][]string, error) {
	b := r.s.stmt()
	sel := b.Select("question_id", "tag").
		From(b.Table(QuestionTagsTable.Name)).
		Where(entsql.In("question_id", ids...)).
		OrderBy("question_id", "tag")

	rows, err := queryB(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string, len(ids))
	for rows.Next() {
		var qid, tag string
		if err := rows.Scan(&qid, &tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out[qid] = append(out[qid], tag)
	}
	return out, rows.Err()
}

func toAny[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func uniq(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := xs[:0:0]
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}
