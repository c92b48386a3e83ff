package quiz

import (
	"context"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/question"
)

// GradeResult is the outcome of a quiz submission. It reports only whether
// each answer was right, never which option was.
type GradeResult struct {
	RoadmapItemID string         `json:"roadmapItemId"`
	Total         int            `json:"total"`
	Correct       int            `json:"correct"`
	Score         int            `json:"score"`
	Passed        bool           `json:"passed"`
	Results       []AnswerResult `json:"results"`
}

// AnswerResult is the verdict for one submitted answer.
type AnswerResult struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
}

// Submit grades answers (question id -> chosen option id) for a theory item.
// Every question must belong to the item's pool.
func (e *Engine) Submit(ctx context.Context, roadmapID, itemID string, answers map[string]string) (*GradeResult, error) {
	item, err := e.resolveItem(ctx, roadmapID, itemID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, &question.ValidationError{Field: "answers", Message: "at least one answer is required"}
	}

	_, topic := poolTags(item)

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	res := &GradeResult{
		RoadmapItemID: item.ID,
		Total:         len(ids),
		Results:       make([]AnswerResult, 0, len(ids)),
	}
	for _, id := range ids {
		q, err := e.questions.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find question %s: %w", id, err)
		}
		if q == nil || q.Difficulty() != item.Difficulty || !q.HasTag(topic) {
			return nil, errQuestionNotFound
		}

		correct := false
		if opt, ok := q.CorrectOption(); ok {
			correct = opt.ID() == answers[id]
		}
		if correct {
			res.Correct++
		}
		res.Results = append(res.Results, AnswerResult{QuestionID: id, Correct: correct})
	}

	res.Score = int(math.Round(float64(res.Correct) * 100 / float64(res.Total)))
	res.Passed = res.Score >= e.cfg.PassThreshold

	e.log.Info("quiz graded",
		zap.String("roadmap_item", item.ID),
		zap.Int("score", res.Score),
		zap.Bool("passed", res.Passed))

	return res, nil
}
