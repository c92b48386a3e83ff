package quiz

import (
	"github.com/abhisek/skillpath/internal/question"
	"github.com/abhisek/skillpath/internal/roadmap"
)

// QuizDTO is the client-facing quiz. None of its types carry answer
// correctness.
type QuizDTO struct {
	RoadmapItemID string        `json:"roadmapItemId"`
	Title         string        `json:"title"`
	Difficulty    string        `json:"difficulty"`
	Questions     []QuestionDTO `json:"questions"`
}

// QuestionDTO is a quiz question as shown to the learner.
type QuestionDTO struct {
	ID      string      `json:"id"`
	Text    string      `json:"text"`
	Options []OptionDTO `json:"options"`
}

// OptionDTO is an answer choice as shown to the learner.
type OptionDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newQuizDTO(item roadmap.Item, questions []*question.Question) *QuizDTO {
	dto := &QuizDTO{
		RoadmapItemID: item.ID,
		Title:         "Quiz: " + item.Title,
		Difficulty:    item.Difficulty,
		Questions:     make([]QuestionDTO, 0, len(questions)),
	}
	for _, q := range questions {
		opts := q.Options()
		qd := QuestionDTO{
			ID:      q.ID(),
			Text:    q.Text(),
			Options: make([]OptionDTO, 0, len(opts)),
		}
		for _, o := range opts {
			qd.Options = append(qd.Options, OptionDTO{ID: o.ID(), Text: o.Text()})
		}
		dto.Questions = append(dto.Questions, qd)
	}
	return dto
}
