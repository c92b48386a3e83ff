package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/question"
)

func TestSubmit_Grades(t *testing.T) {
	h := newHarness()
	h.questions.seed(4, "react-hooks", question.DifficultyBeginner)
	ids := []string{
		"react-hooks-beginner-00",
		"react-hooks-beginner-01",
		"react-hooks-beginner-02",
		"react-hooks-beginner-03",
	}

	// Option o0 is the correct one for every seeded question.
	answers := map[string]string{
		ids[0]: ids[0] + "-o0",
		ids[1]: ids[1] + "-o0",
		ids[2]: ids[2] + "-o0",
		ids[3]: ids[3] + "-o2",
	}

	res, err := h.engine().Submit(context.Background(), "rm-1", "hooks", answers)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 3, res.Correct)
	assert.Equal(t, 75, res.Score)
	assert.True(t, res.Passed)
	require.Len(t, res.Results, 4)
	assert.Equal(t, ids[0], res.Results[0].QuestionID)
	assert.False(t, res.Results[3].Correct)
	assert.Zero(t, h.count("questions.SaveMany"))
}

func TestSubmit_FailsBelowThreshold(t *testing.T) {
	h := newHarness()
	h.questions.seed(2, "react-hooks", question.DifficultyBeginner)

	res, err := h.engine().Submit(context.Background(), "rm-1", "hooks", map[string]string{
		"react-hooks-beginner-00": "react-hooks-beginner-00-o0",
		"react-hooks-beginner-01": "not-an-option",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Score)
	assert.False(t, res.Passed)
}

func TestSubmit_Errors(t *testing.T) {
	h := newHarness()
	h.questions.seed(1, "react-hooks", question.DifficultyBeginner)
	h.questions.seed(1, "css-layout", question.DifficultyBeginner)
	e := h.engine()
	ctx := context.Background()

	_, err := e.Submit(ctx, "rm-1", "hooks", nil)
	var verr *question.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = e.Submit(ctx, "rm-1", "hooks", map[string]string{"nope": "x"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Question not found", nf.Message)

	// Questions from another pool are not gradable against this item.
	_, err = e.Submit(ctx, "rm-1", "hooks", map[string]string{"css-layout-beginner-00": "x"})
	assert.ErrorAs(t, err, &nf)

	_, err = e.Submit(ctx, "rm-1", "portfolio", map[string]string{"x": "y"})
	var invalid *InvalidOperationError
	assert.ErrorAs(t, err, &invalid)
}
