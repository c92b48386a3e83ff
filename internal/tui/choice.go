package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/quiz"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// choice is a single-question option picker. It only knows which option the
// learner picked; grading happens on the server.
type choice struct {
	question quiz.QuestionDTO
	cursor   int
	chosen   int // -1 until answered
}

func newChoice(q quiz.QuestionDTO) choice {
	return choice{question: q, chosen: -1}
}

func (c choice) answered() bool { return c.chosen >= 0 }

// answer returns the chosen option id.
func (c choice) answer() string {
	if !c.answered() {
		return ""
	}
	return c.question.Options[c.chosen].ID
}

func (c choice) Update(msg tea.Msg) choice {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c
	}
	n := len(c.question.Options)

	switch s := key.String(); s {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < n-1 {
			c.cursor++
		}
	case "enter", "space":
		c.chosen = c.cursor
	default:
		// Letter shortcuts pick directly.
		for i := 0; i < n && i < len(optionLabels); i++ {
			if strings.EqualFold(s, optionLabels[i]) {
				c.cursor, c.chosen = i, i
			}
		}
	}
	return c
}

func (c choice) View() string {
	var b strings.Builder
	b.WriteString(questionStyle.Render(c.question.Text))
	b.WriteString("\n\n")

	for i, opt := range c.question.Options {
		prefix := "  "
		if i == c.cursor {
			prefix = "▸ "
		}
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt.Text)

		switch {
		case i == c.chosen:
			b.WriteString(answeredStyle.Render(line + "  ✓"))
		case i == c.cursor:
			b.WriteString(selectedStyle.Render(line))
		default:
			b.WriteString(unselectedStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
