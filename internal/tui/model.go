// Package tui is a terminal client for taking a quiz.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/quiz"
)

// QuizService is the part of the engine the client drives.
type QuizService interface {
	Generate(ctx context.Context, roadmapID, itemID string) (*quiz.QuizDTO, error)
	Submit(ctx context.Context, roadmapID, itemID string, answers map[string]string) (*quiz.GradeResult, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseGrading
	phaseResult
	phaseFailed
)

type quizLoadedMsg struct {
	quiz *quiz.QuizDTO
	err  error
}

type gradedMsg struct {
	result *quiz.GradeResult
	err    error
}

// Model walks the learner through one quiz: load, answer each question,
// submit, show the grade.
type Model struct {
	ctx       context.Context
	svc       QuizService
	roadmapID string
	itemID    string

	phase   phase
	spinner spinner.Model
	quiz    *quiz.QuizDTO
	choices []choice
	current int
	result  *quiz.GradeResult
	err     error
	width   int
}

// New creates the model. Nothing is fetched until Init.
func New(ctx context.Context, svc QuizService, roadmapID, itemID string) Model {
	return Model{
		ctx:       ctx,
		svc:       svc,
		roadmapID: roadmapID,
		itemID:    itemID,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(selectedStyle)),
		width:     72,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		q, err := m.svc.Generate(m.ctx, m.roadmapID, m.itemID)
		return quizLoadedMsg{quiz: q, err: err}
	}
}

func (m Model) submit() tea.Cmd {
	answers := make(map[string]string, len(m.choices))
	for _, c := range m.choices {
		answers[c.question.ID] = c.answer()
	}
	return func() tea.Msg {
		res, err := m.svc.Submit(m.ctx, m.roadmapID, m.itemID, answers)
		return gradedMsg{result: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 100)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.phase != phaseLoading && m.phase != phaseGrading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case quizLoadedMsg:
		if msg.err != nil {
			m.phase, m.err = phaseFailed, msg.err
			return m, nil
		}
		if len(msg.quiz.Questions) == 0 {
			m.phase, m.err = phaseFailed, fmt.Errorf("no questions available for this item")
			return m, nil
		}
		m.quiz = msg.quiz
		m.choices = make([]choice, len(msg.quiz.Questions))
		for i, q := range msg.quiz.Questions {
			m.choices[i] = newChoice(q)
		}
		m.phase = phaseAnswering
		return m, nil

	case gradedMsg:
		if msg.err != nil {
			m.phase, m.err = phaseFailed, msg.err
			return m, nil
		}
		m.phase, m.result = phaseResult, msg.result
		return m, nil
	}

	switch m.phase {
	case phaseAnswering:
		return m.updateAnswering(msg)
	case phaseResult, phaseFailed:
		if key, ok := msg.(tea.KeyPressMsg); ok && (key.String() == "q" || key.String() == "enter" || key.String() == "esc") {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateAnswering(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		if m.current > 0 {
			m.current--
		}
		return m, nil
	case "right", "l", "tab":
		if m.current < len(m.choices)-1 {
			m.current++
		}
		return m, nil
	case "s":
		if m.allAnswered() {
			m.phase = phaseGrading
			return m, tea.Batch(m.spinner.Tick, m.submit())
		}
		return m, nil
	}

	before := m.choices[m.current].answered()
	m.choices[m.current] = m.choices[m.current].Update(msg)
	// Move on after a fresh answer.
	if !before && m.choices[m.current].answered() && m.current < len(m.choices)-1 {
		m.current++
	}
	return m, nil
}

func (m Model) allAnswered() bool {
	for _, c := range m.choices {
		if !c.answered() {
			return false
		}
	}
	return true
}

func (m Model) answeredCount() int {
	n := 0
	for _, c := range m.choices {
		if c.answered() {
			n++
		}
	}
	return n
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m Model) render() string {
	var b strings.Builder
	switch m.phase {
	case phaseLoading:
		fmt.Fprintf(&b, "%s Preparing your quiz...\n", m.spinner.View())

	case phaseGrading:
		fmt.Fprintf(&b, "%s Grading...\n", m.spinner.View())

	case phaseFailed:
		b.WriteString(incorrectStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n" + hintStyle.Render("Press q to quit."))

	case phaseAnswering:
		b.WriteString(titleStyle.Render(m.quiz.Title) + "\n")
		b.WriteString(hintStyle.Render(m.quiz.Difficulty) + "\n\n")
		b.WriteString(progressBar(fmt.Sprintf("Question %d", m.current+1), m.answeredCount(), len(m.choices), m.width))
		b.WriteString("\n\n")
		b.WriteString(cardStyle.Width(m.width).Render(m.choices[m.current].View()))
		b.WriteString("\n")
		hint := "↑↓ move · enter/A-D answer · ←→ switch question"
		if m.allAnswered() {
			hint += " · s submit"
		}
		b.WriteString(hintStyle.Render(hint))

	case phaseResult:
		b.WriteString(m.renderResult())
	}
	return b.String()
}

func (m Model) renderResult() string {
	var b strings.Builder
	r := m.result

	verdict := incorrectStyle.Render("Not passed yet")
	if r.Passed {
		verdict = correctStyle.Render("Passed")
	}
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(m.quiz.Title))
	fmt.Fprintf(&b, "Score: %d%% (%d/%d)  %s\n\n", r.Score, r.Correct, r.Total, verdict)

	texts := make(map[string]string, len(m.quiz.Questions))
	for _, q := range m.quiz.Questions {
		texts[q.ID] = q.Text
	}
	for _, res := range r.Results {
		mark := incorrectStyle.Render("✗")
		if res.Correct {
			mark = correctStyle.Render("✓")
		}
		fmt.Fprintf(&b, " %s %s\n", mark, texts[res.QuestionID])
	}
	b.WriteString("\n" + hintStyle.Render("Press q to quit."))
	return b.String()
}

// Result is the grade once the quiz is submitted, or nil.
func (m Model) Result() *quiz.GradeResult { return m.result }

// Err is the failure that ended the session, if any.
func (m Model) Err() error { return m.err }

// Run takes the quiz interactively and returns the grade.
func Run(ctx context.Context, svc QuizService, roadmapID, itemID string) (*quiz.GradeResult, error) {
	p := tea.NewProgram(New(ctx, svc, roadmapID, itemID), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(Model)
	return m.Result(), m.Err()
}
