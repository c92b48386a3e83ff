package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/quiz"
	"github.com/abhisek/skillpath/internal/tui"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate, take and grade quizzes",
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a quiz for a roadmap item and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		engine, closeEngine, err := buildEngine(cmd.Context(), e)
		if err != nil {
			return err
		}
		defer closeEngine()

		roadmapID, itemID := quizTarget(cmd)
		q, err := engine.Generate(quizContext(cmd), roadmapID, itemID)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(w, q)
		}
		printQuiz(w, q)
		return nil
	},
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Grade answers for a roadmap item",
	Example: `  skillpath quiz submit --roadmap rm-1 --item it-2 \
    --answer q1=q1-opt-2 --answer q2=q2-opt-1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		engine, closeEngine, err := buildEngine(cmd.Context(), e)
		if err != nil {
			return err
		}
		defer closeEngine()

		answers, _ := cmd.Flags().GetStringToString("answer")
		roadmapID, itemID := quizTarget(cmd)
		res, err := engine.Submit(quizContext(cmd), roadmapID, itemID, answers)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(w, res)
		}
		printGrade(w, res)
		return nil
	},
}

var quizTakeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take a quiz interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		engine, closeEngine, err := buildEngine(cmd.Context(), e)
		if err != nil {
			return err
		}
		defer closeEngine()

		roadmapID, itemID := quizTarget(cmd)
		res, err := tui.Run(quizContext(cmd), engine, roadmapID, itemID)
		if err != nil {
			return err
		}
		if res != nil {
			printGrade(w, res)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{quizGenerateCmd, quizSubmitCmd, quizTakeCmd} {
		c.Flags().String("roadmap", "", "Roadmap ID (required)")
		c.Flags().String("item", "", "Roadmap item ID (required)")
		c.Flags().String("user", "", "Act as this user; other users' roadmaps are hidden")
		_ = c.MarkFlagRequired("roadmap")
		_ = c.MarkFlagRequired("item")
		quizCmd.AddCommand(c)
	}
	quizGenerateCmd.Flags().Bool("json", false, "Print the quiz as JSON")
	quizSubmitCmd.Flags().Bool("json", false, "Print the grade as JSON")
	quizSubmitCmd.Flags().StringToString("answer", nil, "Answer as questionID=optionID (repeatable)")
}

func quizTarget(cmd *cobra.Command) (roadmapID, itemID string) {
	roadmapID, _ = cmd.Flags().GetString("roadmap")
	itemID, _ = cmd.Flags().GetString("item")
	return roadmapID, itemID
}

func quizContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		ctx = quiz.WithUser(ctx, user)
	}
	return ctx
}

func printQuiz(w io.Writer, q *quiz.QuizDTO) {
	lipgloss.Fprintln(w, headerStyle.Render(q.Title), dimStyle.Render("("+q.Difficulty+")"))
	if len(q.Questions) == 0 {
		lipgloss.Fprintln(w, dimStyle.Render("No questions available for this topic yet."))
		return
	}
	for i, qq := range q.Questions {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d. %s\n", i+1, qq.Text)
		lipgloss.Fprintln(w, dimStyle.Render("   id: "+qq.ID))
		for j, o := range qq.Options {
			lipgloss.Fprintf(w, "   %c) %s %s\n", 'A'+j, o.Text, dimStyle.Render("["+o.ID+"]"))
		}
	}
}

func printGrade(w io.Writer, res *quiz.GradeResult) {
	verdict := failStyle.Render("not passed")
	if res.Passed {
		verdict = okStyle.Render("passed")
	}
	lipgloss.Fprintf(w, "Score: %d%% (%d/%d) %s\n", res.Score, res.Correct, res.Total, verdict)

	var wrong []string
	for _, r := range res.Results {
		if !r.Correct {
			wrong = append(wrong, r.QuestionID)
		}
	}
	if len(wrong) > 0 {
		lipgloss.Fprintln(w, dimStyle.Render("Missed: "+strings.Join(wrong, ", ")))
	}
}
