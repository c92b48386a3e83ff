package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/quiz"
	"github.com/abhisek/skillpath/internal/store"
)

var questionCmd = &cobra.Command{
	Use:     "question",
	Aliases: []string{"q"},
	Short:   "Inspect and seed the question pool",
}

var questionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pool questions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		tag, _ := cmd.Flags().GetString("tag")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		limit, _ := cmd.Flags().GetInt("limit")

		qs, err := e.store.Questions().List(cmd.Context(), store.ListFilter{
			Tag:        tag,
			Difficulty: difficulty,
			Limit:      limit,
		})
		if err != nil {
			return err
		}
		if len(qs) == 0 {
			fmt.Fprintln(w, "No questions found.")
			return nil
		}

		t := newTable("ID", "Difficulty", "Used", "Tags", "Question")
		for _, q := range qs {
			t.Row(
				truncate(q.ID(), 36),
				q.Difficulty(),
				strconv.Itoa(q.UsageCount()),
				strings.Join(q.Tags(), ","),
				truncate(q.Text(), 60),
			)
		}
		lipgloss.Fprintln(w, t.Render())
		return nil
	},
}

var questionPoolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "Show pool sizes per tag and difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		sizes, err := e.store.Questions().PoolSizes(cmd.Context())
		if err != nil {
			return err
		}
		if len(sizes) == 0 {
			fmt.Fprintln(w, "The question pool is empty.")
			return nil
		}

		low := e.cfg.Quiz.MinPoolSize
		t := newTable("Tag", "Difficulty", "Questions", "")
		for _, p := range sizes {
			status := okStyle.Render("ok")
			if p.Count < low {
				status = failStyle.Render(fmt.Sprintf("low (<%d)", low))
			}
			t.Row(p.Tag, p.Difficulty, strconv.Itoa(p.Count), status)
		}
		lipgloss.Fprintln(w, t.Render())
		return nil
	},
}

var questionSeedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Add hand-written questions from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		qs, err := quiz.LoadSeedFile(args[0], uuid.NewString)
		if err != nil {
			return err
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := quiz.SeedPool(cmd.Context(), e.store.Questions(), qs); err != nil {
			return err
		}
		fmt.Fprintf(w, "Seeded %d questions.\n", len(qs))
		return nil
	},
}

func init() {
	questionListCmd.Flags().StringP("tag", "t", "", "Only questions with this tag")
	questionListCmd.Flags().StringP("difficulty", "d", "", "Only questions at this difficulty")
	questionListCmd.Flags().IntP("limit", "n", 50, "Maximum questions to show")

	questionCmd.AddCommand(questionListCmd)
	questionCmd.AddCommand(questionPoolsCmd)
	questionCmd.AddCommand(questionSeedCmd)
}
