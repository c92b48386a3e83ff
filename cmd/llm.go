package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.Events().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Fprintln(w, "No LLM events found.")
			return nil
		}

		t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
		for _, ev := range events {
			t.Row(
				strconv.FormatInt(ev.ID, 10),
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Purpose,
				truncate(ev.Model, 28),
				strconv.Itoa(ev.InputTokens),
				strconv.Itoa(ev.OutputTokens),
				strconv.FormatInt(ev.LatencyMs, 10),
				mark(ev.Success),
			)
		}
		lipgloss.Fprintln(w, t.Render())
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.Events().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return err
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}

		field := func(k, v string) { lipgloss.Fprintf(w, "%s %s\n", dimStyle.Render(fmt.Sprintf("%-9s", k+":")), v) }
		field("ID", strconv.FormatInt(ev.ID, 10))
		field("Time", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
		field("Provider", ev.Provider)
		field("Model", ev.Model)
		field("Purpose", ev.Purpose)
		field("Tokens", fmt.Sprintf("%d in / %d out", ev.InputTokens, ev.OutputTokens))
		field("Latency", fmt.Sprintf("%dms", ev.LatencyMs))
		field("Success", mark(ev.Success))
		if ev.ErrorMessage != "" {
			field("Error", failStyle.Render(ev.ErrorMessage))
		}

		sep := strings.Repeat("─", 60)
		for _, part := range []struct{ title, body string }{
			{"REQUEST", ev.RequestBody},
			{"RESPONSE", ev.ResponseBody},
		} {
			fmt.Fprintln(w)
			lipgloss.Fprintln(w, dimStyle.Render(sep))
			lipgloss.Fprintln(w, headerStyle.Render(part.title))
			lipgloss.Fprintln(w, dimStyle.Render(sep))
			if part.body == "" {
				fmt.Fprintln(w, "(not captured)")
				continue
			}
			fmt.Fprintln(w, part.body)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events := e.store.Events()
		byPurpose, err := events.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return err
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(w, "No LLM usage recorded yet.")
			return nil
		}

		var calls, in, out int
		t := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		for _, u := range byPurpose {
			t.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
				strconv.Itoa(u.InputTokens+u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
			calls += u.Calls
			in += u.InputTokens
			out += u.OutputTokens
		}
		t.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in+out), "")
		lipgloss.Fprintln(w, headerStyle.Render("Usage by purpose"))
		lipgloss.Fprintln(w, t.Render())

		byModel, err := events.LLMUsageByModel(cmd.Context())
		if err != nil {
			return err
		}

		var (
			total   float64
			unknown []string
		)
		ct := newTable("Model", "Calls", "Input", "Output", "Cost")
		for _, u := range byModel {
			cost := "?"
			if p, ok := llm.PriceFor(u.Model); ok {
				c := p.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = formatCost(c)
			} else {
				unknown = append(unknown, u.Model)
			}
			ct.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), cost)
		}
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		ct.Row(label, "", "", "", formatCost(total))

		fmt.Fprintln(w)
		lipgloss.Fprintln(w, headerStyle.Render("Estimated cost (USD)"))
		lipgloss.Fprintln(w, ct.Render())
		if len(unknown) > 0 {
			lipgloss.Fprintln(w, dimStyle.Render("Pricing unavailable for: "+strings.Join(unknown, ", ")))
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. quiz-question-gen)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
