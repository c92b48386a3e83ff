package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/roadmap"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Import and inspect learner roadmaps",
}

var roadmapImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import roadmaps from a YAML file, replacing existing ones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		rms, err := roadmap.LoadFile(args[0])
		if err != nil {
			return err
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		repo := e.store.Roadmaps()
		for _, rm := range rms {
			if err := repo.Save(cmd.Context(), rm); err != nil {
				return fmt.Errorf("roadmap %s: %w", rm.ID, err)
			}
			fmt.Fprintf(w, "Imported %s (%d items)\n", rm.ID, len(rm.Items))
		}
		return nil
	},
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a roadmap and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rm, err := e.store.Roadmaps().FindByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if rm == nil {
			return fmt.Errorf("roadmap %s not found", args[0])
		}

		lipgloss.Fprintln(w, headerStyle.Render(rm.TargetRole), dimStyle.Render("user "+rm.UserID))
		t := newTable("#", "ID", "Type", "Topic", "Difficulty", "Title")
		for _, it := range rm.Items {
			typ := string(it.Type)
			if it.Type == roadmap.ItemTheory {
				typ = okStyle.Render(typ)
			}
			t.Row(strconv.Itoa(it.Position+1), it.ID, typ, it.Topic, it.Difficulty, truncate(it.Title, 48))
		}
		lipgloss.Fprintln(w, t.Render())
		return nil
	},
}

func init() {
	roadmapCmd.AddCommand(roadmapImportCmd)
	roadmapCmd.AddCommand(roadmapShowCmd)
}
