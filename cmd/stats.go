package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillcoach/internal/mastery"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a student's per-skill mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		skill, _ := cmd.Flags().GetString("skill")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		states, err := rt.service.SkillStates(cmd.Context(), student)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(states) == 0 {
			fmt.Fprintf(out, "No attempts recorded for %s yet.\n", student)
			return nil
		}

		if skill != "" {
			for _, st := range states {
				if st.SkillID == skill {
					fmt.Fprintf(out, "%s: %s\n", st.SkillID, st.Summary())
					return nil
				}
			}
			return fmt.Errorf("no attempts recorded for %s on skill %q", student, skill)
		}

		fmt.Fprintf(out, "%-28s  %7s  %10s  %-6s  %6s  %9s  %-10s  %s\n",
			"Skill", "Mastery", "Confidence", "Band", "Streak", "Correct", "Status", "Review")
		fmt.Fprintln(out, strings.Repeat("─", 105))
		for _, st := range states {
			fmt.Fprintf(out, "%-28s  %6d%%  %9d%%  %-6s  %6d  %9s  %-10s  %s\n",
				st.SkillID,
				mastery.Percent(st.Mastery),
				mastery.Percent(st.Confidence),
				st.Band,
				st.Streak,
				fmt.Sprintf("%d/%d", st.CorrectTotal, st.AttemptsTotal),
				st.Status,
				st.NextReviewAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(out, "\n%d skills\n", len(states))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("student", "", "Student id")
	statsCmd.Flags().String("skill", "", "Show a one-line summary for this skill only")
	statsCmd.MarkFlagRequired("student")
}
