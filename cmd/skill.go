package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillcoach/internal/question"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the imported catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills with question counts per band",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		skills, err := rt.store.Skills(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(skills) == 0 {
			fmt.Fprintln(out, "No skills imported. Run `skillcoach import <file>` first.")
			return nil
		}

		fmt.Fprintf(out, "%-30s  %5s  %6s  %4s  %5s\n", "ID", "Easy", "Medium", "Hard", "Total")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, id := range skills {
			qs, err := rt.store.QuestionsBySkill(ctx, id)
			if err != nil {
				return err
			}
			counts := make(map[question.Band]int)
			for _, q := range qs {
				counts[q.Band]++
			}
			fmt.Fprintf(out, "%-30s  %5d  %6d  %4d  %5d\n", id,
				counts[question.BandEasy], counts[question.BandMedium], counts[question.BandHard], len(qs))
		}
		fmt.Fprintf(out, "\n%d skills\n", len(skills))
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <skill-id>",
	Short: "List a skill's questions in presentation order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		qs, err := rt.store.QuestionsBySkill(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(qs) == 0 {
			return fmt.Errorf("no questions found for skill %q", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-16s  %-6s  %-24s  %s\n", "ID", "Type", "Band", "Remediates", "Prompt")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, q := range qs {
			prompt := q.Prompt
			if len(prompt) > 40 {
				prompt = prompt[:37] + "..."
			}
			fmt.Fprintf(out, "%-16s  %-16s  %-6s  %-24s  %s\n",
				q.ID, q.Type, q.Band, strings.Join(q.RemediationTargets(), ","), prompt)
		}
		return nil
	},
}

func init() {
	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
}
