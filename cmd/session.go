package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/skillcoach/internal/practice"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage practice sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Open a session and print its first question",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		skill, _ := cmd.Flags().GetString("skill")
		id, _ := cmd.Flags().GetString("id")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.service.StartSession(cmd.Context(), practice.StartRequest{
			SessionID: id,
			StudentID: student,
			SkillID:   skill,
		})
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), startView{
			Session:         newSessionView(res.Session),
			Mastery:         newMasteryView(res.Mastery),
			Question:        newQuestionView(res.Question),
			SelectionReason: string(res.Reason),
			Resumed:         res.Resumed,
		})
	},
}

func init() {
	sessionStartCmd.Flags().String("student", "", "Student id")
	sessionStartCmd.Flags().String("skill", "", "Skill id")
	sessionStartCmd.Flags().String("id", "", "Session id (generated when empty; an existing id resumes it)")
	sessionStartCmd.MarkFlagRequired("student")
	sessionStartCmd.MarkFlagRequired("skill")

	sessionCmd.AddCommand(sessionStartCmd)
}
