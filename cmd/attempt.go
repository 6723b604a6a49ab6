package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillcoach/internal/practice"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt",
	Short: "Submit one answer and print the result as JSON",
	Example: `  skillcoach attempt --session s1 --student ana --skill subtraction \
    --question sub-1 --answer '{"selected": 0}' --ms 4200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		sessionID, _ := flags.GetString("session")
		student, _ := flags.GetString("student")
		skill, _ := flags.GetString("skill")
		questionID, _ := flags.GetString("question")
		raw, _ := flags.GetString("answer")
		ms, _ := flags.GetInt("ms")
		hint, _ := flags.GetBool("hint")

		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("--answer must be JSON (quote plain text, e.g. '\"54\"')")
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.service.ProcessAttempt(cmd.Context(), practice.AttemptRequest{
			SessionID:  sessionID,
			StudentID:  student,
			SkillID:    skill,
			QuestionID: questionID,
			Answer:     json.RawMessage(raw),
			ResponseMs: ms,
			HintUsed:   hint,
		})
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), newAttemptView(res))
	},
}

func init() {
	f := attemptCmd.Flags()
	f.String("session", "", "Session id (created on first use)")
	f.String("student", "", "Student id")
	f.String("skill", "", "Skill id")
	f.String("question", "", "Question id")
	f.String("answer", "null", "Answer payload as JSON")
	f.Int("ms", 0, "Response time in milliseconds (0 = not recorded)")
	f.Bool("hint", false, "A hint was used")
	for _, name := range []string{"session", "student", "skill", "question"} {
		attemptCmd.MarkFlagRequired(name)
	}
}
