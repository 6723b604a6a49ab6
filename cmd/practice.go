package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillcoach/internal/app"
	"github.com/abhisek/skillcoach/internal/config"
	"github.com/abhisek/skillcoach/internal/logger"
	practicescreen "github.com/abhisek/skillcoach/internal/screens/practice"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start an interactive practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		skill, _ := cmd.Flags().GetString("skill")

		rt, err := openRuntime(cmd, func(cfg *config.Config) {
			// Console logging would draw over the TUI.
			if cfg.LogFile == "" {
				cfg.LogMode = logger.ModeOff
			}
		})
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := app.Run(practicescreen.New(rt.service, student, skill)); err != nil {
			return fmt.Errorf("run practice: %w", err)
		}
		return nil
	},
}

func init() {
	practiceCmd.Flags().String("student", "", "Student id")
	practiceCmd.Flags().String("skill", "", "Skill id")
	practiceCmd.MarkFlagRequired("student")
	practiceCmd.MarkFlagRequired("skill")
}
