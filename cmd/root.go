package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillcoach",
	Short: "Adaptive practice engine",
	Long: "skillcoach checks answers, tracks per-skill mastery, steers sessions through\n" +
		"warmup, core, challenge and recovery phases, and picks the next question.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLCOACH_DB env var)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: dev, prod, warn or off (overrides SKILLCOACH_LOG_MODE)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional .env file to load")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(attemptCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(versionCmd)
}
