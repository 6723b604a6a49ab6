package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillcoach/internal/catalog"
)

var importCmd = &cobra.Command{
	Use:   "import <catalog-file>",
	Short: "Import a YAML or JSON question catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		n, err := catalog.ImportFile(cmd.Context(), rt.store, args[0])
		if err != nil {
			return err
		}
		rt.log.Info("catalog imported", "file", args[0], "questions", n)
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions from %s\n", n, args[0])
		return nil
	},
}
