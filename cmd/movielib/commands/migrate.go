package commands

import (
	"github.com/spf13/cobra"

	"github.com/Clark-Hu/movielib/internal/console"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the catalog tables if they do not exist",
	Long: `Apply the embedded schema to the configured store. The schema is
idempotent, so running it against an existing catalog is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		console.NewPrinter(cmd.OutOrStdout()).Success("Schema is up to date (%s)", a.cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
