package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/movielib/internal/console"
	"github.com/Clark-Hu/movielib/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import movie titles from a CSV file",
	Long: `Import movies from a CSV file whose header has a title column, such as
the MovieLens movies.csv (movieId,title,genres). Blank titles and titles
already in the catalog are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		a, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		ui := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), false, a.logger)
		result, err := service.NewFileService(a.repo, ui, a.logger).ImportMoviesFrom(cmd.Context(), f)
		if err != nil {
			return err
		}
		ui.Printer.Success("Imported %d movies, skipped %d", result.Imported, result.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
