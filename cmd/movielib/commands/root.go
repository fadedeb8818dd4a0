// Package commands holds the cobra command tree of the movielib binary.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/movielib/internal/console"
)

var (
	// Global flags
	envFile string
	plain   bool
)

var rootCmd = &cobra.Command{
	Use:   "movielib",
	Short: "Manage a catalog of movies, users, occupations and ratings",
	Long: `movielib is a console catalog manager backed by PostgreSQL or SQLite.

Without a subcommand it opens the interactive menus. Configuration is read
from the environment and an optional .env file (DB_DRIVER, DB_URL, LOG_*).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenus(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError renders err once at the process boundary.
func reportError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(w, "interrupted")
		return
	}
	console.NewBoundary(console.NewPrinter(w), nil).Report("movielib", err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", os.Getenv("ENV_FILE"), "Path of a .env file to load (defaults to ./.env when present)")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Use numbered menus instead of the arrow-key menus")
}
