package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpserver "github.com/Clark-Hu/movielib/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only JSON view of the catalog",
	Long: `Serve GET /healthz, /movies (?q= to search titles), /users,
/occupations and /ratings on PORT until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		pool := a.stats()
		a.logger.Info("movielib: serving",
			zap.String("port", a.cfg.Port),
			zap.Int("pool_open", pool.Open),
			zap.Int("pool_max", pool.MaxOpen),
		)
		server := httpserver.New(a.cfg, a.health, a.stats, a.repo, a.logger)
		err = server.Start(ctx)
		if errors.Is(err, context.Canceled) {
			a.logger.Info("movielib: server stopped")
			return nil
		}
		if err != nil {
			a.logger.Error("movielib: server error", zap.Error(err))
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
