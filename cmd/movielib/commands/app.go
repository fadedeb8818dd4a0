package commands

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/config"
	httpserver "github.com/Clark-Hu/movielib/internal/http"
	"github.com/Clark-Hu/movielib/internal/logging"
	"github.com/Clark-Hu/movielib/internal/repository"
	"github.com/Clark-Hu/movielib/internal/repository/postgres"
	"github.com/Clark-Hu/movielib/internal/repository/sqlite"
	"github.com/Clark-Hu/movielib/internal/store"
)

// app is the wiring shared by every command: configuration, logger, store and
// the repository on top of it.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	repo    *repository.Repository
	health  func(ctx context.Context) error
	stats   func() httpserver.ConnStats
	closers []func()
}

// openApp loads configuration and connects to the configured store. The
// schema is applied when DB_AUTO_MIGRATE is set or migrate is true.
func openApp(ctx context.Context, migrate bool) (*app, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if plain {
		cfg.PlainMenus = true
	}

	logger, syncLogs, err := logging.New(logging.OptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []func(){syncLogs}}

	migrate = migrate || cfg.DBAutoMigrate
	dbCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.DBConnTimeoutSecs)*time.Second)
	defer cancel()

	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, repo, err := sqlite.Open(dbCtx, cfg.DBURL, migrate, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.repo = repo
		a.health = db.PingContext
		a.stats = func() httpserver.ConnStats { return sqlStats(db.Stats()) }
		a.closers = append(a.closers, func() { _ = db.Close() })
	default:
		st, err := store.New(dbCtx, cfg.DBURL, store.Options{
			MaxConns:               int32(cfg.DBMaxConns),
			MinConns:               int32(cfg.DBMinConns),
			MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
			MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
			ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
			StatementCacheCapacity: cfg.DBStatementCache,
			Logger:                 logger,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, st.Close)
		if migrate {
			if err := st.Migrate(dbCtx); err != nil {
				a.Close()
				return nil, err
			}
		}
		a.repo = postgres.New(st)
		a.health = st.HealthCheck
		a.stats = func() httpserver.ConnStats { return poolStats(st) }
	}

	logger.Info("movielib: store ready", zap.String("driver", cfg.DBDriver), zap.Bool("migrated", migrate))
	return a, nil
}

func sqlStats(s sql.DBStats) httpserver.ConnStats {
	return httpserver.ConnStats{
		Open:    s.OpenConnections,
		InUse:   s.InUse,
		Idle:    s.Idle,
		MaxOpen: s.MaxOpenConnections,
	}
}

func poolStats(st *store.Store) httpserver.ConnStats {
	s := st.Stats()
	if s == nil {
		return httpserver.ConnStats{}
	}
	return httpserver.ConnStats{
		Open:    int(s.TotalConns()),
		InUse:   int(s.AcquiredConns()),
		Idle:    int(s.IdleConns()),
		MaxOpen: int(s.MaxConns()),
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
