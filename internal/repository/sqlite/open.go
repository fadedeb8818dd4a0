package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/repository"
	"github.com/Clark-Hu/movielib/internal/store"
)

// Open opens dsn, optionally applies the schema, and returns the handle with a
// Repository on top of it. The caller closes the handle.
func Open(ctx context.Context, dsn string, migrate bool, logger *zap.Logger) (*sqlx.DB, *repository.Repository, error) {
	db, err := store.OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if migrate {
		if err := store.MigrateSQLite(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return db, New(db), nil
}
