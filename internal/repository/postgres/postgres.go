// Package postgres implements the repository contracts on a pgx pool.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movielib/internal/repository"
	"github.com/Clark-Hu/movielib/internal/store"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *repository.Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *repository.Repository {
	return &repository.Repository{
		Movies:      &MoviesRepository{pool: pool},
		Users:       &UsersRepository{pool: pool},
		Occupations: &OccupationsRepository{pool: pool},
		Ratings:     &RatingsRepository{pool: pool},
	}
}

// mapError converts driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return errors.Join(repository.ErrConflict, err)
		case foreignKeyViolation:
			return errors.Join(repository.ErrReferenced, err)
		}
	}
	return err
}

func requireAffected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
