package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Clark-Hu/movielib/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	db *sqlx.DB
}

func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0)
	if err := r.db.SelectContext(ctx, &movies, `SELECT id, title FROM movies ORDER BY id`); err != nil {
		return nil, err
	}
	return movies, nil
}

// Search uses instr so % and _ in text are not wildcards.
func (r *MoviesRepository) Search(ctx context.Context, text string) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0)
	const query = `SELECT id, title FROM movies WHERE instr(unicode_lower(title), unicode_lower(?)) > 0 ORDER BY id`
	if err := r.db.SelectContext(ctx, &movies, query, text); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	var movie domain.Movie
	if err := r.db.GetContext(ctx, &movie, `SELECT id, title FROM movies WHERE id = ?`, id); err != nil {
		return domain.Movie{}, mapError(err)
	}
	return movie, nil
}

func (r *MoviesRepository) GetByTitle(ctx context.Context, title string) (domain.Movie, error) {
	var movie domain.Movie
	const query = `SELECT id, title FROM movies WHERE title = ? ORDER BY id LIMIT 1`
	if err := r.db.GetContext(ctx, &movie, query, title); err != nil {
		return domain.Movie{}, mapError(err)
	}
	return movie, nil
}

func (r *MoviesRepository) Create(ctx context.Context, title string) (domain.Movie, error) {
	var movie domain.Movie
	if err := r.db.GetContext(ctx, &movie, `INSERT INTO movies (title) VALUES (?) RETURNING id, title`, title); err != nil {
		return domain.Movie{}, mapError(err)
	}
	return movie, nil
}

func (r *MoviesRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(res)
}
