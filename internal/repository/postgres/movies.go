package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movielib/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `id, title`

// List returns every movie row.
func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY id`, movieColumns)
	return r.queryMovies(ctx, query)
}

// Search matches title by case-insensitive containment. strpos keeps % and _
// literal where ILIKE would treat them as wildcards.
func (r *MoviesRepository) Search(ctx context.Context, text string) ([]domain.Movie, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM movies
        WHERE strpos(lower(title), lower($1)) > 0
        ORDER BY id
    `, movieColumns)
	return r.queryMovies(ctx, query, text)
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Movie{}, mapError(err)
	}
	return movie, nil
}

// GetByTitle fetches the first movie with exactly this title.
func (r *MoviesRepository) GetByTitle(ctx context.Context, title string) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE title = $1 ORDER BY id LIMIT 1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, title))
	if err != nil {
		return domain.Movie{}, mapError(err)
	}
	return movie, nil
}

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, title string) (domain.Movie, error) {
	query := fmt.Sprintf(`INSERT INTO movies (title) VALUES ($1) RETURNING %s`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, title))
	if err != nil {
		return domain.Movie{}, mapError(err)
	}
	return movie, nil
}

// Delete removes a movie; its ratings cascade.
func (r *MoviesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(tag)
}

func (r *MoviesRepository) queryMovies(ctx context.Context, query string, args ...interface{}) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	if err := row.Scan(&movie.ID, &movie.Title); err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}
