package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movielib/internal/domain"
	"github.com/Clark-Hu/movielib/internal/repository"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

const ratingColumns = `id, user_id, movie_id, rating, rated_at`

// List returns every rating row.
func (r *RatingsRepository) List(ctx context.Context) ([]domain.Rating, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM ratings ORDER BY id`, ratingColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

// Get retrieves the rating for a specific user/movie combination.
func (r *RatingsRepository) Get(ctx context.Context, userID, movieID int64) (domain.Rating, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM ratings
        WHERE user_id = $1 AND movie_id = $2
    `, ratingColumns)
	rating, err := scanRating(r.pool.QueryRow(ctx, query, userID, movieID))
	if err != nil {
		return domain.Rating{}, mapError(err)
	}
	return rating, nil
}

// Create inserts a rating. A second rating for the same pair fails with ErrConflict.
func (r *RatingsRepository) Create(ctx context.Context, params repository.RatingCreateParams) (domain.Rating, error) {
	query := fmt.Sprintf(`
        INSERT INTO ratings (user_id, movie_id, rating, rated_at)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, ratingColumns)
	rating, err := scanRating(r.pool.QueryRow(ctx, query, params.UserID, params.MovieID, params.Value, params.RatedAt.UTC()))
	if err != nil {
		return domain.Rating{}, mapError(err)
	}
	return rating, nil
}

// Delete removes a rating by id.
func (r *RatingsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(tag)
}

func scanRating(row pgx.Row) (domain.Rating, error) {
	var rating domain.Rating
	err := row.Scan(&rating.ID, &rating.UserID, &rating.MovieID, &rating.Value, &rating.RatedAt)
	if err != nil {
		return domain.Rating{}, err
	}
	rating.RatedAt = rating.RatedAt.UTC()
	return rating, nil
}
