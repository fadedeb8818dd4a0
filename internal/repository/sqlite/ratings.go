package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Clark-Hu/movielib/internal/domain"
	"github.com/Clark-Hu/movielib/internal/repository"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	db *sqlx.DB
}

const ratingColumns = `id, user_id, movie_id, rating, rated_at`

type ratingRow struct {
	ID      int64     `db:"id"`
	UserID  int64     `db:"user_id"`
	MovieID int64     `db:"movie_id"`
	Value   int       `db:"rating"`
	RatedAt timestamp `db:"rated_at"`
}

func (row ratingRow) toDomain() domain.Rating {
	return domain.Rating{
		ID:      row.ID,
		UserID:  row.UserID,
		MovieID: row.MovieID,
		Value:   row.Value,
		RatedAt: row.RatedAt.Time,
	}
}

func (r *RatingsRepository) List(ctx context.Context) ([]domain.Rating, error) {
	var rows []ratingRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+ratingColumns+` FROM ratings ORDER BY id`); err != nil {
		return nil, err
	}
	ratings := make([]domain.Rating, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, row.toDomain())
	}
	return ratings, nil
}

func (r *RatingsRepository) Get(ctx context.Context, userID, movieID int64) (domain.Rating, error) {
	var row ratingRow
	const query = `SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = ? AND movie_id = ?`
	if err := r.db.GetContext(ctx, &row, query, userID, movieID); err != nil {
		return domain.Rating{}, mapError(err)
	}
	return row.toDomain(), nil
}

// Create stores rated_at as RFC 3339 text in UTC.
func (r *RatingsRepository) Create(ctx context.Context, params repository.RatingCreateParams) (domain.Rating, error) {
	var row ratingRow
	const query = `
        INSERT INTO ratings (user_id, movie_id, rating, rated_at)
        VALUES (?, ?, ?, ?)
        RETURNING ` + ratingColumns
	ratedAt := params.RatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z07:00")
	err := r.db.GetContext(ctx, &row, query, params.UserID, params.MovieID, params.Value, ratedAt)
	if err != nil {
		return domain.Rating{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *RatingsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ratings WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(res)
}
