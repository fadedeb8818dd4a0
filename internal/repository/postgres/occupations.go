package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movielib/internal/domain"
)

// OccupationsRepository provides persistence helpers for occupations.
type OccupationsRepository struct {
	pool *pgxpool.Pool
}

func (r *OccupationsRepository) List(ctx context.Context) ([]domain.Occupation, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM occupations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupations := make([]domain.Occupation, 0)
	for rows.Next() {
		occ, err := scanOccupation(rows)
		if err != nil {
			return nil, err
		}
		occupations = append(occupations, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return occupations, nil
}

func (r *OccupationsRepository) GetByID(ctx context.Context, id int64) (domain.Occupation, error) {
	occ, err := scanOccupation(r.pool.QueryRow(ctx, `SELECT id, name FROM occupations WHERE id = $1`, id))
	if err != nil {
		return domain.Occupation{}, mapError(err)
	}
	return occ, nil
}

func (r *OccupationsRepository) GetByName(ctx context.Context, name string) (domain.Occupation, error) {
	occ, err := scanOccupation(r.pool.QueryRow(ctx, `SELECT id, name FROM occupations WHERE name = $1`, name))
	if err != nil {
		return domain.Occupation{}, mapError(err)
	}
	return occ, nil
}

func (r *OccupationsRepository) Create(ctx context.Context, name string) (domain.Occupation, error) {
	occ, err := scanOccupation(r.pool.QueryRow(ctx, `INSERT INTO occupations (name) VALUES ($1) RETURNING id, name`, name))
	if err != nil {
		return domain.Occupation{}, mapError(err)
	}
	return occ, nil
}

// Delete fails with ErrReferenced while a user still holds the occupation.
func (r *OccupationsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM occupations WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(tag)
}

func scanOccupation(row pgx.Row) (domain.Occupation, error) {
	var occ domain.Occupation
	if err := row.Scan(&occ.ID, &occ.Name); err != nil {
		return domain.Occupation{}, err
	}
	return occ, nil
}
