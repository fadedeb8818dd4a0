package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Clark-Hu/movielib/internal/domain"
)

// OccupationsRepository provides persistence helpers for occupations.
type OccupationsRepository struct {
	db *sqlx.DB
}

func (r *OccupationsRepository) List(ctx context.Context) ([]domain.Occupation, error) {
	occupations := make([]domain.Occupation, 0)
	if err := r.db.SelectContext(ctx, &occupations, `SELECT id, name FROM occupations ORDER BY id`); err != nil {
		return nil, err
	}
	return occupations, nil
}

func (r *OccupationsRepository) GetByID(ctx context.Context, id int64) (domain.Occupation, error) {
	var occ domain.Occupation
	if err := r.db.GetContext(ctx, &occ, `SELECT id, name FROM occupations WHERE id = ?`, id); err != nil {
		return domain.Occupation{}, mapError(err)
	}
	return occ, nil
}

func (r *OccupationsRepository) GetByName(ctx context.Context, name string) (domain.Occupation, error) {
	var occ domain.Occupation
	if err := r.db.GetContext(ctx, &occ, `SELECT id, name FROM occupations WHERE name = ?`, name); err != nil {
		return domain.Occupation{}, mapError(err)
	}
	return occ, nil
}

func (r *OccupationsRepository) Create(ctx context.Context, name string) (domain.Occupation, error) {
	var occ domain.Occupation
	if err := r.db.GetContext(ctx, &occ, `INSERT INTO occupations (name) VALUES (?) RETURNING id, name`, name); err != nil {
		return domain.Occupation{}, mapError(err)
	}
	return occ, nil
}

func (r *OccupationsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM occupations WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(res)
}
