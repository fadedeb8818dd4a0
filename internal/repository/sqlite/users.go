package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Clark-Hu/movielib/internal/domain"
	"github.com/Clark-Hu/movielib/internal/repository"
)

// UsersRepository provides persistence helpers for users.
type UsersRepository struct {
	db *sqlx.DB
}

const userColumns = `id, age, gender, zip_code, occupation_id`

func (r *UsersRepository) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UsersRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return domain.User{}, mapError(err)
	}
	return user, nil
}

func (r *UsersRepository) AnyWithOccupation(ctx context.Context, occupationID int64) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE occupation_id = ?)`
	if err := r.db.GetContext(ctx, &exists, query, occupationID); err != nil {
		return false, fmt.Errorf("check occupation references: %w", err)
	}
	return exists, nil
}

func (r *UsersRepository) Create(ctx context.Context, params repository.UserCreateParams) (domain.User, error) {
	var user domain.User
	const query = `
        INSERT INTO users (age, gender, zip_code, occupation_id)
        VALUES (?, ?, ?, ?)
        RETURNING ` + userColumns
	err := r.db.GetContext(ctx, &user, query, params.Age, params.Gender, params.ZipCode, params.OccupationID)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return user, nil
}

func (r *UsersRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(res)
}
