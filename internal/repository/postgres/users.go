package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movielib/internal/domain"
	"github.com/Clark-Hu/movielib/internal/repository"
)

// UsersRepository provides persistence helpers for users.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, age, gender, zip_code, occupation_id`

// List returns every user row.
func (r *UsersRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM users ORDER BY id`, userColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID fetches a user by identifier.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return user, nil
}

// AnyWithOccupation reports whether any user references the occupation.
func (r *UsersRepository) AnyWithOccupation(ctx context.Context, occupationID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE occupation_id = $1)`, occupationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check occupation references: %w", err)
	}
	return exists, nil
}

// Create inserts a user row.
func (r *UsersRepository) Create(ctx context.Context, params repository.UserCreateParams) (domain.User, error) {
	query := fmt.Sprintf(`
        INSERT INTO users (age, gender, zip_code, occupation_id)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, params.Age, params.Gender, params.ZipCode, params.OccupationID))
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return user, nil
}

// Delete removes a user; the user's ratings cascade.
func (r *UsersRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(tag)
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Age, &user.Gender, &user.ZipCode, &user.OccupationID)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
