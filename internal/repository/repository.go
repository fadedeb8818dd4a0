package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Clark-Hu/movielib/internal/domain"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict indicates a uniqueness constraint rejected the write.
	ErrConflict = errors.New("repository: conflict")
	// ErrReferenced indicates the row is still referenced by another entity.
	ErrReferenced = errors.New("repository: still referenced")
)

// Movies is the store contract for movie rows.
type Movies interface {
	// List returns every movie ordered by id. There is no pagination.
	List(ctx context.Context) ([]domain.Movie, error)
	// Search returns movies whose title contains text, ignoring case.
	// Wildcard characters in text are matched literally.
	Search(ctx context.Context, text string) ([]domain.Movie, error)
	GetByID(ctx context.Context, id int64) (domain.Movie, error)
	// GetByTitle returns the lowest-id movie with exactly this title.
	GetByTitle(ctx context.Context, title string) (domain.Movie, error)
	Create(ctx context.Context, title string) (domain.Movie, error)
	Delete(ctx context.Context, id int64) error
}

// UserCreateParams bundles the fields required to create a user.
type UserCreateParams struct {
	Age          int    `validate:"gte=0"`
	Gender       string
	ZipCode      string `validate:"required,zipcode" label:"Zip Code"`
	OccupationID int64  `validate:"gt=0" label:"Occupation"`
}

// Users is the store contract for user rows.
type Users interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	// AnyWithOccupation reports whether at least one user holds the occupation.
	AnyWithOccupation(ctx context.Context, occupationID int64) (bool, error)
	Create(ctx context.Context, params UserCreateParams) (domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// Occupations is the store contract for occupation rows.
type Occupations interface {
	List(ctx context.Context) ([]domain.Occupation, error)
	GetByID(ctx context.Context, id int64) (domain.Occupation, error)
	GetByName(ctx context.Context, name string) (domain.Occupation, error)
	Create(ctx context.Context, name string) (domain.Occupation, error)
	Delete(ctx context.Context, id int64) error
}

// RatingCreateParams captures the payload required to insert a rating.
type RatingCreateParams struct {
	UserID  int64 `validate:"gt=0" label:"User Id"`
	MovieID int64 `validate:"gt=0" label:"Movie Id"`
	Value   int   `validate:"rating" label:"Rating"`
	RatedAt time.Time
}

// Ratings is the store contract for rating rows.
type Ratings interface {
	// List returns every rating. The table is large and this is unbounded.
	List(ctx context.Context) ([]domain.Rating, error)
	Get(ctx context.Context, userID, movieID int64) (domain.Rating, error)
	Create(ctx context.Context, params RatingCreateParams) (domain.Rating, error)
	Delete(ctx context.Context, id int64) error
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies      Movies
	Users       Users
	Occupations Occupations
	Ratings     Ratings
}
