package domain

import (
	"fmt"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating represents a single user's rating for a movie.
type Rating struct {
	ID      int64     `db:"id" json:"id"`
	UserID  int64     `db:"user_id" json:"userId"`
	MovieID int64     `db:"movie_id" json:"movieId"`
	Value   int       `db:"rating" json:"rating"`
	RatedAt time.Time `db:"rated_at" json:"ratedAt"`
}

func (r Rating) String() string {
	return fmt.Sprintf("(%d), rating: %d, user id: %d, movie id: %d, rating given: %s",
		r.ID, r.Value, r.UserID, r.MovieID, r.RatedAt.UTC().Format(time.DateTime))
}

// ValidRating reports whether value lies in the inclusive 1..5 range.
func ValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}
