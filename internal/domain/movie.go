package domain

import "fmt"

// Movie represents a catalog entry.
type Movie struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
}

func (m Movie) String() string {
	return fmt.Sprintf("(%d), title: %s", m.ID, m.Title)
}
