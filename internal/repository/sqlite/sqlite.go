// Package sqlite implements the repository contracts with sqlx on the
// modernc sqlite driver. It backs local single-file catalogs and tests.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Clark-Hu/movielib/internal/repository"
)

// New constructs a Repository on an open sqlite handle.
func New(db *sqlx.DB) *repository.Repository {
	return &repository.Repository{
		Movies:      &MoviesRepository{db: db},
		Users:       &UsersRepository{db: db},
		Occupations: &OccupationsRepository{db: db},
		Ratings:     &RatingsRepository{db: db},
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch code := sqliteErr.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return errors.Join(repository.ErrConflict, err)
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return errors.Join(repository.ErrReferenced, err)
	case code&0xff == sqlite3.SQLITE_CONSTRAINT:
		// Without extended result codes only the message tells them apart.
		msg := sqliteErr.Error()
		if strings.Contains(msg, "UNIQUE constraint failed") {
			return errors.Join(repository.ErrConflict, err)
		}
		if strings.Contains(msg, "FOREIGN KEY constraint failed") {
			return errors.Join(repository.ErrReferenced, err)
		}
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// timestamp scans the values sqlite hands back for a TIMESTAMP column, which
// depend on how the value was written.
type timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.DateTime,
}

func (t *timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case int64:
		t.Time = time.Unix(v, 0).UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *timestamp) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
