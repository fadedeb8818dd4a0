package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsOrderedPerDialect(t *testing.T) {
	for _, dialect := range []Dialect{DialectPostgres, DialectSQLite} {
		migrations, err := Migrations(dialect)
		require.NoError(t, err, dialect)
		require.NotEmpty(t, migrations)
		assert.Equal(t, "0001_init.up.sql", migrations[0].Name)
		assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS ratings")
	}

	_, err := Migrations(Dialect("oracle"))
	assert.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (id INT);\n\nCREATE INDEX i ON a (id);\n")
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (id INT)", stmts[0])
	assert.Equal(t, "CREATE INDEX i ON a (id)", stmts[1])
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", withForeignKeys(":memory:"))
	assert.Equal(t, "file.db?mode=rwc&_pragma=foreign_keys(1)", withForeignKeys("file.db?mode=rwc"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", withForeignKeys("x.db?_pragma=foreign_keys(0)"))
}

func TestOpenSQLiteMigratesIdempotently(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, MigrateSQLite(ctx, db, nil))
	require.NoError(t, MigrateSQLite(ctx, db, nil))

	var fk int
	require.NoError(t, db.GetContext(ctx, &fk, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, fk)

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"))
	assert.Equal(t, []string{"movies", "occupations", "ratings", "users"}, tables)
}

func TestOpenSQLiteUnicodeLower(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var lowered string
	require.NoError(t, db.GetContext(ctx, &lowered, `SELECT unicode_lower(?)`, "LE FABULEUX DESTIN D'AMÉLIE"))
	assert.Equal(t, "le fabuleux destin d'amélie", lowered)

	var null *string
	require.NoError(t, db.GetContext(ctx, &null, `SELECT unicode_lower(NULL)`))
	assert.Nil(t, null)
}
