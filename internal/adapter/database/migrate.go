package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"todoapi/internal/adapter/database/migrations"
)

// RunMigrations applies every pending migration of the pool's dialect.
func RunMigrations(db *DB) error {
	src, err := iofs.New(migrations.FS, string(db.Dialect))
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	m, closeFn, err := newMigrator(db, src)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// newMigrator binds the source to the store. Postgres migrates over its own
// connection, released by closeFn. Sqlite reuses the pool, since an
// in-memory database only exists inside it, and closing that migrator would
// close the pool.
func newMigrator(db *DB, src source.Driver) (*migrate.Migrate, func(), error) {
	if db.Dialect == DialectPostgres {
		m, err := migrate.NewWithSourceInstance("iofs", src, pgx5URL(db.dsn))
		if err != nil {
			return nil, nil, err
		}

		return m, func() { m.Close() }, nil
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return nil, nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, string(db.Dialect), driver)
	if err != nil {
		return nil, nil, err
	}

	return m, func() {}, nil
}

// pgx5URL rewrites a postgres:// URL to the scheme registered by the
// golang-migrate pgx/v5 driver.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}

	return dsn
}
