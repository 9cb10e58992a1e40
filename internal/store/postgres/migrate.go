package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/foliohq/folio/internal/store/postgres/migrations"
)

// ApplyMigrations applies any pending schema migrations using the embedded
// SQL files. Runs over a short-lived database/sql connection derived from
// the pool's config; the pgxpool itself stays untouched.
func (s *Store) ApplyMigrations() error {
	db := stdlib.OpenDB(*s.pool.Config().ConnConfig)
	defer func() {
		_ = db.Close()
	}()

	if err := applyMigrations(db); err != nil {
		return fmt.Errorf("postgres.Store.ApplyMigrations: %w", err)
	}

	return nil
}

func applyMigrations(db *sql.DB) error {
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return err
	}

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
