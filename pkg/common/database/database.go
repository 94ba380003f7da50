package database

import (
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Connect opens a MySQL pool and applies pending migrations from
// migrationsDir. Pass an empty migrationsDir to skip migrations.
func Connect(dsn, migrationsDir string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mysql")
	}

	if migrationsDir != "" {
		if err := migrateUp(dsn, migrationsDir); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

func migrateUp(dsn, migrationsDir string) error {
	m, err := migrate.New("file://"+migrationsDir, "mysql://"+dsn)
	if err != nil {
		return errors.Wrap(err, "init migrations")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}
