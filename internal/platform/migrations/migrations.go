// Package migrations applies the embedded schema with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Latest targets the newest embedded migration.
const Latest = -1

// Result reports the schema version before and after a run.
type Result struct {
	From     uint
	To       uint
	NoChange bool
}

// Up migrates to the latest version.
func Up(db *sql.DB) (Result, error) { return Migrate(db, Latest) }

// Down rolls every migration back.
func Down(db *sql.DB) (Result, error) { return Migrate(db, 0) }

// Migrate moves the schema to target:
//   - target < 0 migrates to the latest version
//   - target == 0 rolls back all migrations
//   - target > 0 migrates to that version
func Migrate(db *sql.DB, target int) (Result, error) {
	m, err := newMigrate(db)
	if err != nil {
		return Result{}, err
	}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return Result{}, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return Result{}, fmt.Errorf("database is in a dirty state at version %d", from)
	}

	switch {
	case target < 0:
		err = m.Up()
	case target == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(target))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return Result{From: from, To: from, NoChange: true}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("migrate to %d: %w", target, err)
	}

	to, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Result{From: from, To: 0}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("read migration version: %w", err)
	}
	return Result{From: from, To: to}, nil
}

// Version returns the applied schema version; 0 when nothing is applied.
func Version(db *sql.DB) (uint, bool, error) {
	m, err := newMigrate(db)
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres migrate driver: %w", err)
	}
	src, err := Source()
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// Source exposes the embedded migrations as a golang-migrate source driver.
func Source() (source.Driver, error) {
	sub, err := fs.Sub(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("access migrations directory: %w", err)
	}
	d, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	return d, nil
}
