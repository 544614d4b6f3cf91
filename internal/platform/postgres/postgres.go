// Package postgres opens the shared database/sql pool. lib/pq is the default
// driver; pgx's stdlib driver can be selected instead.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"

	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type options struct {
	driver       string
	maxOpenConns int
	pingTimeout  time.Duration
}

type Option func(*options)

// WithDriver selects DriverPQ or DriverPGX. Unknown names fail Open.
func WithDriver(name string) Option {
	return func(o *options) {
		if name != "" {
			o.driver = name
		}
	}
}

func WithMaxOpenConns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxOpenConns = n
		}
	}
}

// Open connects, applies pool limits and pings.
func Open(ctx context.Context, url string, opts ...Option) (*sql.DB, error) {
	o := options{driver: DriverPQ, maxOpenConns: 20, pingTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	if url == "" {
		return nil, errors.New("database URL is empty")
	}
	if o.driver != DriverPQ && o.driver != DriverPGX {
		return nil, fmt.Errorf("unknown database driver %q", o.driver)
	}

	db, err := sql.Open(o.driver, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(o.maxOpenConns)
	db.SetMaxIdleConns(max(o.maxOpenConns/4, 1))
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, o.pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// sqlState extracts the SQLSTATE code and constraint name from either driver's
// error type.
func sqlState(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally on the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	code, name, ok := sqlState(err)
	if !ok || code != uniqueViolation {
		return false
	}
	return constraint == "" || name == constraint
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	code, _, ok := sqlState(err)
	return ok && code == foreignKeyViolation
}
