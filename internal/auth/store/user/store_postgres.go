package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"travelpoints/internal/auth/models"
	"travelpoints/internal/platform/postgres"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/platform/sentinel"
	"travelpoints/pkg/platform/tx"
)

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// PostgresStore persists users in the users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, username, email, password_hash, avatar_url, home_country, created_at`

func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.UUID(u.ID), u.Username, u.Email, u.PasswordHash, u.AvatarURL, u.HomeCountry, u.CreatedAt)
	if err != nil {
		return translateWriteError(err, "create user")
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, uuid.UUID(userID))
	return scanUser(row, "find user by id")
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row, "find user by email")
}

func (s *PostgresStore) Update(ctx context.Context, u *models.User) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, avatar_url = $5, home_country = $6
		WHERE id = $1`,
		uuid.UUID(u.ID), u.Username, u.Email, u.PasswordHash, u.AvatarURL, u.HomeCountry)
	if err != nil {
		return translateWriteError(err, "update user")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func translateWriteError(err error, op string) error {
	switch {
	case postgres.IsUniqueViolation(err, emailConstraint):
		return &DuplicateError{Field: FieldEmail}
	case postgres.IsUniqueViolation(err, usernameConstraint):
		return &DuplicateError{Field: FieldUsername}
	case postgres.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: unknown home country: %w", op, sentinel.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func scanUser(row *sql.Row, op string) (*models.User, error) {
	var (
		u           models.User
		userID      uuid.UUID
		avatarURL   sql.NullString
		homeCountry sql.NullString
	)
	err := row.Scan(&userID, &u.Username, &u.Email, &u.PasswordHash, &avatarURL, &homeCountry, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.ID = id.UserID(userID)
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}
	if homeCountry.Valid {
		u.HomeCountry = &homeCountry.String
	}
	return &u, nil
}
