package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"travelpoints/internal/platform/postgres"
	"travelpoints/internal/travellog/models"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/platform/sentinel"
	"travelpoints/pkg/platform/tx"
)

// PostgresStore reads and writes user_countries and user_cities.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// AddCountry inserts the visit. A duplicate yields sentinel.ErrAlreadyUsed and
// a missing user or country sentinel.ErrNotFound.
func (s *PostgresStore) AddCountry(ctx context.Context, v models.VisitedCountry) (*models.VisitedCountry, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO user_countries (user_id, country_code, visited_at)
		VALUES ($1, $2, $3)
		RETURNING user_id, country_code, visited_at, created_at`,
		uuid.UUID(v.UserID), v.CountryCode, dateArg(v.VisitedAt))
	out, err := scanCountry(row)
	if err != nil {
		return nil, translateInsert(err, "insert visited country")
	}
	return &out, nil
}

func (s *PostgresStore) FindCountry(ctx context.Context, userID id.UserID, code string) (*models.VisitedCountry, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT user_id, country_code, visited_at, created_at
		FROM user_countries
		WHERE user_id = $1 AND country_code = $2`, uuid.UUID(userID), code)
	v, err := scanCountry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find visited country: %w", err)
	}
	return &v, nil
}

// RemoveCountry deletes the user's visits to the country's cities and then
// the country visit, in one transaction.
func (s *PostgresStore) RemoveCountry(ctx context.Context, userID id.UserID, code string) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		conn := tx.Conn(ctx, s.db)
		if _, err := conn.ExecContext(ctx, `
			DELETE FROM user_cities uc
			USING cities c
			WHERE uc.city_id = c.id AND uc.user_id = $1 AND c.country_code = $2`,
			uuid.UUID(userID), code); err != nil {
			return fmt.Errorf("delete visited cities: %w", err)
		}
		res, err := conn.ExecContext(ctx,
			`DELETE FROM user_countries WHERE user_id = $1 AND country_code = $2`,
			uuid.UUID(userID), code)
		if err != nil {
			return fmt.Errorf("delete visited country: %w", err)
		}
		return requireAffected(res)
	})
}

func (s *PostgresStore) ListCountries(ctx context.Context, userID id.UserID) ([]models.VisitedCountry, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT user_id, country_code, visited_at, created_at
		FROM user_countries
		WHERE user_id = $1
		ORDER BY created_at, country_code`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list visited countries: %w", err)
	}
	defer rows.Close()

	out := make([]models.VisitedCountry, 0)
	for rows.Next() {
		v, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visited country: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visited countries: %w", err)
	}
	return out, nil
}

// AddCity inserts the visit. CountryCode on the result comes from the cities
// table, not from v.
func (s *PostgresStore) AddCity(ctx context.Context, v models.VisitedCity) (*models.VisitedCity, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, `
		WITH inserted AS (
			INSERT INTO user_cities (user_id, city_id, visited_at)
			VALUES ($1, $2, $3)
			RETURNING user_id, city_id, visited_at, created_at
		)
		SELECT i.user_id, i.city_id, c.country_code, i.visited_at, i.created_at
		FROM inserted i
		JOIN cities c ON c.id = i.city_id`,
		uuid.UUID(v.UserID), uuid.UUID(v.CityID), dateArg(v.VisitedAt))
	out, err := scanCity(row)
	if err != nil {
		return nil, translateInsert(err, "insert visited city")
	}
	return &out, nil
}

func (s *PostgresStore) RemoveCity(ctx context.Context, userID id.UserID, cityID id.CityID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM user_cities WHERE user_id = $1 AND city_id = $2`,
		uuid.UUID(userID), uuid.UUID(cityID))
	if err != nil {
		return fmt.Errorf("delete visited city: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) ListCities(ctx context.Context, userID id.UserID) ([]models.VisitedCity, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT uc.user_id, uc.city_id, c.country_code, uc.visited_at, uc.created_at
		FROM user_cities uc
		JOIN cities c ON c.id = uc.city_id
		WHERE uc.user_id = $1
		ORDER BY uc.created_at, uc.city_id`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list visited cities: %w", err)
	}
	defer rows.Close()

	out := make([]models.VisitedCity, 0)
	for rows.Next() {
		v, err := scanCity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visited city: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visited cities: %w", err)
	}
	return out, nil
}

func translateInsert(err error, op string) error {
	switch {
	case postgres.IsUniqueViolation(err, ""):
		return sentinel.ErrAlreadyUsed
	case postgres.IsForeignKeyViolation(err), errors.Is(err, sql.ErrNoRows):
		return sentinel.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func dateArg(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCountry(row scanner) (models.VisitedCountry, error) {
	var (
		v         models.VisitedCountry
		userID    uuid.UUID
		visitedAt sql.NullTime
	)
	if err := row.Scan(&userID, &v.CountryCode, &visitedAt, &v.CreatedAt); err != nil {
		return models.VisitedCountry{}, err
	}
	v.UserID = id.UserID(userID)
	v.VisitedAt = nullDate(visitedAt)
	return v, nil
}

func scanCity(row scanner) (models.VisitedCity, error) {
	var (
		v         models.VisitedCity
		userID    uuid.UUID
		cityID    uuid.UUID
		visitedAt sql.NullTime
	)
	if err := row.Scan(&userID, &cityID, &v.CountryCode, &visitedAt, &v.CreatedAt); err != nil {
		return models.VisitedCity{}, err
	}
	v.UserID = id.UserID(userID)
	v.CityID = id.CityID(cityID)
	v.VisitedAt = nullDate(visitedAt)
	return v, nil
}

func nullDate(t sql.NullTime) *models.Date {
	if !t.Valid {
		return nil
	}
	d := models.NewDate(t.Time)
	return &d
}
