package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"travelpoints/internal/catalogue/models"
	"travelpoints/internal/platform/postgres"
	"travelpoints/internal/points"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/platform/sentinel"
	"travelpoints/pkg/platform/tx"
)

// PostgresStore reads and writes the countries and cities tables. Writes join
// a transaction carried in the context when there is one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const countryColumns = `code, name, region, population, annual_tourists, area_km2`

func (s *PostgresStore) ListCountries(ctx context.Context) ([]models.Country, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+countryColumns+` FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	out := make([]models.Country, 0)
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindCountry(ctx context.Context, code string) (*models.Country, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+countryColumns+` FROM countries WHERE code = $1`, code)
	c, err := scanCountry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find country: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ListCitiesByCountry(ctx context.Context, code string) ([]models.City, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT id, country_code, name, population
		FROM cities
		WHERE country_code = $1
		ORDER BY population DESC, name`, code)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	out := make([]models.City, 0)
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindCity(ctx context.Context, cityID id.CityID) (*models.City, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, country_code, name, population FROM cities WHERE id = $1`, uuid.UUID(cityID))
	c, err := scanCity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find city: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) UpsertCountry(ctx context.Context, c models.Country) error {
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO countries (`+countryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			region = EXCLUDED.region,
			population = EXCLUDED.population,
			annual_tourists = EXCLUDED.annual_tourists,
			area_km2 = EXCLUDED.area_km2`,
		c.Code, c.Name, string(c.Region), c.Population, c.AnnualTourists, c.AreaKm2)
	if err != nil {
		return fmt.Errorf("upsert country: %w", err)
	}
	return nil
}

// UpsertCity keys on (country_code, name); an existing row keeps its ID.
func (s *PostgresStore) UpsertCity(ctx context.Context, c models.City) error {
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO cities (id, country_code, name, population)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (country_code, name) DO UPDATE SET
			population = EXCLUDED.population`,
		uuid.UUID(c.ID), c.CountryCode, c.Name, c.Population)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("upsert city: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCountry(row scanner) (models.Country, error) {
	var (
		c      models.Country
		region string
	)
	if err := row.Scan(&c.Code, &c.Name, &region, &c.Population, &c.AnnualTourists, &c.AreaKm2); err != nil {
		return models.Country{}, err
	}
	c.Region = points.Region(region)
	return c, nil
}

func scanCity(row scanner) (models.City, error) {
	var (
		c      models.City
		cityID uuid.UUID
	)
	if err := row.Scan(&cityID, &c.CountryCode, &c.Name, &c.Population); err != nil {
		return models.City{}, err
	}
	c.ID = id.CityID(cityID)
	return c, nil
}
