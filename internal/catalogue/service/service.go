package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"travelpoints/internal/catalogue/models"
	"travelpoints/internal/platform/tracing"
	"travelpoints/internal/points"
	id "travelpoints/pkg/domain"
	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/sentinel"
)

// Store is the read side of the catalogue.
type Store interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	FindCountry(ctx context.Context, code string) (*models.Country, error)
	ListCitiesByCountry(ctx context.Context, code string) ([]models.City, error)
	FindCity(ctx context.Context, cityID id.CityID) (*models.City, error)
}

// Service serves reference data and hands immutable snapshots to the
// scoring engine.
type Service struct {
	store         Store
	defaultRegion points.Region
	logger        *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDefaultRegion sets the home region used for users without a home
// country. Europe when unset.
func WithDefaultRegion(region points.Region) Option {
	return func(s *Service) {
		if region != "" {
			s.defaultRegion = region
		}
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		defaultRegion: points.RegionEurope,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCountries returns every country with its baseline as seen from home.
func (s *Service) ListCountries(ctx context.Context, home points.Region) (_ []models.CountryView, err error) {
	ctx, span := tracing.Start(ctx, "catalogue.ListCountries", attribute.String("home_region", string(home)))
	defer func() { tracing.End(span, err) }()

	countries, err := s.store.ListCountries(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load countries")
	}
	snapshot := toPoints(countries)

	out := make([]models.CountryView, 0, len(countries))
	for i, c := range countries {
		out = append(out, models.CountryView{
			Country:        c,
			BaselinePoints: points.Round2(points.Baseline(snapshot[i], home, snapshot)),
		})
	}
	return out, nil
}

// GetCountry returns one country with its cities and personalised baseline.
func (s *Service) GetCountry(ctx context.Context, code string, home points.Region) (_ *models.CountryDetail, err error) {
	ctx, span := tracing.Start(ctx, "catalogue.GetCountry", attribute.String("country_code", code))
	defer func() { tracing.End(span, err) }()

	country, err := s.FindCountry(ctx, code)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := s.citiesOf(ctx, *country)
	if err != nil {
		return nil, err
	}

	return &models.CountryDetail{
		CountryView: models.CountryView{
			Country:        *country,
			BaselinePoints: points.Round2(points.Baseline(country.ToPoints(), home, snapshot)),
		},
		Cities: cities,
	}, nil
}

// ListCities returns a country's cities with their population share.
func (s *Service) ListCities(ctx context.Context, code string) ([]models.CityView, error) {
	country, err := s.FindCountry(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.citiesOf(ctx, *country)
}

// FindCountry normalises code and loads the country.
func (s *Service) FindCountry(ctx context.Context, code string) (*models.Country, error) {
	parsed, err := id.ParseCountryCode(code)
	if err != nil {
		return nil, err
	}
	country, err := s.store.FindCountry(ctx, parsed.String())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "country not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load country")
	}
	return country, nil
}

func (s *Service) FindCity(ctx context.Context, cityID id.CityID) (*models.City, error) {
	city, err := s.store.FindCity(ctx, cityID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "city not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load city")
	}
	return city, nil
}

// Snapshot returns the whole catalogue in engine form. The slice is fresh on
// every call.
func (s *Service) Snapshot(ctx context.Context) (_ []points.Country, err error) {
	ctx, span := tracing.Start(ctx, "catalogue.Snapshot")
	defer func() { tracing.End(span, err) }()

	countries, err := s.store.ListCountries(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load countries")
	}
	span.SetAttributes(attribute.Int("countries", len(countries)))
	return toPoints(countries), nil
}

// HomeRegion resolves a user's home country to its region. An empty or
// unknown home country yields the default region.
func (s *Service) HomeRegion(ctx context.Context, homeCountry string) (points.Region, error) {
	if homeCountry == "" {
		return s.defaultRegion, nil
	}
	country, err := s.store.FindCountry(ctx, homeCountry)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "home country missing from catalogue",
				"home_country", homeCountry,
			)
			return s.defaultRegion, nil
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve home region")
	}
	return country.Region, nil
}

func (s *Service) citiesOf(ctx context.Context, country models.Country) ([]models.CityView, error) {
	cities, err := s.store.ListCitiesByCountry(ctx, country.Code)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load cities")
	}
	out := make([]models.CityView, 0, len(cities))
	for _, c := range cities {
		out = append(out, models.NewCityView(c, country.Population))
	}
	return out, nil
}

func toPoints(countries []models.Country) []points.Country {
	out := make([]points.Country, len(countries))
	for i, c := range countries {
		out[i] = c.ToPoints()
	}
	return out
}
