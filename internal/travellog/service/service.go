package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	catalogue "travelpoints/internal/catalogue/models"
	"travelpoints/internal/platform/events"
	"travelpoints/internal/platform/tracing"
	"travelpoints/internal/points"
	"travelpoints/internal/travellog/metrics"
	"travelpoints/internal/travellog/models"
	id "travelpoints/pkg/domain"
	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/sentinel"
	"travelpoints/pkg/requestcontext"
)

// maxCityLoads bounds concurrent catalogue city lookups while scoring.
const maxCityLoads = 4

type Store interface {
	AddCountry(ctx context.Context, v models.VisitedCountry) (*models.VisitedCountry, error)
	FindCountry(ctx context.Context, userID id.UserID, code string) (*models.VisitedCountry, error)
	RemoveCountry(ctx context.Context, userID id.UserID, code string) error
	ListCountries(ctx context.Context, userID id.UserID) ([]models.VisitedCountry, error)
	AddCity(ctx context.Context, v models.VisitedCity) (*models.VisitedCity, error)
	RemoveCity(ctx context.Context, userID id.UserID, cityID id.CityID) error
	ListCities(ctx context.Context, userID id.UserID) ([]models.VisitedCity, error)
}

// Catalogue supplies reference data. Errors are already domain errors.
type Catalogue interface {
	FindCountry(ctx context.Context, code string) (*catalogue.Country, error)
	FindCity(ctx context.Context, cityID id.CityID) (*catalogue.City, error)
	ListCities(ctx context.Context, code string) ([]catalogue.CityView, error)
	Snapshot(ctx context.Context) ([]points.Country, error)
	HomeRegion(ctx context.Context, homeCountry string) (points.Region, error)
}

// Users resolves a user's home country; unknown users are not_found.
type Users interface {
	HomeCountry(ctx context.Context, userID id.UserID) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service manages travel logs and scores them with the points engine.
type Service struct {
	store     Store
	catalogue Catalogue
	users     Users
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher sets where travel-log events go. Events are dropped when unset.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(store Store, catalogue Catalogue, users Users, opts ...Option) *Service {
	s := &Service{
		store:     store,
		catalogue: catalogue,
		users:     users,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddCountry logs a visit to the country identified by code.
func (s *Service) AddCountry(ctx context.Context, actor, userID id.UserID, code string, visitedAt *models.Date) (*models.VisitedCountry, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	country, err := s.catalogue.FindCountry(ctx, code)
	if err != nil {
		return nil, err
	}

	visit, err := s.store.AddCountry(ctx, models.VisitedCountry{
		UserID:      userID,
		CountryCode: country.Code,
		VisitedAt:   visitedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return nil, dErrors.New(dErrors.CodeConflict, "country already added")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add country")
		}
	}

	s.metrics.IncrementVisitLogged(metrics.KindCountry)
	s.logger.InfoContext(ctx, "country added",
		"user_id", userID,
		"country_code", country.Code,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.publish(ctx, events.Event{Type: events.CountryAdded, UserID: userID.String(), CountryCode: country.Code})
	return visit, nil
}

// RemoveCountry deletes the visit and every city visit inside the country.
func (s *Service) RemoveCountry(ctx context.Context, actor, userID id.UserID, code string) error {
	if err := authorize(actor, userID); err != nil {
		return err
	}
	parsed, err := id.ParseCountryCode(code)
	if err != nil {
		return err
	}

	if err := s.store.RemoveCountry(ctx, userID, parsed.String()); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "country not in your visited list")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove country")
	}

	s.metrics.IncrementVisitRemoved(metrics.KindCountry)
	s.logger.InfoContext(ctx, "country removed",
		"user_id", userID,
		"country_code", parsed,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.publish(ctx, events.Event{Type: events.CountryRemoved, UserID: userID.String(), CountryCode: parsed.String()})
	return nil
}

// AddCity logs a city visit. The city's country must already be logged.
func (s *Service) AddCity(ctx context.Context, actor, userID id.UserID, cityID id.CityID, visitedAt *models.Date) (*models.VisitedCity, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	city, err := s.catalogue.FindCity(ctx, cityID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindCountry(ctx, userID, city.CountryCode); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "you must add the country before logging city visits")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load visited country")
	}

	visit, err := s.store.AddCity(ctx, models.VisitedCity{
		UserID:      userID,
		CityID:      city.ID,
		CountryCode: city.CountryCode,
		VisitedAt:   visitedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return nil, dErrors.New(dErrors.CodeConflict, "city already logged")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "city not found")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add city")
		}
	}

	s.metrics.IncrementVisitLogged(metrics.KindCity)
	s.logger.InfoContext(ctx, "city added",
		"user_id", userID,
		"city_id", city.ID,
		"country_code", city.CountryCode,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.publish(ctx, events.Event{Type: events.CityAdded, UserID: userID.String(), CountryCode: city.CountryCode, CityID: city.ID.String()})
	return visit, nil
}

func (s *Service) RemoveCity(ctx context.Context, actor, userID id.UserID, cityID id.CityID) error {
	if err := authorize(actor, userID); err != nil {
		return err
	}
	if err := s.store.RemoveCity(ctx, userID, cityID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "city visit not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove city")
	}

	s.metrics.IncrementVisitRemoved(metrics.KindCity)
	s.logger.InfoContext(ctx, "city removed",
		"user_id", userID,
		"city_id", cityID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.publish(ctx, events.Event{Type: events.CityRemoved, UserID: userID.String(), CityID: cityID.String()})
	return nil
}

// ListCountries returns the user's visited countries with per-country points.
func (s *Service) ListCountries(ctx context.Context, userID id.UserID) (_ []models.CountryVisitView, err error) {
	ctx, span := tracing.Start(ctx, "travellog.ListCountries", attribute.String("user_id", userID.String()))
	defer func() { tracing.End(span, err) }()

	log, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.CountryVisitView, 0, len(log.visits))
	for _, v := range log.visits {
		out = append(out, models.CountryVisitView{
			CountryCode:   v.country.Code,
			CountryName:   v.country.Name,
			Region:        v.country.Region,
			VisitedAt:     v.record.VisitedAt,
			CitiesVisited: len(v.cities),
			CountryScore:  points.ScoreCountry(v.country, log.home, log.catalogue, v.cities),
		})
	}
	return out, nil
}

// Score returns the user's total travel points with a per-country breakdown.
func (s *Service) Score(ctx context.Context, userID id.UserID) (_ *models.Score, err error) {
	ctx, span := tracing.Start(ctx, "travellog.Score", attribute.String("user_id", userID.String()))
	defer func() { tracing.End(span, err) }()
	start := s.now()

	log, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	visited := make([]points.VisitedCountry, 0, len(log.visits))
	for _, v := range log.visits {
		visited = append(visited, points.VisitedCountry{Country: v.country, Cities: v.cities})
	}
	score := points.ScoreTravelLog(log.home, log.catalogue, visited)

	s.metrics.ObserveScore(s.now().Sub(start))
	span.SetAttributes(
		attribute.Int("countries", len(score.Countries)),
		attribute.Float64("total_points", score.TotalPoints),
	)
	s.logger.InfoContext(ctx, "score computed",
		"user_id", userID,
		"home_region", log.home,
		"countries", len(score.Countries),
		"total_points", score.TotalPoints,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.Score{UserID: userID, TravelScore: score}, nil
}

type visit struct {
	record  models.VisitedCountry
	country points.Country
	cities  []points.City
}

type travelLog struct {
	home      points.Region
	catalogue []points.Country
	visits    []visit
}

// load gathers everything the engine needs for one user. Visited countries
// missing from the catalogue are skipped.
func (s *Service) load(ctx context.Context, userID id.UserID) (*travelLog, error) {
	var (
		log       travelLog
		countries []models.VisitedCountry
		cities    []models.VisitedCity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		homeCountry, err := s.users.HomeCountry(gctx, userID)
		if err != nil {
			return err
		}
		log.home, err = s.catalogue.HomeRegion(gctx, homeCountry)
		return err
	})
	g.Go(func() (err error) {
		log.catalogue, err = s.catalogue.Snapshot(gctx)
		return err
	})
	g.Go(func() (err error) {
		countries, err = s.store.ListCountries(gctx, userID)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load visited countries")
	})
	g.Go(func() (err error) {
		cities, err = s.store.ListCities(gctx, userID)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load visited cities")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCode := make(map[string]points.Country, len(log.catalogue))
	for _, c := range log.catalogue {
		byCode[c.Code] = c
	}
	visitedCities := make(map[string]map[id.CityID]struct{})
	for _, c := range cities {
		if visitedCities[c.CountryCode] == nil {
			visitedCities[c.CountryCode] = make(map[id.CityID]struct{})
		}
		visitedCities[c.CountryCode][c.CityID] = struct{}{}
	}

	for _, record := range countries {
		country, ok := byCode[record.CountryCode]
		if !ok {
			s.logger.WarnContext(ctx, "visited country missing from catalogue",
				"user_id", userID,
				"country_code", record.CountryCode,
			)
			continue
		}
		log.visits = append(log.visits, visit{record: record, country: country})
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(maxCityLoads)
	for i := range log.visits {
		wanted := visitedCities[log.visits[i].country.Code]
		if len(wanted) == 0 {
			continue
		}
		g.Go(func() error {
			all, err := s.catalogue.ListCities(gctx, log.visits[i].country.Code)
			if err != nil {
				return err
			}
			matched := make([]points.City, 0, len(wanted))
			for _, c := range all {
				if _, ok := wanted[c.ID]; ok {
					matched = append(matched, c.ToPoints())
				}
			}
			log.visits[i].cities = matched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.publisher == nil {
		return
	}
	e.OccurredAt = s.now().UTC()
	e.RequestID = requestcontext.RequestID(ctx)
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to publish travel log event",
			"error", err,
			"type", e.Type,
			"user_id", e.UserID,
			"request_id", e.RequestID,
		)
	}
}

func authorize(actor, userID id.UserID) error {
	if actor.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if actor != userID {
		return dErrors.New(dErrors.CodeForbidden, "forbidden")
	}
	return nil
}
