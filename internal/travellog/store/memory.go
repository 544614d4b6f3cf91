// Package store persists users' visited countries and cities.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"travelpoints/internal/travellog/models"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/platform/sentinel"
)

type countryKey struct {
	user id.UserID
	code string
}

type cityKey struct {
	user id.UserID
	city id.CityID
}

// InMemory keeps visits in maps. Lists are ordered by creation time, so a
// zero CreatedAt is stamped on insert.
type InMemory struct {
	mu        sync.RWMutex
	countries map[countryKey]models.VisitedCountry
	cities    map[cityKey]models.VisitedCity
	now       func() time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{
		countries: make(map[countryKey]models.VisitedCountry),
		cities:    make(map[cityKey]models.VisitedCity),
		now:       time.Now,
	}
}

func (s *InMemory) AddCountry(_ context.Context, v models.VisitedCountry) (*models.VisitedCountry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := countryKey{user: v.UserID, code: v.CountryCode}
	if _, ok := s.countries[key]; ok {
		return nil, sentinel.ErrAlreadyUsed
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = s.now().UTC()
	}
	s.countries[key] = v
	return &v, nil
}

func (s *InMemory) FindCountry(_ context.Context, userID id.UserID, code string) (*models.VisitedCountry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.countries[countryKey{user: userID, code: code}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
}

// RemoveCountry deletes the country visit and the user's visits to its cities.
func (s *InMemory) RemoveCountry(_ context.Context, userID id.UserID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := countryKey{user: userID, code: code}
	if _, ok := s.countries[key]; !ok {
		return sentinel.ErrNotFound
	}
	for k, c := range s.cities {
		if k.user == userID && c.CountryCode == code {
			delete(s.cities, k)
		}
	}
	delete(s.countries, key)
	return nil
}

func (s *InMemory) ListCountries(_ context.Context, userID id.UserID) ([]models.VisitedCountry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.VisitedCountry, 0)
	for k, v := range s.countries {
		if k.user == userID {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b models.VisitedCountry) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.CountryCode, b.CountryCode))
	})
	return out, nil
}

func (s *InMemory) AddCity(_ context.Context, v models.VisitedCity) (*models.VisitedCity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cityKey{user: v.UserID, city: v.CityID}
	if _, ok := s.cities[key]; ok {
		return nil, sentinel.ErrAlreadyUsed
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = s.now().UTC()
	}
	s.cities[key] = v
	return &v, nil
}

func (s *InMemory) RemoveCity(_ context.Context, userID id.UserID, cityID id.CityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cityKey{user: userID, city: cityID}
	if _, ok := s.cities[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.cities, key)
	return nil
}

func (s *InMemory) ListCities(_ context.Context, userID id.UserID) ([]models.VisitedCity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.VisitedCity, 0)
	for k, v := range s.cities {
		if k.user == userID {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b models.VisitedCity) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.CityID.String(), b.CityID.String()))
	})
	return out, nil
}
