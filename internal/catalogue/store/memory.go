// Package store persists the country and city reference catalogue.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"travelpoints/internal/catalogue/models"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/platform/sentinel"
)

// InMemory keeps the catalogue in maps. Upserts replace whole records.
type InMemory struct {
	mu        sync.RWMutex
	countries map[string]models.Country
	cities    map[id.CityID]models.City
}

func NewInMemory() *InMemory {
	return &InMemory{
		countries: make(map[string]models.Country),
		cities:    make(map[id.CityID]models.City),
	}
}

func (s *InMemory) ListCountries(_ context.Context) ([]models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Country, 0, len(s.countries))
	for _, c := range s.countries {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.Country) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (s *InMemory) FindCountry(_ context.Context, code string) (*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.countries[code]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemory) ListCitiesByCountry(_ context.Context, code string) ([]models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.City, 0)
	for _, c := range s.cities {
		if c.CountryCode == code {
			out = append(out, c)
		}
	}
	sortCities(out)
	return out, nil
}

func (s *InMemory) FindCity(_ context.Context, cityID id.CityID) (*models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cities[cityID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemory) UpsertCountry(_ context.Context, c models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries[c.Code] = c
	return nil
}

// UpsertCity requires the parent country. A city with the same country and
// name as an existing one replaces it and keeps the existing ID.
func (s *InMemory) UpsertCity(_ context.Context, c models.City) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[c.CountryCode]; !ok {
		return sentinel.ErrNotFound
	}
	for existingID, existing := range s.cities {
		if existing.CountryCode == c.CountryCode && existing.Name == c.Name {
			c.ID = existingID
			break
		}
	}
	s.cities[c.ID] = c
	return nil
}

// sortCities orders by population descending, then name, so ties are stable.
func sortCities(cities []models.City) {
	slices.SortFunc(cities, func(a, b models.City) int {
		if c := cmp.Compare(b.Population, a.Population); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
