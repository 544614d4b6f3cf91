package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"travelpoints/internal/travellog/models"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	user  id.UserID
	clock time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.clock = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.store.now = func() time.Time {
		s.clock = s.clock.Add(time.Second)
		return s.clock
	}
	s.ctx = context.Background()
	s.user = id.NewUserID()
}

func (s *InMemoryStoreSuite) TestCountries() {
	visited, err := models.ParseDate("2023-07-14")
	s.Require().NoError(err)

	s.Run("add stamps created_at", func() {
		got, err := s.store.AddCountry(s.ctx, models.VisitedCountry{UserID: s.user, CountryCode: "JP", VisitedAt: &visited})
		s.Require().NoError(err)
		s.False(got.CreatedAt.IsZero())
		s.Equal("2023-07-14", got.VisitedAt.String())
	})

	s.Run("duplicate", func() {
		_, err := s.store.AddCountry(s.ctx, models.VisitedCountry{UserID: s.user, CountryCode: "JP"})
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("other users are independent", func() {
		_, err := s.store.AddCountry(s.ctx, models.VisitedCountry{UserID: id.NewUserID(), CountryCode: "JP"})
		s.NoError(err)
	})

	s.Run("lists in insertion order", func() {
		_, err := s.store.AddCountry(s.ctx, models.VisitedCountry{UserID: s.user, CountryCode: "FR"})
		s.Require().NoError(err)

		list, err := s.store.ListCountries(s.ctx, s.user)
		s.Require().NoError(err)
		s.Require().Len(list, 2)
		s.Equal("JP", list[0].CountryCode)
		s.Equal("FR", list[1].CountryCode)
	})

	s.Run("find", func() {
		_, err := s.store.FindCountry(s.ctx, s.user, "FR")
		s.NoError(err)
		_, err = s.store.FindCountry(s.ctx, s.user, "DE")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("empty list is not nil", func() {
		list, err := s.store.ListCountries(s.ctx, id.NewUserID())
		s.Require().NoError(err)
		s.NotNil(list)
		s.Empty(list)
	})
}

func (s *InMemoryStoreSuite) TestRemoveCountryCascades() {
	paris, lyon, tokyo := id.NewCityID(), id.NewCityID(), id.NewCityID()
	for _, code := range []string{"FR", "JP"} {
		_, err := s.store.AddCountry(s.ctx, models.VisitedCountry{UserID: s.user, CountryCode: code})
		s.Require().NoError(err)
	}
	for _, c := range []models.VisitedCity{
		{UserID: s.user, CityID: paris, CountryCode: "FR"},
		{UserID: s.user, CityID: lyon, CountryCode: "FR"},
		{UserID: s.user, CityID: tokyo, CountryCode: "JP"},
	} {
		_, err := s.store.AddCity(s.ctx, c)
		s.Require().NoError(err)
	}

	s.Require().NoError(s.store.RemoveCountry(s.ctx, s.user, "FR"))

	cities, err := s.store.ListCities(s.ctx, s.user)
	s.Require().NoError(err)
	s.Require().Len(cities, 1)
	s.Equal(tokyo, cities[0].CityID)

	s.ErrorIs(s.store.RemoveCountry(s.ctx, s.user, "FR"), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestCities() {
	paris := id.NewCityID()

	_, err := s.store.AddCity(s.ctx, models.VisitedCity{UserID: s.user, CityID: paris, CountryCode: "FR"})
	s.Require().NoError(err)

	_, err = s.store.AddCity(s.ctx, models.VisitedCity{UserID: s.user, CityID: paris, CountryCode: "FR"})
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)

	s.Require().NoError(s.store.RemoveCity(s.ctx, s.user, paris))
	s.ErrorIs(s.store.RemoveCity(s.ctx, s.user, paris), sentinel.ErrNotFound)
}
