//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"travelpoints/internal/catalogue/metrics"
	"travelpoints/internal/catalogue/models"
	"travelpoints/internal/catalogue/store"
	"travelpoints/internal/points"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	backend *store.InMemory
	metrics *metrics.Metrics
	cache   *store.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.redis.FlushAll(ctx))

	s.backend = store.NewInMemory()
	s.Require().NoError(s.backend.UpsertCountry(ctx, models.Country{Code: "NZ", Name: "New Zealand", Region: points.RegionOceania, Population: 5_100_000, AnnualTourists: 3_900_000, AreaKm2: 268_021}))
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.cache = store.NewRedisCache(s.backend, s.redis.Client, time.Minute, store.WithCacheMetrics(s.metrics))
}

func (s *RedisCacheSuite) TestReadThrough() {
	ctx := context.Background()

	first, err := s.cache.ListCountries(ctx)
	s.Require().NoError(err)
	second, err := s.cache.ListCountries(ctx)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.CacheLookups.WithLabelValues(metrics.CacheMiss)))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.CacheLookups.WithLabelValues(metrics.CacheHit)))

	ttl, err := s.redis.Client.TTL(ctx, "catalogue:countries").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisCacheSuite) TestUpsertInvalidates() {
	ctx := context.Background()

	_, err := s.cache.ListCitiesByCountry(ctx, "NZ")
	s.Require().NoError(err)

	auckland := models.City{ID: id.NewCityID(), CountryCode: "NZ", Name: "Auckland", Population: 1_657_000}
	s.Require().NoError(s.cache.UpsertCity(ctx, auckland))

	cities, err := s.cache.ListCitiesByCountry(ctx, "NZ")
	s.Require().NoError(err)
	s.Equal([]models.City{auckland}, cities)

	s.Require().NoError(s.cache.UpsertCountry(ctx, models.Country{Code: "AU", Name: "Australia", Region: points.RegionOceania}))
	countries, err := s.cache.ListCountries(ctx)
	s.Require().NoError(err)
	s.Len(countries, 2)
}

func (s *RedisCacheSuite) TestPurgeDropsEntriesWrittenBehindTheCache() {
	ctx := context.Background()

	_, err := s.cache.ListCountries(ctx)
	s.Require().NoError(err)
	_, err = s.cache.ListCitiesByCountry(ctx, "NZ")
	s.Require().NoError(err)
	s.Require().NoError(s.redis.Client.Set(ctx, "trl:unrelated", "1", time.Minute).Err())

	// A reseed writes to the backend directly, as travelctl seed does.
	s.Require().NoError(s.backend.UpsertCountry(ctx, models.Country{Code: "FJ", Name: "Fiji", Region: points.RegionOceania}))
	stale, err := s.cache.ListCountries(ctx)
	s.Require().NoError(err)
	s.Len(stale, 1)

	purged, err := store.PurgeCache(ctx, s.redis.Client)
	s.Require().NoError(err)
	s.Equal(2, purged)

	fresh, err := s.cache.ListCountries(ctx)
	s.Require().NoError(err)
	s.Len(fresh, 2)

	n, err := s.redis.Client.Exists(ctx, "trl:unrelated").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	purged, err = store.PurgeCache(ctx, s.redis.Client)
	s.Require().NoError(err)
	s.Equal(1, purged, "only the country list was cached again")
}
