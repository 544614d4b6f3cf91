package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"travelpoints/internal/catalogue/metrics"
	"travelpoints/internal/catalogue/models"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/platform/sentinel"
)

const (
	cacheKeyPrefix    = "catalogue:"
	countriesCacheKey = cacheKeyPrefix + "countries"
	citiesCachePrefix = cacheKeyPrefix + "cities:"
)

// Backend is the store the cache reads through to.
type Backend interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	FindCountry(ctx context.Context, code string) (*models.Country, error)
	ListCitiesByCountry(ctx context.Context, code string) ([]models.City, error)
	FindCity(ctx context.Context, cityID id.CityID) (*models.City, error)
	UpsertCountry(ctx context.Context, c models.Country) error
	UpsertCity(ctx context.Context, c models.City) error
}

// RedisCache is a read-through cache over a Backend. The country list and
// each country's city list are stored as JSON for ttl. Redis failures fall
// through to the backend and are only logged.
type RedisCache struct {
	next    Backend
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type CacheOption func(*RedisCache)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *RedisCache) {
		c.metrics = m
	}
}

func NewRedisCache(next Backend, client *redis.Client, ttl time.Duration, opts ...CacheOption) *RedisCache {
	c := &RedisCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) ListCountries(ctx context.Context) ([]models.Country, error) {
	var cached []models.Country
	if c.get(ctx, countriesCacheKey, &cached) {
		return cached, nil
	}
	countries, err := c.next.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, countriesCacheKey, countries)
	return countries, nil
}

// FindCountry is served from the cached country list.
func (c *RedisCache) FindCountry(ctx context.Context, code string) (*models.Country, error) {
	countries, err := c.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range countries {
		if countries[i].Code == code {
			return &countries[i], nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (c *RedisCache) ListCitiesByCountry(ctx context.Context, code string) ([]models.City, error) {
	key := citiesCachePrefix + code
	var cached []models.City
	if c.get(ctx, key, &cached) {
		return cached, nil
	}
	cities, err := c.next.ListCitiesByCountry(ctx, code)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, cities)
	return cities, nil
}

func (c *RedisCache) FindCity(ctx context.Context, cityID id.CityID) (*models.City, error) {
	return c.next.FindCity(ctx, cityID)
}

func (c *RedisCache) UpsertCountry(ctx context.Context, country models.Country) error {
	if err := c.next.UpsertCountry(ctx, country); err != nil {
		return err
	}
	c.invalidate(ctx, countriesCacheKey)
	return nil
}

func (c *RedisCache) UpsertCity(ctx context.Context, city models.City) error {
	if err := c.next.UpsertCity(ctx, city); err != nil {
		return err
	}
	c.invalidate(ctx, citiesCachePrefix+city.CountryCode)
	return nil
}

func (c *RedisCache) get(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.metrics.ObserveCache(metrics.CacheMiss)
			return false
		}
		c.metrics.ObserveCache(metrics.CacheError)
		c.logger.WarnContext(ctx, "catalogue cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.metrics.ObserveCache(metrics.CacheError)
		c.logger.WarnContext(ctx, "catalogue cache entry unreadable", "key", key, "error", err)
		return false
	}
	c.metrics.ObserveCache(metrics.CacheHit)
	return true
}

func (c *RedisCache) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "catalogue cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalogue cache write failed", "key", key, "error", err)
	}
}

func (c *RedisCache) invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalogue cache invalidation failed", "key", key, "error", err)
	}
}

// PurgeCache deletes every cached catalogue entry. Run it after the catalogue
// is reseeded so readers do not see the old data until the TTL expires.
func PurgeCache(ctx context.Context, client *redis.Client) (int, error) {
	var keys []string
	iter := client.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan catalogue cache: %w: %w", sentinel.ErrUnavailable, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("purge catalogue cache: %w: %w", sentinel.ErrUnavailable, err)
	}
	return len(keys), nil
}
