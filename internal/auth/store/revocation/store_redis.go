// Package revocation records access tokens invalidated by logout until they
// would have expired anyway.
package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "trl:jti:"

// RedisTRL is a Redis-backed token revocation list shared by every API
// instance.
type RedisTRL struct {
	client  *redis.Client
	metrics *Metrics
}

type RedisTRLOption func(*RedisTRL)

func WithMetrics(m *Metrics) RedisTRLOption {
	return func(t *RedisTRL) {
		t.metrics = m
	}
}

func NewRedisTRL(client *redis.Client, opts ...RedisTRLOption) *RedisTRL {
	trl := &RedisTRL{client: client}
	for _, opt := range opts {
		opt(trl)
	}
	return trl
}

// RevokeToken marks jti as revoked for ttl. Non-positive ttl is a no-op: the
// token has already expired.
func (t *RedisTRL) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return t.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err()
}

// IsTokenRevoked reports whether jti is on the list.
func (t *RedisTRL) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	start := time.Now()
	defer t.metrics.observe(start)

	if jti == "" {
		return false, nil
	}
	err := t.client.Get(ctx, revokedTokenKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
