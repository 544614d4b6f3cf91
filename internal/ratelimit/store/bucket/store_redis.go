package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelpoints/internal/ratelimit/models"
	"travelpoints/pkg/platform/sentinel"
)

// RedisStore is a fixed window counter shared by every replica: INCR on the
// key, EXPIRE when the window opens.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (*models.Result, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, s.window)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit counter: %w: %w", sentinel.ErrUnavailable, err)
	}

	now := s.now()
	resetAt := now.Add(s.window)
	if d := ttl.Val(); d > 0 {
		resetAt = now.Add(d)
	}

	count := int(incr.Val())
	if count > s.limit {
		return models.Deny(s.limit, resetAt, now), nil
	}
	return &models.Result{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - count,
		ResetAt:   resetAt,
	}, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("reset rate limit counter: %w", err)
	}
	return nil
}
