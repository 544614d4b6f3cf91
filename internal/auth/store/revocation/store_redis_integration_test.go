//go:build integration

package revocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"travelpoints/internal/auth/store/revocation"
	"travelpoints/pkg/testutil/containers"
)

type RedisTRLSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	trl   *revocation.RedisTRL
}

func TestRedisTRLSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisTRLSuite))
}

func (s *RedisTRLSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.trl = revocation.NewRedisTRL(s.redis.Client,
		revocation.WithMetrics(revocation.NewMetricsWith(prometheus.NewRegistry())))
}

func (s *RedisTRLSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisTRLSuite) TestRevokeAndCheck() {
	ctx := context.Background()

	s.Require().NoError(s.trl.RevokeToken(ctx, "jti-1", time.Minute))

	revoked, err := s.trl.IsTokenRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	revoked, err = s.trl.IsTokenRevoked(ctx, "jti-2")
	s.Require().NoError(err)
	s.False(revoked)

	ttl, err := s.redis.Client.TTL(ctx, "trl:jti:jti-1").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 50*time.Second)
}

func (s *RedisTRLSuite) TestEntriesExpire() {
	ctx := context.Background()

	s.Require().NoError(s.trl.RevokeToken(ctx, "short", 1100*time.Millisecond))
	s.Eventually(func() bool {
		revoked, err := s.trl.IsTokenRevoked(ctx, "short")
		return err == nil && !revoked
	}, 5*time.Second, 100*time.Millisecond)
}
