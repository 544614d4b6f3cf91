package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"travelpoints/internal/ratelimit/models"
	"travelpoints/internal/ratelimit/store/bucket"
	"travelpoints/pkg/platform/sentinel"
	"travelpoints/pkg/requestcontext"
)

type failingLimiter struct {
	calls int
}

func (f *failingLimiter) Allow(context.Context, string) (*models.Result, error) {
	f.calls++
	return nil, fmt.Errorf("rate limit counter: %w: %w", sentinel.ErrUnavailable, errors.New("connection refused"))
}

type RateLimitSuite struct {
	suite.Suite
	logger *slog.Logger
	now    time.Time
}

func TestRateLimitSuite(t *testing.T) {
	suite.Run(t, new(RateLimitSuite))
}

func (s *RateLimitSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RateLimitSuite) clock() time.Time { return s.now }

func (s *RateLimitSuite) serve(mw *Middleware, ip string) *httptest.ResponseRecorder {
	handler := mw.RateLimit("auth")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req = req.WithContext(requestcontext.WithClientIP(req.Context(), ip))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func (s *RateLimitSuite) TestAllowsWithinBudget() {
	mw := New(bucket.NewInMemoryBucketStore(2, time.Minute, bucket.WithClock(s.clock)), s.logger)

	rec := s.serve(mw, "10.0.0.1")

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("2", rec.Header().Get("X-RateLimit-Limit"))
	s.Equal("1", rec.Header().Get("X-RateLimit-Remaining"))
	s.NotEmpty(rec.Header().Get("X-RateLimit-Reset"))
	s.Empty(rec.Header().Get("X-RateLimit-Status"))
}

func (s *RateLimitSuite) TestRejectsOnceExhausted() {
	mw := New(bucket.NewInMemoryBucketStore(2, time.Minute, bucket.WithClock(s.clock)), s.logger)

	s.serve(mw, "10.0.0.1")
	s.serve(mw, "10.0.0.1")
	rec := s.serve(mw, "10.0.0.1")

	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Equal("0", rec.Header().Get("X-RateLimit-Remaining"))
	s.Equal("60", rec.Header().Get("Retry-After"))
	s.JSONEq(`{"error":"rate_limited","error_description":"too many requests, please try again later"}`, rec.Body.String())

	s.Run("other clients keep their own budget", func() {
		s.Equal(http.StatusNoContent, s.serve(mw, "10.0.0.2").Code)
	})
}

func (s *RateLimitSuite) TestDisabled() {
	mw := New(bucket.NewInMemoryBucketStore(1, time.Minute), s.logger, WithDisabled(true))

	for range 3 {
		rec := s.serve(mw, "10.0.0.1")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Header().Get("X-RateLimit-Limit"))
	}
}

func (s *RateLimitSuite) TestFailsOpenWithoutFallback() {
	primary := &failingLimiter{}
	mw := New(primary, s.logger)

	for range 10 {
		s.Equal(http.StatusNoContent, s.serve(mw, "10.0.0.1").Code)
	}
	s.Equal(10, primary.calls)
}

func (s *RateLimitSuite) TestFallbackAnswersEveryPrimaryFailure() {
	primary := &failingLimiter{}
	fallback := bucket.NewInMemoryBucketStore(1, time.Minute, bucket.WithClock(s.clock))
	mw := New(primary, s.logger, WithFallback(fallback), WithBreakerThresholds(5, 3))

	rec := s.serve(mw, "10.0.0.1")
	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("degraded", rec.Header().Get("X-RateLimit-Status"))

	rec = s.serve(mw, "10.0.0.1")
	s.Equal(http.StatusTooManyRequests, rec.Code, "fallback budget applies before the circuit opens")
	s.Equal("degraded", rec.Header().Get("X-RateLimit-Status"))
	s.Equal(2, primary.calls)
}

func (s *RateLimitSuite) TestDenyingFallbackRejectsFirstFailure() {
	mw := New(&failingLimiter{}, s.logger, WithFallback(denyAll{}))

	for range 6 {
		s.Equal(http.StatusTooManyRequests, s.serve(mw, "10.0.0.1").Code)
	}
}

func (s *RateLimitSuite) TestIntermittentPrimaryStillLimited() {
	primary := &flakyLimiter{failEvery: 5, inner: bucket.NewInMemoryBucketStore(100, time.Minute, bucket.WithClock(s.clock))}
	mw := New(primary, s.logger, WithFallback(denyAll{}))

	var passed int
	for range 10 {
		if s.serve(mw, "10.0.0.1").Code == http.StatusNoContent {
			passed++
		}
	}
	s.Equal(2, passed, "only the primary's successful answers pass")
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (*models.Result, error) {
	return &models.Result{Allowed: false, Limit: 0, RetryAfter: 60}, nil
}

// flakyLimiter succeeds on every failEvery-th call and fails otherwise.
type flakyLimiter struct {
	failEvery int
	calls     int
	inner     Limiter
}

func (f *flakyLimiter) Allow(ctx context.Context, key string) (*models.Result, error) {
	f.calls++
	if f.calls%f.failEvery != 0 {
		return nil, fmt.Errorf("rate limit counter: %w", sentinel.ErrUnavailable)
	}
	return f.inner.Allow(ctx, key)
}

func TestCircuitBreaker(t *testing.T) {
	cb := newCircuitBreaker(3, 2)

	assert.False(t, cb.RecordFailure())
	assert.False(t, cb.RecordFailure())
	require.True(t, cb.RecordFailure())
	assert.True(t, cb.IsOpen())

	assert.False(t, cb.RecordSuccess(), "one success is not enough to close")
	assert.True(t, cb.RecordFailure(), "a failure resets the success streak")
	assert.False(t, cb.RecordSuccess())
	assert.True(t, cb.RecordSuccess())
	assert.False(t, cb.IsOpen())

	t.Run("successes reset the failure count while closed", func(t *testing.T) {
		cb := newCircuitBreaker(2, 1)
		cb.RecordFailure()
		cb.RecordSuccess()
		assert.False(t, cb.RecordFailure())
	})
}
