// Package middleware limits requests per client IP.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"travelpoints/internal/platform/middleware"
	"travelpoints/internal/ratelimit/metrics"
	"travelpoints/internal/ratelimit/models"
	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/httputil"
	"travelpoints/pkg/requestcontext"
)

const (
	defaultFailureThreshold = 5
	defaultSuccessThreshold = 3
)

// Limiter decides whether one more request for key fits its budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (*models.Result, error)
}

type Middleware struct {
	limiter  Limiter
	fallback Limiter
	breaker  *CircuitBreaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns every check into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithFallback sets the limiter used while the primary one keeps failing.
// Without a fallback, limiter errors let requests through.
func WithFallback(l Limiter) Option {
	return func(m *Middleware) {
		m.fallback = l
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

// WithBreakerThresholds sets how many consecutive primary failures open the
// circuit and how many successes close it.
func WithBreakerThresholds(failures, successes int) Option {
	return func(m *Middleware) {
		if failures > 0 && successes > 0 {
			m.breaker = newCircuitBreaker(failures, successes)
		}
	}
}

func New(limiter Limiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
		breaker: newCircuitBreaker(defaultFailureThreshold, defaultSuccessThreshold),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit limits requests per client IP within scope.
func (m *Middleware) RateLimit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)
			if ip == "" {
				ip = middleware.ClientIPFromRequest(r)
			}

			result, degraded, err := m.check(ctx, scope, models.NewKey(scope, ip))
			if err != nil {
				m.metrics.ObserveDecision(scope, metrics.OutcomeError)
				m.logger.ErrorContext(ctx, "failed to check rate limit",
					"error", err,
					"scope", scope,
					"request_id", middleware.GetRequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result, degraded)

			if !result.Allowed {
				m.metrics.ObserveDecision(scope, metrics.OutcomeLimited)
				m.logger.WarnContext(ctx, "rate limit exceeded",
					"scope", scope,
					"retry_after", result.RetryAfter,
					"request_id", middleware.GetRequestID(ctx),
				)
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests, please try again later"))
				return
			}

			m.metrics.ObserveDecision(scope, metrics.OutcomeAllowed)
			next.ServeHTTP(w, r)
		})
	}
}

// check asks the primary limiter. Any primary error is answered by the
// fallback when one is configured; the breaker only tracks whether the primary
// is degraded.
func (m *Middleware) check(ctx context.Context, scope, key string) (*models.Result, bool, error) {
	result, err := m.limiter.Allow(ctx, key)
	if err == nil {
		closed := m.breaker.RecordSuccess()
		m.metrics.SetDegraded(!closed)
		return result, !closed, nil
	}

	open := m.breaker.RecordFailure()
	m.metrics.SetDegraded(open)
	if m.fallback == nil {
		return nil, open, err
	}

	m.logger.WarnContext(ctx, "rate limiter unavailable, using in-process fallback",
		"error", err,
		"scope", scope,
		"circuit_open", open,
	)
	m.metrics.ObserveDecision(scope, metrics.OutcomeFallback)
	result, fbErr := m.fallback.Allow(ctx, key)
	if fbErr != nil {
		return nil, true, fbErr
	}
	return result, true, nil
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result, degraded bool) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if degraded {
		w.Header().Set("X-RateLimit-Status", "degraded")
	}
}
