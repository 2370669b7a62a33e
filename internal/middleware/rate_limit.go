package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimitKeyPrefix namespaces the Redis counters.
const RateLimitKeyPrefix = "workout:rl:"

// redisStoreTimeout bounds a single counter round trip.
const redisStoreTimeout = 250 * time.Millisecond

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit caps each client IP at rate_limit.requests per rate_limit.window.
// Counters live in Redis so every replica shares them; the in-memory
// token bucket takes over whenever Redis is missing or failing.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit

	memory := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		Burst:     cfg.Requests,
		ExpiresIn: 3 * time.Minute,
	})

	var store middleware.RateLimiterStore = memory
	if r.server.Redis != nil {
		store = NewRedisStore(r.server.Redis, cfg.Requests, cfg.Window, memory, r.server.Logger)
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			r.server.Logger.Warn().
				Str("identifier", identifier).
				Str("path", c.Request().URL.Path).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, slow down.")
		},
	})
}

// RecordRateLimitHit counts a rejected request in Prometheus and New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.Metrics.RateLimited()

	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

// RedisStore is a fixed-window counter (INCR + EXPIRE) implementing
// echo's RateLimiterStore.
type RedisStore struct {
	client   *redis.Client
	max      int64
	window   time.Duration
	fallback middleware.RateLimiterStore
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewRedisStore(client *redis.Client, max int, window time.Duration, fallback middleware.RateLimiterStore, logger *zerolog.Logger) *RedisStore {
	return &RedisStore{
		client:   client,
		max:      int64(max),
		window:   window,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisStoreTimeout)
	defer cancel()

	hits, err := s.incr(ctx, identifier)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("redis rate limit store unavailable, using memory store")
		}
		if s.fallback == nil {
			return true, nil
		}
		return s.fallback.Allow(identifier)
	}

	return hits <= s.max, nil
}

func (s *RedisStore) incr(ctx context.Context, identifier string) (int64, error) {
	windowStart := s.now().UTC().Truncate(s.window)
	key := fmt.Sprintf("%s%s:%d", RateLimitKeyPrefix, strings.ReplaceAll(identifier, " ", "_"), windowStart.Unix())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

var _ middleware.RateLimiterStore = (*RedisStore)(nil)
