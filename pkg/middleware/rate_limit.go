package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/NeuralTrust/TrustMask/pkg/common"
	"github.com/NeuralTrust/TrustMask/pkg/infra/prometheus"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const rateLimitKeyPrefix = "trustmask:ratelimit"

type RateLimitOpts struct {
	Limit        int
	Window       time.Duration
	TimeProvider func() time.Time
	UuidProvider func() uuid.UUID
	// KeyFunc identifies the client; defaults to the remote IP.
	KeyFunc func(c *fiber.Ctx) string
}

type rateLimitMiddleware struct {
	logger       *logrus.Logger
	redis        *redis.Client
	limit        int
	window       time.Duration
	timeProvider func() time.Time
	uuidProvider func() uuid.UUID
	keyFunc      func(c *fiber.Ctx) string
}

// NewRateLimitMiddleware applies a sliding window limit per client IP,
// counted in a Redis sorted set. Redis failures let the request through.
func NewRateLimitMiddleware(logger *logrus.Logger, redisClient *redis.Client, opts RateLimitOpts) Middleware {
	m := &rateLimitMiddleware{
		logger:       logger,
		redis:        redisClient,
		limit:        opts.Limit,
		window:       opts.Window,
		timeProvider: opts.TimeProvider,
		uuidProvider: opts.UuidProvider,
		keyFunc:      opts.KeyFunc,
	}
	if m.timeProvider == nil {
		m.timeProvider = time.Now
	}
	if m.uuidProvider == nil {
		m.uuidProvider = uuid.New
	}
	if m.keyFunc == nil {
		m.keyFunc = func(c *fiber.Ctx) string { return "ip:" + c.IP() }
	}
	return m
}

func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		key := fmt.Sprintf("%s:%s", rateLimitKeyPrefix, m.keyFunc(c))
		count, reset, err := m.allow(c.UserContext(), key)
		if err != nil {
			m.logger.WithError(err).Warn("rate limiter unavailable, allowing request")
			return c.Next()
		}

		remaining := int64(m.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set(common.RateLimitLimitHeader, strconv.Itoa(m.limit))
		c.Set(common.RateLimitRemainingHeader, strconv.FormatInt(remaining, 10))
		c.Set(common.RateLimitResetHeader, strconv.FormatInt(reset.Unix(), 10))

		if count >= int64(m.limit) {
			prometheus.RateLimited.Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(m.window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "rate limit exceeded",
			})
		}
		return c.Next()
	}
}

// allow returns the number of requests already counted in the window. The
// current request is recorded only when it is under the limit.
func (m *rateLimitMiddleware) allow(ctx context.Context, key string) (int64, time.Time, error) {
	now := m.timeProvider()
	windowStart := now.Add(-m.window).Unix()
	reset := now.Add(m.window)

	count, err := m.redis.ZCount(ctx, key,
		strconv.FormatInt(windowStart, 10),
		strconv.FormatInt(now.Unix(), 10)).Result()
	if err != nil {
		return 0, reset, fmt.Errorf("failed to get request count: %w", err)
	}
	if count >= int64(m.limit) {
		return count, reset, nil
	}

	pipe := m.redis.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, &redis.Z{
		Score:  float64(now.Unix()),
		Member: fmt.Sprintf("%d:%s", now.Unix(), m.uuidProvider().String()),
	})
	pipe.Expire(ctx, key, m.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, reset, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}
	// count now includes this request
	return count + 1, reset, nil
}
