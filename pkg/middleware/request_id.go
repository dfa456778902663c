package middleware

import (
	"time"

	"github.com/NeuralTrust/TrustMask/pkg/common"
	"github.com/NeuralTrust/TrustMask/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type requestIDMiddleware struct {
	logger *logrus.Logger
}

// NewRequestIDMiddleware tags every request with an id (kept from the
// client when it sends one) and writes one access log line per request.
// Bodies are never logged.
func NewRequestIDMiddleware(logger *logrus.Logger) Middleware {
	return &requestIDMiddleware{logger: logger}
}

func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(common.LatencyContextKey, start)

		requestID := c.Get(common.RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Locals(common.RequestIDContextKey, requestID)
		c.Set(common.RequestIDHeader, requestID)

		err := c.Next()

		entry := m.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		})
		if ua := utils.ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage)); ua != nil {
			entry = entry.WithFields(logrus.Fields{
				"device":  ua.Device,
				"os":      ua.OS,
				"browser": ua.Browser,
				"locale":  ua.Locale,
			})
		}
		if err != nil {
			entry.WithError(err).Warn("request failed")
		} else {
			entry.Info("request completed")
		}
		return err
	}
}
