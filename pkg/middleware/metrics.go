package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/NeuralTrust/TrustMask/pkg/common"
	"github.com/NeuralTrust/TrustMask/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime, ok := c.Locals(common.LatencyContextKey).(time.Time)
		if !ok {
			startTime = time.Now()
		}

		err := c.Next()

		// route pattern, not the raw path, keeps label cardinality bounded
		route := c.Route().Path
		if route == "" || route == "/" {
			route = c.Path()
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		prometheus.RequestTotal.WithLabelValues(route, c.Method(), getStatusClass(status)).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.RequestLatency.WithLabelValues(route).
				Observe(float64(time.Since(startTime).Milliseconds()))
		}
		return err
	}
}

func getStatusClass(status int) string {
	if status < 100 || status > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%sxx", strconv.Itoa(status/100))
}
