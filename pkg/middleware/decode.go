package middleware

import (
	"errors"

	"github.com/NeuralTrust/TrustMask/pkg/infra/httpx"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type decodeMiddleware struct {
	logger  *logrus.Logger
	maxSize int64
}

// NewDecodeMiddleware undoes Content-Encoding on request bodies so handlers
// always see plain text. maxSize caps the decoded body.
func NewDecodeMiddleware(logger *logrus.Logger, maxSize int64) Middleware {
	return &decodeMiddleware{logger: logger, maxSize: maxSize}
}

func (m *decodeMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		encoding := c.Get(fiber.HeaderContentEncoding)
		// raw bytes; Ctx.Body would try its own decoding
		raw := c.Request().Body()
		if encoding == "" || len(raw) == 0 {
			return c.Next()
		}

		body, changed, err := httpx.DecodeChain(encoding, raw, m.maxSize)
		if err != nil {
			m.logger.WithError(err).Debug("failed to decode request body")
			switch {
			case errors.Is(err, httpx.ErrUnsupportedEncoding):
				return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
					"success": false,
					"error":   "unsupported content encoding",
				})
			case errors.Is(err, httpx.ErrDecodedBodyTooLarge):
				return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
					"success": false,
					"error":   "request body too large",
				})
			default:
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"error":   "malformed request body",
				})
			}
		}
		if changed {
			c.Request().SetBody(body)
			c.Request().Header.Del(fiber.HeaderContentEncoding)
			c.Request().Header.SetContentLength(len(body))
		}
		return c.Next()
	}
}
