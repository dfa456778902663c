package http

import (
	"errors"

	"github.com/NeuralTrust/TrustMask/pkg/domain"
	"github.com/NeuralTrust/TrustMask/pkg/handlers/http/request"
	"github.com/NeuralTrust/TrustMask/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// parseMaskRequest decodes and validates a {"text"} body. It writes the 400
// response itself and returns ok=false when the request is rejected.
func parseMaskRequest(c *fiber.Ctx, logger *logrus.Logger) (string, bool, error) {
	var req request.MaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WithError(err).Debug("failed to parse request body")
		return "", false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": request.MsgTextRequired})
	}
	if err := req.Validate(); err != nil {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": request.Message(err)})
	}
	return *req.Text, true, nil
}

// handleServiceError maps a redaction error to its HTTP response.
func handleServiceError(c *fiber.Ctx, logger *logrus.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": request.MsgTextEmpty})
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(response.Fail(err.Error()))
	}
	logger.WithError(err).Error("failed to process text")
	return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
}
