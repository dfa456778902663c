package http

import (
	"github.com/NeuralTrust/TrustMask/pkg/app/redaction"
	"github.com/NeuralTrust/TrustMask/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type maskHandler struct {
	logger  *logrus.Logger
	service redaction.Service
}

func NewMaskHandler(logger *logrus.Logger, service redaction.Service) Handler {
	return &maskHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Detect and mask sensitive data
// @Description Detects Turkish PII in the text and returns it masked together with the final detections
// @Tags Redaction
// @Accept json
// @Produce json
// @Param request body request.MaskRequest true "Text to mask"
// @Success 200 {object} response.Success "Masked text and detections"
// @Failure 400 {object} map[string]interface{} "Missing or empty text"
// @Failure 500 {object} response.Error "Detection failed"
// @Router /api/mask [post]
func (h *maskHandler) Handle(c *fiber.Ctx) error {
	text, ok, err := parseMaskRequest(c, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.AnalyzeAndMask(c.UserContext(), text)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(response.OK(result))
}
