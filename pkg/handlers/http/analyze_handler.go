package http

import (
	"github.com/NeuralTrust/TrustMask/pkg/app/redaction"
	"github.com/NeuralTrust/TrustMask/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type analyzeHandler struct {
	logger  *logrus.Logger
	service redaction.Service
}

func NewAnalyzeHandler(logger *logrus.Logger, service redaction.Service) Handler {
	return &analyzeHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Analyze text
// @Description Returns the raw output of each detector, without merging, overlap resolution or masking
// @Tags Redaction
// @Accept json
// @Produce json
// @Param request body request.MaskRequest true "Text to analyze"
// @Success 200 {object} response.Success "Per detector detections"
// @Failure 400 {object} map[string]interface{} "Missing or empty text"
// @Failure 500 {object} response.Error "Detection failed"
// @Router /api/analyze [post]
func (h *analyzeHandler) Handle(c *fiber.Ctx) error {
	text, ok, err := parseMaskRequest(c, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.Analyze(c.UserContext(), text)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(response.OK(result))
}
