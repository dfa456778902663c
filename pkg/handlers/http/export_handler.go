package http

import (
	"github.com/NeuralTrust/TrustMask/pkg/common"
	"github.com/NeuralTrust/TrustMask/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type exportHandler struct {
	logger *logrus.Logger
}

func NewExportHandler(logger *logrus.Logger) Handler {
	return &exportHandler{logger: logger}
}

// Handle @Summary Export masked text
// @Description Returns already masked text as a downloadable plain text file
// @Tags Redaction
// @Accept json
// @Produce plain
// @Param request body request.ExportRequest true "Masked text"
// @Success 200 {file} file "maskelenmis_metin.txt"
// @Failure 400 {object} map[string]interface{} "Missing text"
// @Router /api/export [post]
func (h *exportHandler) Handle(c *fiber.Ctx) error {
	var req request.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to parse export request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": request.MsgMissingText})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": request.Message(err)})
	}

	c.Attachment(common.ExportFileName)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Status(fiber.StatusOK).SendString(req.MaskedText)
}
