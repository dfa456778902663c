package http

import (
	"github.com/NeuralTrust/TrustMask/pkg/app/document"
	"github.com/NeuralTrust/TrustMask/pkg/common"
	"github.com/NeuralTrust/TrustMask/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type exportPDFHandler struct {
	logger *logrus.Logger
	writer *document.PDFWriter
}

func NewExportPDFHandler(logger *logrus.Logger, writer *document.PDFWriter) Handler {
	return &exportPDFHandler{logger: logger, writer: writer}
}

// Handle @Summary Export masked text as PDF
// @Description Renders already masked text into a downloadable PDF document
// @Tags Redaction
// @Accept json
// @Produce application/pdf
// @Param request body request.ExportRequest true "Masked text"
// @Success 200 {file} file "maskelenmis_metin.pdf"
// @Failure 400 {object} map[string]interface{} "Missing text"
// @Failure 500 {object} map[string]interface{} "Rendering failed"
// @Router /api/export_pdf [post]
func (h *exportPDFHandler) Handle(c *fiber.Ctx) error {
	var req request.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to parse export request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": request.MsgMissingText})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": request.Message(err)})
	}

	out, err := h.writer.Render(req.MaskedText)
	if err != nil {
		h.logger.WithError(err).Error("failed to render pdf")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Attachment(common.ExportPDFFileName)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Status(fiber.StatusOK).Send(out)
}
