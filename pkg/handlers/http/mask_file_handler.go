package http

import (
	"errors"
	"io"

	"github.com/NeuralTrust/TrustMask/pkg/app/document"
	"github.com/NeuralTrust/TrustMask/pkg/app/redaction"
	"github.com/NeuralTrust/TrustMask/pkg/domain"
	"github.com/NeuralTrust/TrustMask/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const fileFormField = "file"

type maskFileHandler struct {
	logger    *logrus.Logger
	service   redaction.Service
	extractor *document.Extractor
	maxSize   int64
}

// NewMaskFileHandler masks uploaded text and PDF documents. Files larger than
// maxSize bytes are rejected.
func NewMaskFileHandler(logger *logrus.Logger, service redaction.Service, maxSize int64) Handler {
	return &maskFileHandler{
		logger:    logger,
		service:   service,
		extractor: document.NewExtractor(maxSize),
		maxSize:   maxSize,
	}
}

// Handle @Summary Mask an uploaded document
// @Description Extracts the text of a .txt, .md, .csv, .html or .pdf upload, page breaks become newlines, and masks it
// @Tags Redaction
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Text or PDF document"
// @Success 200 {object} response.Success "Masked text and detections"
// @Failure 400 {object} response.Error "No file or unreadable PDF"
// @Failure 413 {object} response.Error "File too large"
// @Failure 415 {object} response.Error "Unsupported file type"
// @Router /api/mask_file [post]
func (h *maskFileHandler) Handle(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(fileFormField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("No file part"))
	}
	if fileHeader.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("No selected file"))
	}
	if !document.Supported(fileHeader.Filename) {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(response.Fail(domain.ErrUnsupportedFileType.Error()))
	}
	if h.maxSize > 0 && fileHeader.Size > h.maxSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(response.Fail("File too large"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.WithError(err).Error("failed to open uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail("failed to read file"))
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.logger.WithError(err).Error("failed to read uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail("failed to read file"))
	}

	text, err := h.extractor.Extract(fileHeader.Filename, raw)
	switch {
	case errors.Is(err, document.ErrTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(response.Fail("File too large"))
	case errors.Is(err, document.ErrInvalidPDF):
		h.logger.WithError(err).Debug("failed to read pdf")
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(document.ErrInvalidPDF.Error()))
	case err != nil:
		return handleServiceError(c, h.logger, err)
	}

	h.logger.WithFields(logrus.Fields{
		"bytes": len(raw),
	}).Debug("document extracted")

	result, err := h.service.AnalyzeAndMask(c.UserContext(), text)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(response.OK(result))
}
