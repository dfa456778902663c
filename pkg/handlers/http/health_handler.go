package http

import (
	"github.com/NeuralTrust/TrustMask/pkg/handlers/http/response"
	"github.com/NeuralTrust/TrustMask/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const serviceName = "KVKK Compliant Data Masking API"

var features = []string{
	"Turkish ID validation",
	"Credit card masking (Luhn validated)",
	"Turkish address component detection",
	"Medical information masking",
	"Enhanced location detection",
	"NLP-based entity recognition",
}

// StatusReporter reports the state of an optional dependency.
type StatusReporter interface {
	Status() string
}

type healthHandler struct {
	logger *logrus.Logger
	ner    StatusReporter
}

func NewHealthHandler(logger *logrus.Logger, ner StatusReporter) Handler {
	return &healthHandler{
		logger: logger,
		ner:    ner,
	}
}

// Handle @Summary Service health
// @Description Reports service status, the enabled features and the entity recognizer state
// @Tags Health
// @Produce json
// @Success 200 {object} response.Health
// @Router /api/health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	nerStatus := "disabled"
	if h.ner != nil {
		nerStatus = h.ner.Status()
	}
	return c.Status(fiber.StatusOK).JSON(response.Health{
		Status:   "healthy",
		Service:  serviceName,
		Version:  version.Version,
		Features: features,
		NER:      nerStatus,
	})
}
