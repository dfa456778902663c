package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Redaction
	MaskHandler      Handler
	AnalyzeHandler   Handler
	MaskFileHandler  Handler
	ExportHandler    Handler
	ExportPDFHandler Handler

	// Service
	HealthHandler     Handler
	GetVersionHandler Handler
}
