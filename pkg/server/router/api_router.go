package router

import (
	"errors"

	handlers "github.com/NeuralTrust/TrustMask/pkg/handlers/http"
	"github.com/NeuralTrust/TrustMask/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const (
	SwaggerPath = "/swagger.json"
	SwaggerFile = "./docs/swagger.json"
)

var (
	ErrInvalidHandlerTransport = errors.New("invalid handler transport")
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h.MaskHandler == nil || h.AnalyzeHandler == nil || h.MaskFileHandler == nil ||
		h.ExportHandler == nil || h.ExportPDFHandler == nil || h.HealthHandler == nil ||
		h.GetVersionHandler == nil {
		return ErrInvalidHandlerTransport
	}

	router.Static(SwaggerPath, SwaggerFile)
	router.Get("/docs/*", swagger.New(swagger.Config{
		URL: SwaggerPath,
	}))

	router.Get("/version", h.GetVersionHandler.Handle)

	// registered before the group middlewares so it stays unauthenticated
	router.Get("/api/health", h.HealthHandler.Handle)

	api := router.Group("/api")
	{
		if mws := r.middlewareTransport.API(); len(mws) > 0 {
			for _, mw := range mws {
				api.Use(mw)
			}
		}

		api.Post("/mask", h.MaskHandler.Handle)
		api.Post("/analyze", h.AnalyzeHandler.Handle)
		api.Post("/mask_file", h.MaskFileHandler.Handle)
		api.Post("/export", h.ExportHandler.Handle)
		api.Post("/export_pdf", h.ExportPDFHandler.Handle)
	}
	return nil
}
