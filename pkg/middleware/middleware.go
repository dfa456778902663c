package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

// Transport holds the middleware chain of the API server. Optional entries
// are nil when disabled.
type Transport struct {
	RecoverMiddleware   Middleware
	RequestIDMiddleware Middleware
	CORSMiddleware      Middleware
	MetricsMiddleware   Middleware
	DecodeMiddleware    Middleware
	AuthMiddleware      Middleware
	RateLimitMiddleware Middleware
}

// Global returns the handlers applied to every route, in order.
func (t Transport) Global() []fiber.Handler {
	return handlers(t.RecoverMiddleware, t.RequestIDMiddleware, t.CORSMiddleware, t.MetricsMiddleware)
}

// API returns the handlers applied to the /api group, in order.
func (t Transport) API() []fiber.Handler {
	return handlers(t.AuthMiddleware, t.RateLimitMiddleware, t.DecodeMiddleware)
}

func handlers(middlewares ...Middleware) []fiber.Handler {
	var out []fiber.Handler
	for _, m := range middlewares {
		if m != nil {
			out = append(out, m.Middleware())
		}
	}
	return out
}
