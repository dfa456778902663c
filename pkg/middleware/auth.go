package middleware

import (
	"strings"

	"github.com/NeuralTrust/TrustMask/pkg/common"
	"github.com/NeuralTrust/TrustMask/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type authMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

// NewAuthMiddleware requires a valid bearer token issued by jwtManager.
func NewAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &authMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Method() == fiber.MethodOptions {
			return ctx.Next()
		}

		authHeader := ctx.Get(common.AuthorizationHeader)
		if authHeader == "" {
			m.logger.Debug("no authorization header provided")
			return unauthorized(ctx, "Authorization required")
		}
		if !strings.HasPrefix(authHeader, common.BearerPrefix) {
			m.logger.Debug("invalid authorization header format")
			return unauthorized(ctx, "Invalid authorization format")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, common.BearerPrefix))
		if tokenString == "" {
			m.logger.Debug("empty token provided")
			return unauthorized(ctx, "Empty token provided")
		}

		claims, err := m.jwtManager.ValidateToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Debug("invalid token")
			return unauthorized(ctx, "Invalid token")
		}

		ctx.Locals(common.SubjectContextKey, claims.Subject)
		return ctx.Next()
	}
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": message})
}
