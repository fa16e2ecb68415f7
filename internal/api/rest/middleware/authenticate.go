package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// TokenResolver resolves a bearer token to the live user record.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the resolved user
// into the request context. Every failure mode is a uniform 401.
type Authenticate struct {
	resolver       TokenResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver TokenResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, resolves the token and stores
// the user on the request context.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return unauthorized(c)
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" {
		return unauthorized(c)
	}

	user, err := m.resolver.ResolveToken(c.UserContext(), tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"error", err.Error())
		return unauthorized(c)
	}

	c.SetUserContext(m.contextManager.SetUserToContext(c.UserContext(), user))
	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "unauthorized"})
}
