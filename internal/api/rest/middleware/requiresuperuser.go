package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// RequireSuperuser rejects authenticated callers without the superuser
// flag. Runs after Authenticate, so a missing user means the request
// skipped authentication and is a 401, not a 403.
type RequireSuperuser struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRequireSuperuser creates a new RequireSuperuser middleware instance.
func NewRequireSuperuser(contextManager model.ContextManager, logger *logger.Logger) *RequireSuperuser {
	return &RequireSuperuser{contextManager: contextManager, logger: logger}
}

// Handle checks the superuser flag of the resolved user.
func (m *RequireSuperuser) Handle(c *fiber.Ctx) error {
	user, ok := m.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return unauthorized(c)
	}

	if !user.Superuser {
		m.logger.Info("RequireSuperuser middleware: access denied",
			"user_id", user.ID,
			"path", c.Path())
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "forbidden"})
	}

	return c.Next()
}
