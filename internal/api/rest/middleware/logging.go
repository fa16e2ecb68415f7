package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/auxesia/auxesia-server/internal/logger"
)

// Logging logs each HTTP request with method, path, duration and status.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs the request around the downstream handlers.
func (l *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	duration := time.Since(start)
	status := c.Response().StatusCode()

	l.logger.Info("HTTP request completed",
		"method", c.Method(),
		"path", c.Path(),
		"duration_ms", duration.Milliseconds(),
		"status", status)

	if err != nil {
		l.logger.Error("HTTP request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error())
	}

	return err
}
