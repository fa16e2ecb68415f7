package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// UserService defines the account administration operations.
type UserService interface {
	List(ctx context.Context) ([]model.Profile, error)
	Get(ctx context.Context, id uuid.UUID) (model.Profile, error)
	UpdatePrivileges(ctx context.Context, id uuid.UUID, patch model.PrivilegesPatch) (model.Profile, error)
}

// User handles the /users/me endpoint and the /admin/users group.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{userService: userService, contextManager: contextManager, logger: logger}
}

// Me returns the caller's own profile.
func (h *User) Me(c *fiber.Ctx) error {
	user, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return handleError(c, model.ErrUnauthorized)
	}
	return c.JSON(user.Profile())
}

// List returns every account. Superuser-gated by the router.
func (h *User) List(c *fiber.Ctx) error {
	profiles, err := h.userService.List(c.UserContext())
	if err != nil {
		h.logger.Error("User handler: failed to list users",
			"error", err.Error())
		return handleError(c, err)
	}
	return c.JSON(profiles)
}

// Get returns one account by id. Superuser-gated by the router.
func (h *User) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return handleError(c, fmt.Errorf("%w: malformed user id", model.ErrValidation))
	}

	profile, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(profile)
}

type privilegesRequest struct {
	Superuser *bool `json:"superuser"`
	Active    *bool `json:"active"`
}

// UpdatePrivileges patches an account's superuser and active flags.
// Superuser-gated by the router.
func (h *User) UpdatePrivileges(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return handleError(c, fmt.Errorf("%w: malformed user id", model.ErrValidation))
	}

	var req privilegesRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, fmt.Errorf("%w: malformed body", model.ErrValidation))
	}

	profile, err := h.userService.UpdatePrivileges(c.UserContext(), id, model.PrivilegesPatch{
		Superuser: req.Superuser,
		Active:    req.Active,
	})
	if err != nil {
		h.logger.Info("User handler: privileges update rejected",
			"user_id", id,
			"error", err.Error())
		return handleError(c, err)
	}
	return c.JSON(profile)
}
