package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// FavoriteService defines the favorites toggle and listing operations.
type FavoriteService interface {
	Toggle(ctx context.Context, userID, mealID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Favorite handles the favorites endpoints.
type Favorite struct {
	favoriteService FavoriteService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// NewFavorite creates a new Favorite handler.
func NewFavorite(favoriteService FavoriteService, contextManager model.ContextManager, logger *logger.Logger) *Favorite {
	return &Favorite{favoriteService: favoriteService, contextManager: contextManager, logger: logger}
}

type toggleResponse struct {
	Favorited bool `json:"favorited"`
}

type favoritesResponse struct {
	MealIDs []uuid.UUID `json:"meal_ids"`
}

// Toggle flips the caller's favorite state for a meal and reports the
// resulting state.
func (h *Favorite) Toggle(c *fiber.Ctx) error {
	user, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return handleError(c, model.ErrUnauthorized)
	}

	id, err := mealID(c)
	if err != nil {
		return handleError(c, err)
	}

	favorited, err := h.favoriteService.Toggle(c.UserContext(), user.ID, id)
	if err != nil {
		h.logger.Info("Favorite handler: toggle rejected",
			"user_id", user.ID,
			"meal_id", id,
			"error", err.Error())
		return handleError(c, err)
	}
	return c.JSON(toggleResponse{Favorited: favorited})
}

// List returns the ids of meals the caller has favorited.
func (h *Favorite) List(c *fiber.Ctx) error {
	user, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return handleError(c, model.ErrUnauthorized)
	}

	ids, err := h.favoriteService.ListByUser(c.UserContext(), user.ID)
	if err != nil {
		h.logger.Error("Favorite handler: failed to list favorites",
			"user_id", user.ID,
			"error", err.Error())
		return handleError(c, err)
	}
	return c.JSON(favoritesResponse{MealIDs: ids})
}
