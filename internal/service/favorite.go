package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// Favorite implements the idempotent favorites toggle.
type Favorite struct {
	favoriteStore model.FavoriteStore
	mealStore     model.MealStore
	logger        *logger.Logger
}

func NewFavorite(favoriteStore model.FavoriteStore, mealStore model.MealStore, logger *logger.Logger) *Favorite {
	return &Favorite{
		favoriteStore: favoriteStore,
		mealStore:     mealStore,
		logger:        logger,
	}
}

// Toggle flips the favorite state for (user, meal) and reports whether
// the meal is now favorited. A toggle on a missing meal is NotFound.
func (s *Favorite) Toggle(ctx context.Context, userID, mealID uuid.UUID) (bool, error) {
	if _, err := s.mealStore.GetByID(ctx, mealID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, model.ErrNotFound
		}
		return false, fmt.Errorf("failed to get meal: %w", err)
	}

	favorited, err := s.favoriteStore.Toggle(ctx, userID, mealID)
	if err != nil {
		s.logger.Error("Favorite service: failed to toggle favorite",
			"user_id", userID,
			"meal_id", mealID,
			"error", err.Error())
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.logger.Info("Favorite service: favorite toggled",
		"user_id", userID,
		"meal_id", mealID,
		"favorited", favorited)

	return favorited, nil
}

// ListByUser returns the ids of meals the user has favorited.
func (s *Favorite) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	mealIDs, err := s.favoriteStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Favorite service: failed to list favorites",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return mealIDs, nil
}
