package model

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteStore defines persistence operations for the (user, meal)
// favorites join table.
type FavoriteStore interface {
	// Toggle flips the favorite state for the pair and reports the
	// resulting state: true when the meal is now favorited.
	Toggle(ctx context.Context, userID, mealID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
