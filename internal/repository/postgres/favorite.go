package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/auxesia/auxesia-server/internal/model"
)

var _ model.FavoriteStore = (*FavoriteRepository)(nil)

type FavoriteRepository struct {
	db *Connection
}

func NewFavoriteRepository(db *Connection) *FavoriteRepository {
	return &FavoriteRepository{
		db: db,
	}
}

// Toggle deletes the (user, meal) row and, when nothing was there to
// delete, inserts it. The delete attempt doubles as the existence check,
// and the composite primary key guarantees at most one row per pair even
// when toggles race.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, mealID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin toggle transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND meal_id = $2`, userID, mealID)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}

	favorited := false
	if tag.RowsAffected() == 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO favorites (user_id, meal_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, mealID)
		if err != nil {
			return false, fmt.Errorf("failed to insert favorite: %w", err)
		}
		favorited = true
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit toggle transaction: %w", err)
	}

	return favorited, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT meal_id FROM favorites WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var mealIDs []uuid.UUID
	for rows.Next() {
		var mealID uuid.UUID
		if err := rows.Scan(&mealID); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		mealIDs = append(mealIDs, mealID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return mealIDs, nil
}
