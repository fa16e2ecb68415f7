package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/auxesia/auxesia-server/internal/model"
)

var _ model.MealStore = (*MealRepository)(nil)

type MealRepository struct {
	db *Connection
}

func NewMealRepository(db *Connection) *MealRepository {
	return &MealRepository{
		db: db,
	}
}

const mealColumns = `id, author, name, category, area, instructions, youtube_url, image_url, ingredients, status, created_at, updated_at`

func scanMeal(row pgx.Row) (model.Meal, error) {
	var meal model.Meal
	var ingredients []byte
	err := row.Scan(
		&meal.ID, &meal.Author, &meal.Name, &meal.Category, &meal.Area,
		&meal.Instructions, &meal.YoutubeURL, &meal.ImageURL,
		&ingredients, &meal.Status, &meal.CreatedAt, &meal.UpdatedAt,
	)
	if err != nil {
		return model.Meal{}, err
	}
	if err := json.Unmarshal(ingredients, &meal.Ingredients); err != nil {
		return model.Meal{}, fmt.Errorf("failed to decode ingredients: %w", err)
	}
	return meal, nil
}

func (r *MealRepository) Create(ctx context.Context, meal model.Meal) (model.Meal, error) {
	ingredients, err := json.Marshal(meal.Ingredients)
	if err != nil {
		return model.Meal{}, fmt.Errorf("failed to encode ingredients: %w", err)
	}

	query := `INSERT INTO meals (id, author, name, category, area, instructions, youtube_url, image_url, ingredients, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + mealColumns

	savedMeal, err := scanMeal(r.db.QueryRow(ctx, query,
		meal.ID, meal.Author, meal.Name, meal.Category, meal.Area,
		meal.Instructions, meal.YoutubeURL, meal.ImageURL,
		ingredients, meal.Status, meal.CreatedAt, meal.UpdatedAt,
	))
	if err != nil {
		return model.Meal{}, fmt.Errorf("failed to create meal: %w", err)
	}

	return savedMeal, nil
}

func (r *MealRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1`

	meal, err := scanMeal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Meal{}, model.ErrNotFound
		}
		return model.Meal{}, fmt.Errorf("failed to get meal by id: %w", err)
	}

	return meal, nil
}

func (r *MealRepository) List(ctx context.Context, filter model.MealFilter) ([]model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE TRUE`
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.Ingredient != "" {
		args = append(args, filter.Ingredient)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(ingredients) AS ing
			WHERE ing->>'name' ILIKE '%%' || $%d || '%%')`, len(args))
	}
	if filter.Area != "" {
		args = append(args, "%"+filter.Area+"%")
		query += fmt.Sprintf(" AND area ILIKE $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	return collectMeals(rows)
}

func (r *MealRepository) ListByStatus(ctx context.Context, status model.MealStatus) ([]model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE status = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals by status: %w", err)
	}
	defer rows.Close()

	return collectMeals(rows)
}

func collectMeals(rows pgx.Rows) ([]model.Meal, error) {
	var meals []model.Meal
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}
	return meals, nil
}

func (r *MealRepository) Update(ctx context.Context, id uuid.UUID, patch model.MealPatch) (model.Meal, error) {
	var ingredients []byte
	if patch.Ingredients != nil {
		encoded, err := json.Marshal(patch.Ingredients)
		if err != nil {
			return model.Meal{}, fmt.Errorf("failed to encode ingredients: %w", err)
		}
		ingredients = encoded
	}

	query := `UPDATE meals SET
				name = COALESCE($2, name),
				category = COALESCE($3, category),
				area = COALESCE($4, area),
				instructions = COALESCE($5, instructions),
				youtube_url = COALESCE($6, youtube_url),
				image_url = COALESCE($7, image_url),
				ingredients = COALESCE($8, ingredients),
				updated_at = now()
			  WHERE id = $1
			  RETURNING ` + mealColumns

	meal, err := scanMeal(r.db.QueryRow(ctx, query,
		id, patch.Name, patch.Category, patch.Area,
		patch.Instructions, patch.YoutubeURL, patch.ImageURL, ingredients,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Meal{}, model.ErrNotFound
		}
		return model.Meal{}, fmt.Errorf("failed to update meal: %w", err)
	}

	return meal, nil
}

func (r *MealRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MealStatus) (model.Meal, error) {
	query := `UPDATE meals SET status = $2, updated_at = now()
			  WHERE id = $1
			  RETURNING ` + mealColumns

	meal, err := scanMeal(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Meal{}, model.ErrNotFound
		}
		return model.Meal{}, fmt.Errorf("failed to update meal status: %w", err)
	}

	return meal, nil
}

func (r *MealRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
