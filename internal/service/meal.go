package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// Meal implements the recipe collaborator surface: CRUD, image upload and
// the moderation queue. Every mutation on an existing meal passes the
// ownership gate first.
type Meal struct {
	mealStore model.MealStore
	images    model.ImageStore
	logger    *logger.Logger
}

func NewMeal(mealStore model.MealStore, images model.ImageStore, logger *logger.Logger) *Meal {
	return &Meal{
		mealStore: mealStore,
		images:    images,
		logger:    logger,
	}
}

// Create inserts a meal authored by the caller, pending moderation.
func (s *Meal) Create(ctx context.Context, author string, meal model.Meal) (model.Meal, error) {
	now := time.Now()
	meal.ID = uuid.New()
	meal.Author = author
	meal.Status = model.MealStatusPending
	meal.CreatedAt = now
	meal.UpdatedAt = now

	created, err := s.mealStore.Create(ctx, meal)
	if err != nil {
		s.logger.Error("Meal service: failed to create meal",
			"author", author,
			"error", err.Error())
		return model.Meal{}, fmt.Errorf("failed to create meal: %w", err)
	}

	s.logger.Info("Meal service: meal created",
		"meal_id", created.ID,
		"author", author)

	return created, nil
}

func (s *Meal) Get(ctx context.Context, id uuid.UUID) (model.Meal, error) {
	meal, err := s.mealStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Meal{}, model.ErrNotFound
		}
		return model.Meal{}, fmt.Errorf("failed to get meal: %w", err)
	}
	return meal, nil
}

func (s *Meal) List(ctx context.Context, filter model.MealFilter) ([]model.Meal, error) {
	meals, err := s.mealStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("Meal service: failed to list meals",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// CheckOwner reports whether email owns the meal. A missing meal comes
// back as OwnershipMissing, distinct from OwnershipNotOwner, so callers
// can answer 404 instead of 403.
func (s *Meal) CheckOwner(ctx context.Context, id uuid.UUID, email string) (model.Ownership, error) {
	meal, err := s.mealStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.OwnershipMissing, nil
		}
		return model.OwnershipMissing, fmt.Errorf("failed to get meal for ownership check: %w", err)
	}

	if meal.Author != email {
		return model.OwnershipNotOwner, nil
	}

	return model.OwnershipOwner, nil
}

func (s *Meal) guardOwner(ctx context.Context, id uuid.UUID, email string) error {
	ownership, err := s.CheckOwner(ctx, id, email)
	if err != nil {
		return err
	}
	switch ownership {
	case model.OwnershipMissing:
		return model.ErrNotFound
	case model.OwnershipNotOwner:
		return model.ErrForbidden
	}
	return nil
}

// Update applies a partial update after the ownership gate. An empty
// patch is a validation error.
func (s *Meal) Update(ctx context.Context, id uuid.UUID, caller string, patch model.MealPatch) (model.Meal, error) {
	if patch.Empty() {
		return model.Meal{}, fmt.Errorf("%w: no updates provided", model.ErrValidation)
	}

	if err := s.guardOwner(ctx, id, caller); err != nil {
		return model.Meal{}, err
	}

	meal, err := s.mealStore.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Meal{}, model.ErrNotFound
		}
		s.logger.Error("Meal service: failed to update meal",
			"meal_id", id,
			"error", err.Error())
		return model.Meal{}, fmt.Errorf("failed to update meal: %w", err)
	}

	return meal, nil
}

// Delete removes a meal after the ownership gate.
func (s *Meal) Delete(ctx context.Context, id uuid.UUID, caller string) error {
	if err := s.guardOwner(ctx, id, caller); err != nil {
		return err
	}

	if err := s.mealStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		s.logger.Error("Meal service: failed to delete meal",
			"meal_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	s.logger.Info("Meal service: meal deleted",
		"meal_id", id)

	return nil
}

// UpdateImage stores a new image in object storage and points the meal at
// its public URL. Only image content types are accepted.
func (s *Meal) UpdateImage(ctx context.Context, id uuid.UUID, caller, contentType string, reader io.Reader, size int64) (model.Meal, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return model.Meal{}, fmt.Errorf("%w: file must be an image", model.ErrValidation)
	}

	if err := s.guardOwner(ctx, id, caller); err != nil {
		return model.Meal{}, err
	}

	key := fmt.Sprintf("meals/%s", uuid.New())
	if err := s.images.Upload(ctx, key, contentType, reader, size); err != nil {
		s.logger.Error("Meal service: failed to upload image",
			"meal_id", id,
			"error", err.Error())
		return model.Meal{}, fmt.Errorf("failed to upload image: %w", err)
	}

	imageURL := s.images.URL(key)
	meal, err := s.mealStore.Update(ctx, id, model.MealPatch{ImageURL: &imageURL})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Meal{}, model.ErrNotFound
		}
		s.logger.Error("Meal service: failed to save image url",
			"meal_id", id,
			"error", err.Error())
		return model.Meal{}, fmt.Errorf("failed to save image url: %w", err)
	}

	s.logger.Info("Meal service: image updated",
		"meal_id", id,
		"image_url", imageURL)

	return meal, nil
}

// ListPending returns the moderation queue. Superuser-gated upstream.
func (s *Meal) ListPending(ctx context.Context) ([]model.Meal, error) {
	meals, err := s.mealStore.ListByStatus(ctx, model.MealStatusPending)
	if err != nil {
		s.logger.Error("Meal service: failed to list pending meals",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list pending meals: %w", err)
	}
	return meals, nil
}

// UpdateStatus moves a meal through the moderation states. Superuser-gated
// upstream.
func (s *Meal) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MealStatus) (model.Meal, error) {
	if !status.Valid() {
		return model.Meal{}, fmt.Errorf("%w: unknown status %q", model.ErrValidation, status)
	}

	meal, err := s.mealStore.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Meal{}, model.ErrNotFound
		}
		s.logger.Error("Meal service: failed to update status",
			"meal_id", id,
			"error", err.Error())
		return model.Meal{}, fmt.Errorf("failed to update status: %w", err)
	}

	s.logger.Info("Meal service: status updated",
		"meal_id", id,
		"status", status)

	return meal, nil
}
