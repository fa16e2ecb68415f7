package handler

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// MealService defines recipe CRUD, image upload and moderation operations.
type MealService interface {
	Create(ctx context.Context, author string, meal model.Meal) (model.Meal, error)
	Get(ctx context.Context, id uuid.UUID) (model.Meal, error)
	List(ctx context.Context, filter model.MealFilter) ([]model.Meal, error)
	Update(ctx context.Context, id uuid.UUID, caller string, patch model.MealPatch) (model.Meal, error)
	Delete(ctx context.Context, id uuid.UUID, caller string) error
	UpdateImage(ctx context.Context, id uuid.UUID, caller, contentType string, reader io.Reader, size int64) (model.Meal, error)
	ListPending(ctx context.Context) ([]model.Meal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.MealStatus) (model.Meal, error)
}

// Meal handles the /meals endpoints and the /admin/meals group.
type Meal struct {
	mealService    MealService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewMeal creates a new Meal handler.
func NewMeal(mealService MealService, contextManager model.ContextManager, logger *logger.Logger) *Meal {
	return &Meal{mealService: mealService, contextManager: contextManager, logger: logger}
}

type mealResponse struct {
	ID           uuid.UUID          `json:"id"`
	Author       string             `json:"author"`
	Name         string             `json:"name"`
	Category     string             `json:"category,omitempty"`
	Area         string             `json:"area,omitempty"`
	Instructions string             `json:"instructions"`
	YoutubeURL   string             `json:"youtube_url,omitempty"`
	ImageURL     string             `json:"image_url,omitempty"`
	Ingredients  []model.Ingredient `json:"ingredients"`
	Status       model.MealStatus   `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func toMealResponse(m model.Meal) mealResponse {
	return mealResponse{
		ID:           m.ID,
		Author:       m.Author,
		Name:         m.Name,
		Category:     m.Category,
		Area:         m.Area,
		Instructions: m.Instructions,
		YoutubeURL:   m.YoutubeURL,
		ImageURL:     m.ImageURL,
		Ingredients:  m.Ingredients,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toMealResponses(meals []model.Meal) []mealResponse {
	out := make([]mealResponse, 0, len(meals))
	for _, m := range meals {
		out = append(out, toMealResponse(m))
	}
	return out
}

type createMealRequest struct {
	Name         string             `json:"name"`
	Category     string             `json:"category"`
	Area         string             `json:"area"`
	Instructions string             `json:"instructions"`
	YoutubeURL   string             `json:"youtube_url"`
	Ingredients  []model.Ingredient `json:"ingredients"`
}

func (r createMealRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Instructions, validation.Required),
	)
}

type updateMealRequest struct {
	Name         *string            `json:"name"`
	Category     *string            `json:"category"`
	Area         *string            `json:"area"`
	Instructions *string            `json:"instructions"`
	YoutubeURL   *string            `json:"youtube_url"`
	Ingredients  []model.Ingredient `json:"ingredients"`
}

func (h *Meal) caller(c *fiber.Ctx) (model.User, error) {
	user, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return model.User{}, model.ErrUnauthorized
	}
	return user, nil
}

func mealID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed meal id", model.ErrValidation)
	}
	return id, nil
}

// Create submits a new meal authored by the caller.
func (h *Meal) Create(c *fiber.Ctx) error {
	user, err := h.caller(c)
	if err != nil {
		return handleError(c, err)
	}

	var req createMealRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, fmt.Errorf("%w: malformed body", model.ErrValidation))
	}
	if err := req.Validate(); err != nil {
		return handleError(c, fmt.Errorf("%w: %s", model.ErrValidation, err))
	}

	meal, err := h.mealService.Create(c.UserContext(), user.Email, model.Meal{
		Name:         req.Name,
		Category:     req.Category,
		Area:         req.Area,
		Instructions: req.Instructions,
		YoutubeURL:   req.YoutubeURL,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		h.logger.Error("Meal handler: failed to create meal",
			"author", user.Email,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toMealResponse(meal))
}

// Get returns one meal by id.
func (h *Meal) Get(c *fiber.Ctx) error {
	id, err := mealID(c)
	if err != nil {
		return handleError(c, err)
	}

	meal, err := h.mealService.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toMealResponse(meal))
}

// List returns meals matching the query filters.
func (h *Meal) List(c *fiber.Ctx) error {
	filter := model.MealFilter{
		Search:     c.Query("search"),
		Ingredient: c.Query("ingredient"),
		Area:       c.Query("area"),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return handleError(c, fmt.Errorf("%w: malformed limit", model.ErrValidation))
		}
		filter.Limit = n
	}

	meals, err := h.mealService.List(c.UserContext(), filter)
	if err != nil {
		h.logger.Error("Meal handler: failed to list meals",
			"error", err.Error())
		return handleError(c, err)
	}
	return c.JSON(toMealResponses(meals))
}

// Update applies a partial update to a meal the caller owns.
func (h *Meal) Update(c *fiber.Ctx) error {
	user, err := h.caller(c)
	if err != nil {
		return handleError(c, err)
	}

	id, err := mealID(c)
	if err != nil {
		return handleError(c, err)
	}

	var req updateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, fmt.Errorf("%w: malformed body", model.ErrValidation))
	}

	meal, err := h.mealService.Update(c.UserContext(), id, user.Email, model.MealPatch{
		Name:         req.Name,
		Category:     req.Category,
		Area:         req.Area,
		Instructions: req.Instructions,
		YoutubeURL:   req.YoutubeURL,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toMealResponse(meal))
}

// Delete removes a meal the caller owns.
func (h *Meal) Delete(c *fiber.Ctx) error {
	user, err := h.caller(c)
	if err != nil {
		return handleError(c, err)
	}

	id, err := mealID(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.mealService.Delete(c.UserContext(), id, user.Email); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateImage replaces the meal image from a multipart upload.
func (h *Meal) UpdateImage(c *fiber.Ctx) error {
	user, err := h.caller(c)
	if err != nil {
		return handleError(c, err)
	}

	id, err := mealID(c)
	if err != nil {
		return handleError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return handleError(c, fmt.Errorf("%w: image file is required", model.ErrValidation))
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Meal handler: failed to open uploaded file",
			"meal_id", id,
			"error", err.Error())
		return handleError(c, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	meal, err := h.mealService.UpdateImage(c.UserContext(), id, user.Email, contentType, file, fileHeader.Size)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toMealResponse(meal))
}

// ListPending returns the moderation queue. Superuser-gated by the router.
func (h *Meal) ListPending(c *fiber.Ctx) error {
	meals, err := h.mealService.ListPending(c.UserContext())
	if err != nil {
		h.logger.Error("Meal handler: failed to list pending meals",
			"error", err.Error())
		return handleError(c, err)
	}
	return c.JSON(toMealResponses(meals))
}

type statusRequest struct {
	Status model.MealStatus `json:"status"`
}

// UpdateStatus moves a meal through moderation. Superuser-gated by the
// router.
func (h *Meal) UpdateStatus(c *fiber.Ctx) error {
	id, err := mealID(c)
	if err != nil {
		return handleError(c, err)
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, fmt.Errorf("%w: malformed body", model.ErrValidation))
	}

	meal, err := h.mealService.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toMealResponse(meal))
}
