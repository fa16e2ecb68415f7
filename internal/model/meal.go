package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MealStatus is the moderation state of a submitted meal.
type MealStatus string

const (
	MealStatusPending  MealStatus = "pending"
	MealStatusApproved MealStatus = "approved"
	MealStatusRejected MealStatus = "rejected"
)

// Valid reports whether s is one of the known moderation states.
func (s MealStatus) Valid() bool {
	switch s {
	case MealStatusPending, MealStatusApproved, MealStatusRejected:
		return true
	}
	return false
}

// Ingredient is a single recipe ingredient with its measure.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Meal represents a recipe record. Author holds the creator's email and
// is the subject of ownership checks.
type Meal struct {
	ID           uuid.UUID
	Author       string
	Name         string
	Category     string
	Area         string
	Instructions string
	YoutubeURL   string
	ImageURL     string
	Ingredients  []Ingredient
	Status       MealStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MealPatch carries a partial update to a meal. Nil fields are ignored.
type MealPatch struct {
	Name         *string
	Category     *string
	Area         *string
	Instructions *string
	YoutubeURL   *string
	ImageURL     *string
	Ingredients  []Ingredient
}

// Empty reports whether the patch changes nothing.
func (p MealPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Area == nil &&
		p.Instructions == nil && p.YoutubeURL == nil && p.ImageURL == nil &&
		p.Ingredients == nil
}

// MealFilter narrows a meal listing. Zero values mean "no constraint".
type MealFilter struct {
	Search     string
	Ingredient string
	Area       string
	Limit      int
}

// MealStore defines persistence operations for meals.
type MealStore interface {
	Create(ctx context.Context, meal Meal) (Meal, error)
	GetByID(ctx context.Context, id uuid.UUID) (Meal, error)
	List(ctx context.Context, filter MealFilter) ([]Meal, error)
	ListByStatus(ctx context.Context, status MealStatus) ([]Meal, error)
	Update(ctx context.Context, id uuid.UUID, patch MealPatch) (Meal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status MealStatus) (Meal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Ownership is the tagged result of an ownership check. A missing meal is
// reported distinctly so callers can answer 404 instead of 403.
type Ownership int

const (
	OwnershipMissing Ownership = iota
	OwnershipNotOwner
	OwnershipOwner
)
