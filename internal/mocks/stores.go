// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/auxesia/auxesia-server/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) SetVerified(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdatePrivileges(ctx context.Context, id uuid.UUID, patch model.PrivilegesPatch) (model.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MealStore is a mock implementation of model.MealStore.
type MealStore struct {
	mock.Mock
}

func (m *MealStore) Create(ctx context.Context, meal model.Meal) (model.Meal, error) {
	args := m.Called(ctx, meal)
	return args.Get(0).(model.Meal), args.Error(1)
}

func (m *MealStore) GetByID(ctx context.Context, id uuid.UUID) (model.Meal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Meal), args.Error(1)
}

func (m *MealStore) List(ctx context.Context, filter model.MealFilter) ([]model.Meal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meal), args.Error(1)
}

func (m *MealStore) ListByStatus(ctx context.Context, status model.MealStatus) ([]model.Meal, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meal), args.Error(1)
}

func (m *MealStore) Update(ctx context.Context, id uuid.UUID, patch model.MealPatch) (model.Meal, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Meal), args.Error(1)
}

func (m *MealStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MealStatus) (model.Meal, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(model.Meal), args.Error(1)
}

func (m *MealStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FavoriteStore is a mock implementation of model.FavoriteStore.
type FavoriteStore struct {
	mock.Mock
}

func (m *FavoriteStore) Toggle(ctx context.Context, userID, mealID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, mealID)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
