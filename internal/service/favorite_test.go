package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/auxesia/auxesia-server/internal/mocks"
	"github.com/auxesia/auxesia-server/internal/model"
	"github.com/auxesia/auxesia-server/internal/testutil"
)

func newFavoriteFixture() (*Favorite, *mocks.FavoriteStore, *mocks.MealStore) {
	favoriteStore := &mocks.FavoriteStore{}
	mealStore := &mocks.MealStore{}
	return NewFavorite(favoriteStore, mealStore, testutil.MakeNoopLogger()), favoriteStore, mealStore
}

func TestFavorite_Toggle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	mealID := uuid.New()

	t.Run("favoriting", func(t *testing.T) {
		s, favoriteStore, mealStore := newFavoriteFixture()
		mealStore.On("GetByID", mock.Anything, mealID).Return(model.Meal{ID: mealID}, nil)
		favoriteStore.On("Toggle", mock.Anything, userID, mealID).Return(true, nil)

		favorited, err := s.Toggle(ctx, userID, mealID)
		require.NoError(t, err)
		assert.True(t, favorited)
	})

	t.Run("unfavoriting", func(t *testing.T) {
		s, favoriteStore, mealStore := newFavoriteFixture()
		mealStore.On("GetByID", mock.Anything, mealID).Return(model.Meal{ID: mealID}, nil)
		favoriteStore.On("Toggle", mock.Anything, userID, mealID).Return(false, nil)

		favorited, err := s.Toggle(ctx, userID, mealID)
		require.NoError(t, err)
		assert.False(t, favorited)
	})

	t.Run("missing meal", func(t *testing.T) {
		s, favoriteStore, mealStore := newFavoriteFixture()
		mealStore.On("GetByID", mock.Anything, mealID).Return(model.Meal{}, model.ErrNotFound)

		_, err := s.Toggle(ctx, userID, mealID)
		require.ErrorIs(t, err, model.ErrNotFound)
		favoriteStore.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFavorite_ListByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	s, favoriteStore, _ := newFavoriteFixture()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	favoriteStore.On("ListByUser", mock.Anything, userID).Return(ids, nil)

	got, err := s.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}
