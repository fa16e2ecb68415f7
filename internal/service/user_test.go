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

func newUserFixture() (*User, *mocks.UserStore) {
	userStore := &mocks.UserStore{}
	return NewUser(userStore, testutil.MakeNoopLogger()), userStore
}

func TestUser_List(t *testing.T) {
	ctx := context.Background()
	s, userStore := newUserFixture()

	users := []model.User{
		{ID: uuid.New(), Email: "a@b.com", PasswordHash: "$secret$"},
		{ID: uuid.New(), Email: "c@d.com", PasswordHash: "$secret$"},
	}
	userStore.On("List", mock.Anything).Return(users, nil)

	profiles, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "a@b.com", profiles[0].Email)
}

func TestUser_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		s, userStore := newUserFixture()
		userStore.On("GetByID", mock.Anything, id).Return(model.User{ID: id, Email: "a@b.com"}, nil)

		profile, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, profile.ID)
	})

	t.Run("missing", func(t *testing.T) {
		s, userStore := newUserFixture()
		userStore.On("GetByID", mock.Anything, id).Return(model.User{}, model.ErrNotFound)

		_, err := s.Get(ctx, id)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestUser_UpdatePrivileges(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	truth := true

	t.Run("empty patch rejected", func(t *testing.T) {
		s, userStore := newUserFixture()

		_, err := s.UpdatePrivileges(ctx, id, model.PrivilegesPatch{})
		require.ErrorIs(t, err, model.ErrValidation)
		userStore.AssertNotCalled(t, "UpdatePrivileges", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("promote to superuser", func(t *testing.T) {
		s, userStore := newUserFixture()
		patch := model.PrivilegesPatch{Superuser: &truth}
		userStore.On("UpdatePrivileges", mock.Anything, id, patch).Return(model.User{ID: id, Superuser: true}, nil)

		profile, err := s.UpdatePrivileges(ctx, id, patch)
		require.NoError(t, err)
		assert.True(t, profile.Superuser)
	})

	t.Run("missing user", func(t *testing.T) {
		s, userStore := newUserFixture()
		patch := model.PrivilegesPatch{Superuser: &truth}
		userStore.On("UpdatePrivileges", mock.Anything, id, patch).Return(model.User{}, model.ErrNotFound)

		_, err := s.UpdatePrivileges(ctx, id, patch)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
