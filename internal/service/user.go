package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// User exposes the superuser-gated account administration surface. Role
// gating itself happens in the transport middleware; this service assumes
// the caller has already passed it.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

// List returns every account as a stripped profile.
func (s *User) List(ctx context.Context) ([]model.Profile, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("User service: failed to list users",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}

	return profiles, nil
}

// Get returns one account as a stripped profile.
func (s *User) Get(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Profile{}, model.ErrNotFound
		}
		s.logger.Error("User service: failed to get user",
			"user_id", id,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user.Profile(), nil
}

// UpdatePrivileges patches the superuser/active flags of an account. An
// empty patch is a validation error, matching the admin endpoint contract.
func (s *User) UpdatePrivileges(ctx context.Context, id uuid.UUID, patch model.PrivilegesPatch) (model.Profile, error) {
	if patch.Empty() {
		return model.Profile{}, fmt.Errorf("%w: no updates provided", model.ErrValidation)
	}

	user, err := s.userStore.UpdatePrivileges(ctx, id, patch)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Profile{}, model.ErrNotFound
		}
		s.logger.Error("User service: failed to update privileges",
			"user_id", id,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to update privileges: %w", err)
	}

	s.logger.Info("User service: privileges updated",
		"user_id", id,
		"superuser", user.Superuser,
		"active", user.Active)

	return user.Profile(), nil
}
