package context

import (
	"context"

	"github.com/auxesia/auxesia-server/internal/model"
)

type ctxKey int

const userKey ctxKey = iota

// Manager stores and retrieves the authenticated user on a request
// context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a context carrying the resolved user record.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the user stored by the authenticate
// middleware. The boolean reports whether a user was present.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
