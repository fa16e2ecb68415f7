package model

import "context"

// ContextManager stores and retrieves the resolved caller identity on a
// request context. The stored value is always a fresh read of the user
// record, never a cached token decode.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user User) context.Context
	GetUserFromContext(ctx context.Context) (User, bool)
}
