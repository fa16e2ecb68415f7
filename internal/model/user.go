package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	SetVerified(ctx context.Context, email string) (User, error)
	UpdatePrivileges(ctx context.Context, id uuid.UUID, patch PrivilegesPatch) (User, error)
	List(ctx context.Context) ([]User, error)
}

// User represents a stored account. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Verified     bool
	Active       bool
	Superuser    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the outward-facing projection of a user, with credential
// material stripped.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Verified  bool      `json:"verified"`
	Active    bool      `json:"active"`
	Superuser bool      `json:"superuser"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile strips sensitive fields from the user record.
func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Verified:  u.Verified,
		Active:    u.Active,
		Superuser: u.Superuser,
		CreatedAt: u.CreatedAt,
	}
}

// PrivilegesPatch carries the account flags a superuser may change.
// Nil fields are left untouched.
type PrivilegesPatch struct {
	Superuser *bool
	Active    *bool
}

// Empty reports whether the patch changes nothing.
func (p PrivilegesPatch) Empty() bool {
	return p.Superuser == nil && p.Active == nil
}
