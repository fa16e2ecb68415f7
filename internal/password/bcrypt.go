package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/auxesia/auxesia-server/internal/model"
)

// Hasher hashes and verifies passwords with bcrypt. The salt is embedded
// in the produced hash, so no extra storage is needed.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the default bcrypt cost.
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash produces a salted one-way hash of the plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: empty password", model.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify compares the plaintext against a stored hash. Any mismatch,
// including a malformed stored hash, is reported as ErrIncorrectPassword
// so callers cannot distinguish the two; the cause stays in the wrap for
// operator logs.
func (h *Hasher) Verify(plaintext, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return model.ErrIncorrectPassword
	}
	return fmt.Errorf("%w: %v", model.ErrIncorrectPassword, err)
}
