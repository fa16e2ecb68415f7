package model

// PasswordHasher hashes and verifies passwords. Verify reports a mismatch
// (or an unreadable stored hash) as ErrIncorrectPassword.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) error
}
