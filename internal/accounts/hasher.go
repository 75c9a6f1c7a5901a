package accounts

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns passwords into stored credentials and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Matches(stored, password string) (bool, error)
}

// BcryptHasher hashes with bcrypt. Stored values that do not parse as a
// bcrypt hash are legacy plaintext records and are compared exactly.
type BcryptHasher struct {
	Cost int
}

// Hash implements Hasher.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Matches implements Hasher.
func (h BcryptHasher) Matches(stored, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// Not a bcrypt hash, even if it carries a "$2a$"-style prefix.
		return stored == password, nil
	}
}
