package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password schemes accepted by CodecFor.
const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// PasswordCodec turns a password into its stored form and checks a
// candidate against it. An empty stored value means no password was set and
// only matches an empty candidate.
type PasswordCodec interface {
	Encode(password string) (string, error)
	Compare(stored, candidate string) (bool, error)
}

// Plaintext stores passwords as given. It is the default; use Bcrypt to
// keep hashes in the store instead.
type Plaintext struct{}

func (Plaintext) Encode(password string) (string, error) { return password, nil }

func (Plaintext) Compare(stored, candidate string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1, nil
}

// Bcrypt stores bcrypt hashes. It is only used when explicitly configured.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Encode(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (Bcrypt) Compare(stored, candidate string) (bool, error) {
	if stored == "" {
		return candidate == "", nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return true, nil
}

// CodecFor returns the codec for a configured scheme name.
func CodecFor(scheme string) (PasswordCodec, error) {
	switch scheme {
	case "", SchemePlaintext:
		return Plaintext{}, nil
	case SchemeBcrypt:
		return Bcrypt{}, nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", scheme)
}
