package auth

import (
	"fmt"
	"regexp"
	"strings"

	"secure-calculator/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

const (
	// PasswordSymbols are the only non-alphanumeric characters a password may use.
	PasswordSymbols   = "@$!%*?&"
	MinPasswordLength = 8
)

// ValidateUsername trims username and checks that it is non-empty ASCII
// alphanumeric.
func ValidateUsername(op, username string) (string, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return "", models.InvalidArgument(op, "username", "must be alphanumeric")
	}
	return username, nil
}

// CheckPasswordStrength enforces the strength policy for new passwords.
func CheckPasswordStrength(op, password string) error {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return weakPassword(op, fmt.Sprintf("contains a character outside letters, digits and %s", PasswordSymbols))
		}
	}
	if len(password) < MinPasswordLength || !lower || !upper || !digit || !symbol {
		return weakPassword(op, fmt.Sprintf(
			"must be at least %d characters long and contain at least one lowercase letter, one uppercase letter, one digit, and one of %s",
			MinPasswordLength, PasswordSymbols))
	}
	return nil
}

func weakPassword(op, reason string) error {
	return &models.ArgumentError{Op: op, Arg: "new_password", Reason: reason, Kind: models.ErrWeakPassword}
}
