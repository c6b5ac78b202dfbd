package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"secure-calculator/internal/models"
)

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		strong   bool
	}{
		{"Str0ng!Pw", true},
		{"Aa1@aaaa", true},
		{"Aa1@aaa", false},    // too short
		{"str0ng!pw", false},  // no uppercase
		{"STR0NG!PW", false},  // no lowercase
		{"Strong!Pw", false},  // no digit
		{"Str0ngPw1", false},  // no symbol
		{"Str0ng!Pw#", false}, // symbol outside the allowed set
		{"Str0ng! Pw", false}, // space
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := CheckPasswordStrength("change_password", tt.password)
			if tt.strong {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, models.ErrWeakPassword)
		})
	}
}

func TestValidateUsername(t *testing.T) {
	got, err := ValidateUsername("register", "  Alice42 ")
	assert.NoError(t, err)
	assert.Equal(t, "Alice42", got)

	_, err = ValidateUsername("register", "alice-42")
	assert.EqualError(t, err, "register: input username must be alphanumeric")
}
