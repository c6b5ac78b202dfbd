package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"secure-calculator/internal/models"
	"secure-calculator/internal/storage"
)

// Store is the credential store backed by the users table.
type Store struct {
	db    *sql.DB
	codec PasswordCodec
}

// NewStore wraps an opened store handle. A nil codec means Plaintext.
func NewStore(db *sql.DB, codec PasswordCodec) *Store {
	if codec == nil {
		codec = Plaintext{}
	}
	return &Store{db: db, codec: codec}
}

// Register creates a user without a password.
func (s *Store) Register(ctx context.Context, username string) (*models.User, error) {
	username, err := ValidateUsername("register", username)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, username, "")
}

// RegisterWithPassword creates a user whose initial password must satisfy
// the strength policy.
func (s *Store) RegisterWithPassword(ctx context.Context, username, password string) (*models.User, error) {
	username, err := ValidateUsername("register", username)
	if err != nil {
		return nil, err
	}
	password = strings.TrimSpace(password)
	if err := CheckPasswordStrength("register", password); err != nil {
		return nil, err
	}
	encoded, err := s.codec.Encode(password)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, username, encoded)
}

func (s *Store) insert(ctx context.Context, username, password string) (*models.User, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO users (username, password) VALUES (?, ?)", username, password)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			log.Warn("registration rejected, username taken", "username", username)
			return nil, fmt.Errorf("register %q: %w", username, models.ErrDuplicateUsername)
		}
		log.Error("failed to insert user", "username", username, "error", err)
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}
	log.Info("user registered", "username", username, "id", id)
	return &models.User{ID: id, Username: username, Password: password}, nil
}

// GetByUsername looks a user up by its trimmed username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	err := s.db.QueryRowContext(ctx, "SELECT id, username, password FROM users WHERE username = ?", username).
		Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", username, models.ErrUserNotFound)
	}
	if err != nil {
		log.Error("failed to get user by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Login reports whether password matches the stored one. A wrong password is
// not an error; an unknown username is ErrUserNotFound.
func (s *Store) Login(ctx context.Context, username, password string) (bool, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	ok, err := s.codec.Compare(user.Password, strings.TrimSpace(password))
	if err != nil {
		return false, err
	}
	if !ok {
		log.Warn("login failed, wrong password", "username", user.Username)
	}
	return ok, nil
}

// Logout does nothing; there is no server-side session to end.
func (s *Store) Logout() {}

// ChangePassword replaces the password of username after checking the old
// one and the strength of the new one, in that order.
func (s *Store) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	ok, err := s.codec.Compare(user.Password, strings.TrimSpace(oldPassword))
	if err != nil {
		return err
	}
	if !ok {
		log.Warn("password change rejected, incorrect old password", "username", user.Username)
		return fmt.Errorf("change password for %q: %w", user.Username, models.ErrIncorrectPassword)
	}
	newPassword = strings.TrimSpace(newPassword)
	if err := CheckPasswordStrength("change_password", newPassword); err != nil {
		return err
	}
	encoded, err := s.codec.Encode(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "UPDATE users SET password = ? WHERE username = ?", encoded, user.Username); err != nil {
		log.Error("failed to update password", "username", user.Username, "error", err)
		return fmt.Errorf("failed to update password: %w", err)
	}
	log.Info("password changed", "username", user.Username)
	return nil
}
