package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"secure-calculator/internal/models"
)

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Login       string `json:"login"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// RegisterHandler creates a user. The password is optional.
func RegisterHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		var (
			user *models.User
			err  error
		)
		if req.Password == "" {
			user, err = store.Register(r.Context(), req.Login)
		} else {
			user, err = store.RegisterWithPassword(r.Context(), req.Login, req.Password)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, UserResponse{ID: user.ID, Username: user.Username})
	}
}

// LoginHandler checks credentials and answers with a session token. Accounts
// without a password never get one.
func LoginHandler(store *Store, issuer *Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		ok, err := store.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "invalid login or password", http.StatusUnauthorized)
			return
		}
		user, err := store.GetByUsername(r.Context(), req.Login)
		if err != nil {
			writeError(w, err)
			return
		}
		if user.Password == "" {
			log.Warn("login refused, no password set", "username", user.Username)
			http.Error(w, "password not set", http.StatusUnauthorized)
			return
		}
		tokenString, err := issuer.Issue(user)
		if err != nil {
			log.Error("failed to issue token", "username", user.Username, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": tokenString})
	}
}

// LogoutHandler always succeeds; tokens simply expire.
func LogoutHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Logout()
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}

func ChangePasswordHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := store.ChangePassword(r.Context(), req.Login, req.OldPassword, req.NewPassword); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
	}
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrIncorrectPassword):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrDivisionByZero):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}
