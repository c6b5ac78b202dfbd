package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"secure-calculator/internal/models"
)

func setupHandlers(t *testing.T) (*Store, *Issuer) {
	store := NewStore(setupTestDB(t), nil)
	issuer, err := NewIssuer("handler-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create issuer: %v", err)
	}
	return store, issuer
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	store, _ := setupHandlers(t)
	handler := RegisterHandler(store)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"without password", `{"login":"user1"}`, http.StatusOK},
		{"with password", `{"login":"user2","password":"Str0ng!Pw"}`, http.StatusOK},
		{"duplicate", `{"login":"user1"}`, http.StatusConflict},
		{"empty login", `{"login":"","password":"pass"}`, http.StatusBadRequest},
		{"non alphanumeric", `{"login":"user 3"}`, http.StatusBadRequest},
		{"weak password", `{"login":"user4","password":"pass"}`, http.StatusBadRequest},
		{"invalid json", `{login}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := post(handler, "/api/v1/register", tt.body)
		if w.Result().StatusCode != tt.status {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.status, w.Result().StatusCode)
		}
	}

	user, err := store.GetByUsername(context.Background(), "user2")
	if err != nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if user.ID != 2 {
		t.Fatalf("expected id 2, got %d", user.ID)
	}
}

func TestLoginHandler(t *testing.T) {
	store, issuer := setupHandlers(t)
	if _, err := store.RegisterWithPassword(context.Background(), "user1", "Str0ng!Pw"); err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	handler := LoginHandler(store, issuer)

	w := post(handler, "/api/v1/login", `{"login":"user1","password":"Str0ng!Pw"}`)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("login failed: status %d", w.Result().StatusCode)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	claims, err := issuer.Parse(resp["token"])
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.UserID != 1 || claims.Username != "user1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	w = post(handler, "/api/v1/login", `{"login":"user1","password":"wrong"}`)
	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Result().StatusCode)
	}

	w = post(handler, "/api/v1/login", `{"login":"nonexistent","password":"pass"}`)
	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", w.Result().StatusCode)
	}
}

func TestLoginHandler_NoPasswordSet(t *testing.T) {
	store, issuer := setupHandlers(t)
	if _, err := store.Register(context.Background(), "bob"); err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	handler := LoginHandler(store, issuer)

	w := post(handler, "/api/v1/login", `{"login":"bob","password":""}`)
	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for account without password, got %d", w.Result().StatusCode)
	}

	if err := store.ChangePassword(context.Background(), "bob", "", "Str0ng!Pw"); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}
	w = post(handler, "/api/v1/login", `{"login":"bob","password":"Str0ng!Pw"}`)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 once a password is set, got %d", w.Result().StatusCode)
	}
}

func TestChangePasswordHandler(t *testing.T) {
	store, _ := setupHandlers(t)
	if _, err := store.Register(context.Background(), "user1"); err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	handler := ChangePasswordHandler(store)

	tests := []struct {
		body   string
		status int
	}{
		{`{"login":"ghost","old_password":"","new_password":"Str0ng!Pw"}`, http.StatusNotFound},
		{`{"login":"user1","old_password":"nope","new_password":"Str0ng!Pw"}`, http.StatusUnauthorized},
		{`{"login":"user1","old_password":"","new_password":"weak"}`, http.StatusBadRequest},
		{`{"login":"user1","old_password":"","new_password":"Str0ng!Pw"}`, http.StatusOK},
	}
	for _, tt := range tests {
		w := post(handler, "/api/v1/password", tt.body)
		if w.Result().StatusCode != tt.status {
			t.Fatalf("%s: expected status %d, got %d", tt.body, tt.status, w.Result().StatusCode)
		}
	}

	ok, err := store.Login(context.Background(), "user1", "Str0ng!Pw")
	if err != nil || !ok {
		t.Fatalf("expected new password to be stored, ok=%v err=%v", ok, err)
	}
}

func TestLogoutHandler(t *testing.T) {
	store, _ := setupHandlers(t)
	w := post(LogoutHandler(store), "/api/v1/logout", "")
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}
}

func TestJWTMiddleware(t *testing.T) {
	_, issuer := setupHandlers(t)
	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Fatal("user id missing from context")
		}
		if claims, ok := ClaimsFromContext(r.Context()); !ok || claims.UserID != id {
			t.Fatalf("claims missing or mismatched: %+v", claims)
		}
		gotID = id
	})
	handler := JWTMiddleware(issuer, next)
	user := &models.User{ID: 7, Username: "mwuser"}

	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Token " + token, http.StatusUnauthorized},
		{"Bearer garbage", http.StatusUnauthorized},
		{"Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Result().StatusCode != tt.status {
			t.Fatalf("header %q: expected status %d, got %d", tt.header, tt.status, w.Result().StatusCode)
		}
	}
	if gotID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, gotID)
	}
}
