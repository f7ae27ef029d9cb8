package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/davemarr/asset-inventory/internal/middleware"
	"github.com/davemarr/asset-inventory/internal/repo"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues and verifies access tokens. Authentication is fully
// stateless: nothing about a session is kept server-side.
type AuthHandler struct {
	Users       *repo.UserRepo
	Secret      []byte
	TokenExpiry time.Duration
}

// Login checks the credentials and returns a signed token plus the sanitized
// user record. Unknown usernames and wrong passwords get the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		slog.Error("login: fetch user", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	claims := &middleware.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.TokenExpiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.Secret)
	if err != nil {
		slog.Error("login: sign token", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": signed,
		"user":  user,
	})
}

// Verify re-fetches the authenticated user from the store so a deleted account
// stops verifying immediately, even while its token is still within lifetime.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "User no longer exists", http.StatusUnauthorized)
			return
		}
		slog.Error("verify: fetch user", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
