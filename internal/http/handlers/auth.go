package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
	"server/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserDTO(u *domain.AdminUser) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Login verifies credentials and issues a session cookie. Bad credentials of
// any kind come back as the same generic 401.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || len(req.Password) < 8 {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}

	token, user, err := a.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("login failed")
		a.error(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}

	middleware.SetSessionCookie(w, token, time.Now().Add(a.Auth.TTL()), a.CookieSecure)
	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserDTO(user),
	})
}

// Logout revokes the presented session, if any, and clears the cookie.
// Always succeeds.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionTokenFromRequest(r)
	if err := a.Auth.Logout(r.Context(), token); err != nil {
		a.Logger.Error().Err(err).Msg("session revoke failed")
	}
	middleware.ClearSessionCookie(w, a.CookieSecure)
	a.json(w, http.StatusOK, map[string]bool{"success": true})
}

// Me returns the authenticated admin's profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.AdminFromContext(r.Context())
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}
