package middleware

import (
	"context"
	"net/http"
	"time"

	"server/internal/domain"
)

// SessionCookieName is the admin session cookie. It is scoped to the admin
// API path and never readable from scripts.
const SessionCookieName = "admin_session"

// SessionCookiePath keeps the cookie off public routes.
const SessionCookiePath = "/api/admin"

// SessionValidator resolves a presented opaque token to its admin account.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*domain.AdminUser, error)
}

type adminKey string

const adminUserKey adminKey = "admin_user"

// SetSessionCookie writes the session cookie after a successful login.
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     SessionCookiePath,
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// SessionTokenFromRequest extracts the raw token from the request cookie.
func SessionTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequireSession gates admin routes behind a live session. Missing, expired
// and revoked sessions all get the same generic 401; the stale cookie is
// cleared on the way out.
func RequireSession(validator SessionValidator, cookieSecure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionTokenFromRequest(r)
			user, err := validator.Validate(r.Context(), token)
			if err != nil {
				ClearSessionCookie(w, cookieSecure)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"authentication required"}}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithAdmin(r.Context(), user)))
		})
	}
}

// ContextWithAdmin attaches the authenticated admin to the context.
func ContextWithAdmin(ctx context.Context, user *domain.AdminUser) context.Context {
	return context.WithValue(ctx, adminUserKey, user)
}

// AdminFromContext returns the authenticated admin, or nil outside guarded
// routes.
func AdminFromContext(ctx context.Context) *domain.AdminUser {
	if u, ok := ctx.Value(adminUserKey).(*domain.AdminUser); ok {
		return u
	}
	return nil
}
