package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"kingflex/internal/auth/service"
	"kingflex/internal/dto"
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

type Middleware struct {
	tokens TokenVerifier
}

func New(tokens TokenVerifier) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid token. The token is read from
// the session cookie or an Authorization bearer header.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := m.authenticate(r)
		if user == nil {
			writeUnauthorized(w, "Please login first")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// OptionalAuth attaches the identity when a valid token is present and lets
// the request through either way; guest order submission relies on this.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := m.authenticate(r); user != nil {
			r = r.WithContext(withUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := m.authenticate(r)
		if user == nil {
			writeUnauthorized(w, "Authentication required")
			return
		}
		if user.Role != "admin" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Admin access required"})
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (m *Middleware) authenticate(r *http.Request) *dto.AuthenticatedUser {
	token := ""
	if cookie, err := r.Cookie("token"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		header := r.Header.Get("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
		if token == header {
			token = ""
		}
	}
	if token == "" {
		return nil
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return nil
	}

	return &dto.AuthenticatedUser{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}
}

func withUser(ctx context.Context, user *dto.AuthenticatedUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *dto.AuthenticatedUser {
	user, _ := ctx.Value(userContextKey).(*dto.AuthenticatedUser)
	return user
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
