package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/medstore/internal/auth"
	"github.com/example/medstore/internal/storefront"
)

// SessionCookieName carries the signed session token for browsers
const SessionCookieName = "session_token"

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ExtractToken extracts the session token from cookie or Authorization header
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionResolver looks up a live session by id
type SessionResolver interface {
	Get(id string) (*storefront.Session, error)
}

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// SessionMiddleware validates the session token and adds the session to context
func SessionMiddleware(tokens *auth.TokenService, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractToken(r)
			if tokenString == "" {
				respondError(w, "session required", http.StatusUnauthorized)
				return
			}

			sessionID, err := tokens.Validate(tokenString)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					respondError(w, "session expired", http.StatusUnauthorized)
					return
				}
				respondError(w, "invalid session token", http.StatusUnauthorized)
				return
			}

			session, err := sessions.Get(sessionID)
			if err != nil {
				respondError(w, "session expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the session from the request context
func GetSession(ctx context.Context) (*storefront.Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(*storefront.Session)
	return session, ok
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session *storefront.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}
