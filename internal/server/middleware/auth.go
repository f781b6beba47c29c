// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// profileIDKey is the context key for storing the authenticated profile ID.
const profileIDKey ContextKey = "profileID"

// TokenValidator is an interface for validating JWT tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (ProfileIDGetter, error)
}

// ProfileIDGetter is an interface for extracting the profile ID from token claims.
type ProfileIDGetter interface {
	GetProfileID() uuid.UUID
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the
// profile ID to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), profileIDKey, claims.GetProfileID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireProfile rejects requests whose authenticated profile differs from the
// {param} path value. It must run inside AuthMiddleware.
func RequireProfile(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pathID, err := uuid.Parse(r.PathValue(param))
			if err != nil {
				http.Error(w, "Invalid profile ID", http.StatusBadRequest)
				return
			}
			profileID, err := GetProfileID(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if profileID != pathID {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from a case-insensitive "Bearer" Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// GetProfileID extracts the authenticated profile ID from the request context.
func GetProfileID(r *http.Request) (uuid.UUID, error) {
	profileID, ok := r.Context().Value(profileIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("profile ID not found in request context")
	}
	return profileID, nil
}

// WithProfileID returns a copy of ctx carrying profileID, as AuthMiddleware would.
func WithProfileID(ctx context.Context, profileID uuid.UUID) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}
