package http

import (
	"context"
	"net/http"
	"strings"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/security"
)

// Principal is the authenticated caller, extracted from the access token. It
// is passed through the request context and handed to services explicitly.
type Principal struct {
	UserID string
	Email  string
	Role   domain.UserRole
}

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the authenticated principal set by the auth
// middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// AuthMiddleware validates the bearer token and injects the principal into
// the request context. Only access tokens pass; refresh tokens are rejected
// so they cannot be used against API endpoints.
func AuthMiddleware(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, http.StatusUnauthorized, "access token required")
				return
			}

			principal := Principal{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, principal)))
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}
	// Remove Bearer prefix if present
	if len(authHeader) > 7 && strings.EqualFold(authHeader[0:7], "BEARER ") {
		return authHeader[7:], nil
	}
	return authHeader, nil
}
