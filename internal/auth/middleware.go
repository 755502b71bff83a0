package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// contextKey is a private type for context values set by this package.
type contextKey struct{}

// authContextKey stores the *AuthContext of the authenticated request.
var authContextKey = contextKey{}

// AuthContext carries the identity extracted from a verified token.
type AuthContext struct {
	UserID string
	Role   string
}

// bearerPrefix is the expected Authorization header scheme.
const bearerPrefix = "Bearer "

// Middleware returns a middleware that rejects requests without a valid,
// unexpired bearer token. The wrapped handler never runs on failure.
func Middleware(issuer *TokenIssuer, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "auth").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				writeAuthError(w, "Access token required")
				return
			}

			claims, err := issuer.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
				writeAuthError(w, "Invalid or expired token")
				return
			}

			authCtx := &AuthContext{UserID: claims.UserID, Role: claims.Role}
			r = r.WithContext(context.WithValue(r.Context(), authContextKey, authCtx))
			next.ServeHTTP(w, r)
		})
	}
}

// GetAuthContext retrieves the AuthContext from a request context.
// Returns nil for unauthenticated requests.
func GetAuthContext(ctx context.Context) *AuthContext {
	if authCtx, ok := ctx.Value(authContextKey).(*AuthContext); ok {
		return authCtx
	}
	return nil
}

// writeAuthError writes the 401 JSON body the admin frontend expects.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
