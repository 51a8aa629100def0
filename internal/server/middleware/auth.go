package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"stockroom/internal/server/auth"
	"stockroom/internal/server/handlers"
	"stockroom/pkg/api"
)

// Auth creates middleware that gates protected routes on a bearer token.
// A missing Authorization header is rejected with 403; a present but
// malformed, invalid or expired token with 401. The downstream handler is
// invoked exactly once, only after verification succeeds.
func Auth(logger *slog.Logger, tokens *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header",
					"method", r.Method, "path", r.URL.Path)
				writeAuthError(w, "No token provided", http.StatusForbidden)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format",
					"method", r.Method, "path", r.URL.Path)
				writeAuthError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				logger.Warn("token verification failed",
					"method", r.Method, "path", r.URL.Path)
				writeAuthError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)

			logger.Debug("user authenticated", "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError sends the auth-surface error envelope
func writeAuthError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Success: false, Message: message})
}
