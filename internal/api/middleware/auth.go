package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"loan-office/internal/config"
	"loan-office/internal/domain/modmin"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ActorFromContext returns the authenticated staff member. The zero Actor
// means the request bypassed auth (auth disabled in config).
func ActorFromContext(ctx context.Context) modmin.Actor {
	if actor, ok := ctx.Value(actorContextKey).(modmin.Actor); ok {
		return actor
	}
	return modmin.Actor{}
}

// WithActor is for tests that need an authenticated context without going
// through the middleware.
func WithActor(ctx context.Context, actor modmin.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Every request acts as Admin when auth is off. Local use only.
				ctx := WithActor(r.Context(), modmin.Actor{Role: modmin.RoleAdmin})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := validateJWT(r, cfg.JWTSecret, logger)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":{"message":"Unauthorized"}}`, http.StatusUnauthorized)
				return
			}
			ctx := WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validateJWT(r *http.Request, secret string, logger *slog.Logger) (modmin.Actor, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.Warn("AuthMiddleware: Missing Authorization header")
		return modmin.Actor{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logger.Warn("AuthMiddleware: Invalid Authorization header format")
		return modmin.Actor{}, false
	}
	tokenString := parts[1]

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			logger.Warn("AuthMiddleware: Unexpected signing method")
			return nil, http.ErrAbortHandler
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		logger.Warn("AuthMiddleware: Invalid token", "error", err)
		return modmin.Actor{}, false
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || (role != string(modmin.RoleAdmin) && role != string(modmin.RoleModerator)) {
		logger.Warn("AuthMiddleware: Token missing subject or role claim")
		return modmin.Actor{}, false
	}

	return modmin.Actor{ID: sub, Role: modmin.Role(role)}, true
}

// RequireAdmin guards routes that only Admins may reach. Must run after
// AuthMiddleware.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			if !actor.IsAdmin() {
				logger.Warn("RequireAdmin: Forbidden", "actor_id", actor.ID, "role", string(actor.Role))
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":{"message":"Forbidden"}}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
