package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/davrk/go-storefront/app/services"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

// Authenticate decodes the bearer token and loads the principal from the
// store, so a token issued for a since-deleted account is rejected rather
// than trusted on its claims alone.
func Authenticate(authSvc *services.AuthService, userRepo repositories.UserRepositoryImpl, rnd *render.Render, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				helpers.RespondError(rnd, w, http.StatusUnauthorized, "authorization header is required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				helpers.RespondError(rnd, w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := authSvc.ValidateToken(parts[1])
			if err != nil {
				logger.Warn().Err(err).Msg("token validation failed")
				helpers.RespondError(rnd, w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to load principal")
				helpers.RespondError(rnd, w, http.StatusInternalServerError, "internal server error")
				return
			}
			if user == nil {
				helpers.RespondError(rnd, w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly must run after Authenticate.
func AdminOnly(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.PrincipalFromRequest(r)
			if user == nil || !user.IsAdmin() {
				helpers.RespondError(rnd, w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
