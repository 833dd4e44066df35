package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/threewin/bmc-mentor/backend/internal/service/auth"
	"github.com/threewin/bmc-mentor/backend/pkg/utils"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// RequireAuth guards a route behind a valid bearer token and stores the
// decoded claims in the request context.
func RequireAuth(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.RespondError(w, http.StatusForbidden, "no token provided")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			claims, err := authSvc.VerifyToken(token)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom extracts the verified claims set by RequireAuth.
func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	return claims, ok
}
