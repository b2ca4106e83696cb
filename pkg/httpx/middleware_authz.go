package httpx

import (
	"net/http"
	"slices"

	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// RequireRole lets the request through only if the session carries one of
// roles. Must run after AuthnMiddleware.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := SessionFromContext(r.Context())
			if !ok || !slices.Contains(roles, claims.Role) {
				slogx.FromContext(r.Context()).Warn("authz denied",
					"path", r.URL.Path,
					"role", claims.Role,
					"required", roles,
				)
				WriteFailure(w, http.StatusForbidden, MsgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
