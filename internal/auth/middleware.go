package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/authz"
	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Middleware wires the access decision pipeline for HTTP routes: credential
// resolution followed by the role gate. Ownership checks run later, inside
// the handlers of owned resources.
type Middleware struct {
	Resolver *Resolver
	Logger   *slog.Logger
}

// RequireRoles declares the route's accepted role set. An empty set leaves
// the route public; a failed resolution then proceeds anonymously. For a
// non-empty set any resolution failure or role mismatch ends the request
// with 401 before a resource lookup can happen.
func (m Middleware) RequireRoles(roles ...shared.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := m.Resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				var failure *Failure
				if !errors.As(err, &failure) {
					// Store fault, not a credential problem.
					if m.Logger != nil {
						m.Logger.Error("resolve principal", slog.Any("error", err))
					}
					httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
					return
				}
				if len(roles) > 0 {
					httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
					return
				}
				principal = nil
			}

			if !authz.RoleGateAllows(roles, principal) {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
				return
			}

			if principal != nil {
				r = r.WithContext(shared.ContextWithPrincipal(r.Context(), principal))
			}
			next.ServeHTTP(w, r)
		})
	}
}
