package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/response"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/jwt"
)

// AuthRequired verifies the access token and binds the decoded actor to
// the request context. Everything behind it can read auth.ActorFrom.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			actor, ok := jwt.ActorFromClaims(claims)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}

// RequireAdmin restricts a route to admin accounts.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := auth.ActorFrom(r.Context())
		if !ok || actor.Role != user.RoleAdmin {
			response.HandleError(w, auth.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireApprover restricts a route to admins and managers. Sector-level
// checks stay in the services, which know which sector a record belongs to.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := auth.ActorFrom(r.Context())
		if !ok || (actor.Role != user.RoleAdmin && actor.Role != user.RoleManager) {
			response.HandleError(w, auth.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
