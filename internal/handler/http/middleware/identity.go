package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jornada-app/jornada-backend-go/internal/domain/auth"
	"github.com/jornada-app/jornada-backend-go/internal/domain/identity"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	"github.com/jornada-app/jornada-backend-go/internal/handler/http/response"
)

// ResolveIdentity loads the user row behind the token's subject on every
// request and stores it in the context. The role comes from the directory,
// not from the token claim, so a demoted admin loses access immediately and
// a deleted user's token stops resolving.
func ResolveIdentity(userRepo user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			u, err := userRepo.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					response.HandleError(w, auth.ErrInvalidToken)
					return
				}
				response.HandleError(w, err)
				return
			}

			ctx := identity.NewContext(r.Context(), identity.Identity{
				ID:    u.ID,
				Email: u.Email,
				Name:  u.Name,
				Role:  u.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
