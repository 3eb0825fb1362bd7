package middleware

import (
	"net/http"

	"github.com/jornada-app/jornada-backend-go/internal/domain/auth"
	"github.com/jornada-app/jornada-backend-go/internal/domain/identity"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	"github.com/jornada-app/jornada-backend-go/internal/handler/http/response"
)

// AdminOnly requires the resolved identity to carry the admin role. Must run
// after ResolveIdentity.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := identity.FromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !ident.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
