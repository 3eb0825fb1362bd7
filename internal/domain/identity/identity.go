package identity

import (
	"context"

	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
)

// Identity is the caller resolved from a bearer token for the current request.
// The role always comes from the live user row, not from a token claim, so a
// demotion takes effect on the next request.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  user.Role
}

// IsAdmin checks if the identity has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying the resolved identity.
func NewContext(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// FromContext extracts the resolved identity from ctx.
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(contextKey{}).(Identity)
	return ident, ok
}
