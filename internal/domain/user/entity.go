package user

import (
	"time"

	"github.com/jornada-app/jornada-backend-go/internal/pkg/validator"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Can manage users and view reports
	RoleEmployee Role = "EMPLOYEE" // Can only submit and view their own shift events
)

// Roles lists every recognized role value.
var Roles = []string{string(RoleAdmin), string(RoleEmployee)}

// IsValidRole checks if the value is one of the recognized roles.
func IsValidRole(r Role) bool {
	return validator.IsInSlice(string(r), Roles)
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
