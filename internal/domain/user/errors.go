package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrInvalidRole            = errors.New("invalid role")
	ErrCannotDeleteSelf       = errors.New("cannot delete your own account")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
