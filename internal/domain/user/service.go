package user

import "context"

type UserService interface {
	// Create registers a new account. The password is hashed before storage
	// and never echoed back.
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// List returns every account, password hashes omitted.
	List(ctx context.Context) ([]UserResponse, error)

	// Delete hard-deletes the target account. The requester cannot delete
	// themselves. Historical time logs of the deleted account are kept.
	Delete(ctx context.Context, targetID string) error
}
