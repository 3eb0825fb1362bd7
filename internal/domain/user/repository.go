package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, newUser User) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
