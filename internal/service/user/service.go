package user

import (
	"context"
	"fmt"

	"github.com/jornada-app/jornada-backend-go/internal/domain/identity"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if !user.IsValidRole(req.Role) {
		return user.UserResponse{}, user.ErrInvalidRole
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return user.UserResponse{}, user.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hashed,
		Role:         req.Role,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ToUserResponse(created), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToUserResponse(u))
	}
	return responses, nil
}

// Delete implements user.UserService. Deleting a user does not delete their
// time logs; reports keep showing the orphaned events.
func (s *UserServiceImpl) Delete(ctx context.Context, targetID string) error {
	ident, ok := identity.FromContext(ctx)
	if !ok {
		return fmt.Errorf("no identity resolved for request")
	}

	if ident.ID == targetID {
		return user.ErrCannotDeleteSelf
	}

	return s.UserRepository.Delete(ctx, targetID)
}
