package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jornada-app/jornada-backend-go/internal/domain/auth"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/jwt"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/oauth"
	"github.com/jornada-app/jornada-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx postgresql.TxManager
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
	googleService oauth.GoogleService
}

func NewAuthService(tx postgresql.TxManager, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository, googleService oauth.GoogleService) auth.AuthService {
	return &AuthServiceImpl{
		tx:            tx,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
		googleService:  googleService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, sessionReq)
}

// LoginWithGoogle implements auth.AuthService. Only emails already present in
// the directory can log in; Google is an alternative credential, not signup.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	token, err := a.googleService.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	googleUser, err := a.googleService.FetchUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google user: %w", err)
	}
	if !googleUser.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	userData, err := a.UserRepository.GetByEmail(ctx, googleUser.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrOAuthEmailUnknown
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return a.issueTokens(ctx, userData, sessionReq)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.Service.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	accessToken, accessExpiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: accessExpiresAt,
		UserID:               userData.ID,
		Name:                 userData.Name,
		Role:                 string(userData.Role),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string, refreshToken string) error {
	if accessToken != "" {
		a.Service.RevokeToken(accessToken)
	}
	if refreshToken != "" {
		if err := a.JWTRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}
	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := a.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionReq); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokenResponse.UserID = userData.ID
	tokenResponse.Name = userData.Name
	tokenResponse.Role = string(userData.Role)
	return tokenResponse, nil
}
