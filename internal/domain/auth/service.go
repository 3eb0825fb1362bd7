package auth

import "context"

type AuthService interface {
	// Login verifies email/password credentials and issues access and
	// refresh tokens.
	Login(ctx context.Context, loginReq LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)

	// LoginWithGoogle resolves a verified Google email against the user
	// directory and issues tokens. There is no self-signup: unknown emails
	// are rejected.
	LoginWithGoogle(ctx context.Context, code string, sessionReq SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken exchanges a valid, unrevoked refresh token for a new
	// access token.
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token and blacklists the access token for
	// the remainder of its lifetime.
	Logout(ctx context.Context, accessToken string, refreshToken string) error
}
