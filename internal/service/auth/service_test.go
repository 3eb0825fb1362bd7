package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jornada-app/jornada-backend-go/internal/domain/auth"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/jwt"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	result := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeJWTRepo struct {
	stored  map[string]bool // token -> revoked
	created int
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{stored: make(map[string]bool)}
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	f.stored[token] = false
	f.created++
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	revoked, ok := f.stored[token]
	if !ok {
		return false, errors.New("refresh token not found")
	}
	return revoked, nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	if _, ok := f.stored[token]; ok {
		f.stored[token] = true
	}
	return nil
}

type fakeGoogleService struct {
	user        oauth.GoogleUser
	exchangeErr error
}

func (f *fakeGoogleService) GenerateState() string { return "state" }

func (f *fakeGoogleService) RedirectURL(s string) string {
	return "https://accounts.google.test/" + s
}

func (f *fakeGoogleService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &oauth2.Token{AccessToken: "google-token"}, nil
}
func (f *fakeGoogleService) FetchUser(ctx context.Context, token *oauth2.Token) (oauth.GoogleUser, error) {
	return f.user, nil
}

func seedUser(password string) (*fakeUserRepo, user.User) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	hashed := string(hash)
	u := user.User{
		ID:           "user-1",
		Email:        "jane@example.com",
		Name:         "Jane Doe",
		PasswordHash: &hashed,
		Role:         user.RoleEmployee,
	}
	return &fakeUserRepo{users: map[string]user.User{u.ID: u}}, u
}

func newTestService(userRepo *fakeUserRepo, jwtRepo *fakeJWTRepo, google oauth.GoogleService) auth.AuthService {
	jwtService := jwt.NewJWTService("test-secret-key", "15m", "168h")
	return NewAuthService(passthroughTx{}, userRepo, jwtService, jwtRepo, google)
}

func TestAuthService_Login(t *testing.T) {
	userRepo, u := seedUser("correct-password")
	jwtRepo := newFakeJWTRepo()
	svc := newTestService(userRepo, jwtRepo, &fakeGoogleService{})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    u.Email,
		Password: "correct-password",
	}, auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "test"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, u.ID, resp.UserID)
	assert.Equal(t, u.Name, resp.Name)
	assert.Equal(t, string(user.RoleEmployee), resp.Role)

	// The refresh token was persisted for revocation tracking.
	assert.Equal(t, 1, jwtRepo.created)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo, u := seedUser("correct-password")
	svc := newTestService(userRepo, newFakeJWTRepo(), &fakeGoogleService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    u.Email,
		Password: "wrong-password",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo, _ := seedUser("correct-password")
	svc := newTestService(userRepo, newFakeJWTRepo(), &fakeGoogleService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	}, auth.SessionTrackingRequest{})
	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_PasswordlessAccount(t *testing.T) {
	userRepo, u := seedUser("correct-password")
	u.PasswordHash = nil
	userRepo.users[u.ID] = u
	svc := newTestService(userRepo, newFakeJWTRepo(), &fakeGoogleService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    u.Email,
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	userRepo, u := seedUser("irrelevant-password")
	google := &fakeGoogleService{user: oauth.GoogleUser{
		GoogleID:      "g-123",
		Email:         u.Email,
		VerifiedEmail: true,
	}}
	svc := newTestService(userRepo, newFakeJWTRepo(), google)

	resp, err := svc.LoginWithGoogle(context.Background(), "auth-code", auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_LoginWithGoogle_UnknownEmail(t *testing.T) {
	userRepo, _ := seedUser("irrelevant-password")
	google := &fakeGoogleService{user: oauth.GoogleUser{
		Email:         "stranger@example.com",
		VerifiedEmail: true,
	}}
	svc := newTestService(userRepo, newFakeJWTRepo(), google)

	_, err := svc.LoginWithGoogle(context.Background(), "auth-code", auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrOAuthEmailUnknown)
}

func TestAuthService_LoginWithGoogle_UnverifiedEmail(t *testing.T) {
	userRepo, u := seedUser("irrelevant-password")
	google := &fakeGoogleService{user: oauth.GoogleUser{
		Email:         u.Email,
		VerifiedEmail: false,
	}}
	svc := newTestService(userRepo, newFakeJWTRepo(), google)

	_, err := svc.LoginWithGoogle(context.Background(), "auth-code", auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo, u := seedUser("correct-password")
	jwtRepo := newFakeJWTRepo()
	svc := newTestService(userRepo, jwtRepo, &fakeGoogleService{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    u.Email,
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, u.ID, refreshed.UserID)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	userRepo, _ := seedUser("correct-password")
	svc := newTestService(userRepo, newFakeJWTRepo(), &fakeGoogleService{})

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	userRepo, u := seedUser("correct-password")
	svc := newTestService(userRepo, newFakeJWTRepo(), &fakeGoogleService{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    u.Email,
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	// An access token is not acceptable where a refresh token is expected.
	_, err = svc.RefreshToken(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshToken_AfterLogout(t *testing.T) {
	userRepo, u := seedUser("correct-password")
	jwtRepo := newFakeJWTRepo()
	svc := newTestService(userRepo, jwtRepo, &fakeGoogleService{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    u.Email,
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	err = svc.Logout(context.Background(), login.AccessToken, login.RefreshToken)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshToken_DeletedUser(t *testing.T) {
	userRepo, u := seedUser("correct-password")
	jwtRepo := newFakeJWTRepo()
	svc := newTestService(userRepo, jwtRepo, &fakeGoogleService{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    u.Email,
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	// The account is removed while the session token is still live.
	require.NoError(t, userRepo.Delete(context.Background(), u.ID))

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
