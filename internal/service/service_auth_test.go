package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cardify/cardify-server/internal/config"
	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/mock"
	"github.com/cardify/cardify-server/internal/store"
	"github.com/cardify/cardify-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// newTestAuthSvc builds an authService wired to a mocked user repository.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)

	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "cardify-test",
		TokenDuration: time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}

	return NewAuthService(mockUsers, cfg, logger.Nop()), mockUsers
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{Username: "alice", FirstName: "Alice", Email: "alice@example.com"}

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			// The stored password must be a bcrypt hash of the plain text,
			// never the plain text itself.
			assert.NotEmpty(t, u.Password)
			assert.NotEqual(t, "s3cret", u.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret")))

			u.ID = 1
			return u, nil
		},
	)

	registered, err := svc.RegisterUser(ctx, user, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.ID)
	assert.Equal(t, "alice", registered.Username)
	assert.Empty(t, registered.Password, "password hash must not leave the service layer")
}

func TestAuthService_RegisterUser_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, models.User{Username: ""}, "pwd")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(ctx, models.User{Username: "alice"}, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterUser_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).
		Return(models.User{}, store.ErrUsernameTaken)

	_, err := svc.RegisterUser(ctx, models.User{Username: "alice"}, "s3cret")
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	mockUsers.EXPECT().GetUserByUsername(ctx, "alice").
		Return(models.User{ID: 1, Username: "alice", Password: string(hash)}, nil)

	user, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	mockUsers.EXPECT().GetUserByUsername(ctx, "alice").
		Return(models.User{ID: 1, Username: "alice", Password: string(hash)}, nil)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().GetUserByUsername(ctx, "ghost").
		Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Login(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "pwd")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.Username)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.ParseToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_RegisterUser_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	boom := errors.New("connection reset")
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, boom)

	_, err := svc.RegisterUser(ctx, models.User{Username: "alice"}, "s3cret")
	assert.ErrorIs(t, err, boom)
}
