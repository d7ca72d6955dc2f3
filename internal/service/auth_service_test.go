package service_test

import (
	"context"
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"serein/internal/model"
	"serein/internal/repository/mock"
	"serein/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_Register_Validations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	svc := service.NewAuthService(users, "test-secret")
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"missing username", "", "a@b.c", "secret123", service.ErrUsernameRequired},
		{"missing email", "ada", "", "secret123", service.ErrEmailRequired},
		{"missing password", "ada", "a@b.c", "", service.ErrPasswordRequired},
		{"short password", "ada", "a@b.c", "abc", service.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	svc := service.NewAuthService(users, "test-secret")
	ctx := context.Background()

	users.EXPECT().ExistsByUsernameOrEmail(ctx, "ada", "ada@example.com").Return(false, nil)
	users.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
			require.Equal(t, "ada", u.Username)
			require.Equal(t, "ada@example.com", u.Email)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
			u.ID = 11
			return u, nil
		})

	resp, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	ident, err := svc.Authenticate(resp.Token)
	require.NoError(t, err)
	require.Equal(t, int64(11), ident.UserID)
	require.Equal(t, "ada", ident.Username)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	svc := service.NewAuthService(users, "test-secret")
	ctx := context.Background()

	users.EXPECT().ExistsByUsernameOrEmail(ctx, "ada", "ada@example.com").Return(true, nil)

	_, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.ErrorIs(t, err, service.ErrUserExists)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	svc := service.NewAuthService(users, "test-secret")
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := model.User{ID: 11, Username: "ada", Email: "ada@example.com", PasswordHash: string(hash)}

	users.EXPECT().GetByUsername(ctx, "ada").Return(stored, nil).Times(2)

	resp, err := svc.Login(ctx, "ada", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	ident, err := svc.Authenticate(resp.Token)
	require.NoError(t, err)
	require.Equal(t, int64(11), ident.UserID)

	_, err = svc.Login(ctx, "ada", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	svc := service.NewAuthService(users, "test-secret")
	ctx := context.Background()

	users.EXPECT().GetByUsername(ctx, "ghost").Return(model.User{}, sql.ErrNoRows)

	_, err := svc.Login(ctx, "ghost", "secret123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Authenticate_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	svc := service.NewAuthService(users, "test-secret")

	_, err := svc.Authenticate("not-a-token")
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

// A token signed under one secret must not validate under another.
func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	issuer := service.NewAuthService(users, "secret-a")
	verifier := service.NewAuthService(users, "secret-b")
	ctx := context.Background()

	users.EXPECT().ExistsByUsernameOrEmail(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
			u.ID = 1
			return u, nil
		})

	resp, err := issuer.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	_, err = verifier.Authenticate(resp.Token)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}
