//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"realty-api/internal/domain/user"
	"realty-api/internal/handler/dto/request"
	"realty-api/internal/infra/db"
	"realty-api/internal/pkg/jwt"
	"realty-api/internal/pkg/password"
	"realty-api/internal/usecase/commands"
	"realty-api/internal/usecase/shared"
	"realty-api/tests/common/paymenttest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mock.Mock
}

func (f *fakeUserRepo) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	args := f.Called(ctx, tx, u)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	args := f.Called(ctx, tx, userID)
	return args.Error(0)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, tx db.DBTX, userID uuid.UUID, passwordHash string) error {
	args := f.Called(ctx, tx, userID, passwordHash)
	return args.Error(0)
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, tx db.DBTX, userID uuid.UUID, fullName string, phone *string) error {
	args := f.Called(ctx, tx, userID, fullName, phone)
	return args.Error(0)
}

func (f *fakeUserRepo) SetActive(ctx context.Context, tx db.DBTX, userID uuid.UUID, active bool) error {
	args := f.Called(ctx, tx, userID, active)
	return args.Error(0)
}

type authFixture struct {
	reads    *fakeCommandReads
	users    *fakeUserRepo
	otpStore *paymenttest.FakeOTPStore
	mailer   *paymenttest.FakeMailer
	commands commands.AuthCommands
}

func newAuthFixture() *authFixture {
	reads := &fakeCommandReads{}
	users := &fakeUserRepo{}
	otpStore := paymenttest.NewFakeOTPStore()
	mailer := paymenttest.NewFakeMailer()
	uow := &fakeUnitOfWork{tx: &fakeTx{reads: reads, users: users}}
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 168*time.Hour)

	return &authFixture{
		reads:    reads,
		users:    users,
		otpStore: otpStore,
		mailer:   mailer,
		commands: commands.NewAuthCommands(uow, jwtService, otpStore, mailer),
	}
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := password.HashPassword(plain)
	require.NoError(t, err)
	return hash
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	req := request.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "password123",
		FullName: "Test Buyer",
		Role:     "buyer",
	}

	t.Run("parks the payload and emails the code, no user row yet", func(t *testing.T) {
		f := newAuthFixture()

		err := f.commands.Register(ctx, req)

		require.NoError(t, err)
		assert.NotEmpty(t, f.mailer.LastCode("buyer@example.com"))
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid role never reaches the store", func(t *testing.T) {
		f := newAuthFixture()
		bad := req
		bad.Role = "admin"

		err := f.commands.Register(ctx, bad)

		assert.ErrorIs(t, err, commands.ErrAuthenticationFailed)
		assert.Empty(t, f.mailer.LastCode("buyer@example.com"))
	})
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	req := request.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "password123",
		FullName: "Test Buyer",
		Role:     "buyer",
	}

	t.Run("emailed code creates the account and returns a session", func(t *testing.T) {
		f := newAuthFixture()
		require.NoError(t, f.commands.Register(ctx, req))

		code := f.mailer.LastCode("buyer@example.com")
		require.NotEmpty(t, code)

		f.users.On("Create", ctx, nil, mock.MatchedBy(func(u *user.User) bool {
			return u.Email().Value() == "buyer@example.com" && u.IsActive()
		})).Return(userID, nil)

		result, err := f.commands.VerifyOTP(ctx, request.VerifyOTPRequest{
			Email: "buyer@example.com",
			Code:  code,
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, userID, result.UserID)
		assert.NotEmpty(t, result.TokenPair.AccessToken)
		assert.NotEmpty(t, result.TokenPair.RefreshToken)
		f.users.AssertExpectations(t)
	})

	t.Run("duplicate email surfaces when the row is written", func(t *testing.T) {
		f := newAuthFixture()
		require.NoError(t, f.commands.Register(ctx, req))

		code := f.mailer.LastCode("buyer@example.com")
		require.NotEmpty(t, code)

		f.users.On("Create", ctx, nil, mock.Anything).Return(uuid.Nil, duplicateKeyErr())

		_, err := f.commands.VerifyOTP(ctx, request.VerifyOTPRequest{
			Email: "buyer@example.com",
			Code:  code,
		})

		assert.ErrorIs(t, err, commands.ErrEmailAlreadyUsed)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newAuthFixture()
		require.NoError(t, f.commands.Register(ctx, req))

		_, err := f.commands.VerifyOTP(ctx, request.VerifyOTPRequest{
			Email: "buyer@example.com",
			Code:  "0000",
		})

		assert.ErrorIs(t, err, commands.ErrInvalidOTP)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture()
		f.reads.On("UserByEmail", ctx, "buyer@example.com").Return(&shared.UserSnapshot{
			ID:           userID,
			Email:        "buyer@example.com",
			PasswordHash: mustHash(t, "password123"),
			Role:         "buyer",
			IsActive:     true,
		}, nil)
		f.users.On("UpdateLastLogin", ctx, nil, userID).Return(nil)

		result, err := f.commands.Login(ctx, request.LoginRequest{
			Email:    "buyer@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, userID, result.UserID)
		assert.NotEmpty(t, result.TokenPair.AccessToken)
		assert.NotEmpty(t, result.TokenPair.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.reads.On("UserByEmail", ctx, "buyer@example.com").Return(&shared.UserSnapshot{
			ID:           userID,
			Email:        "buyer@example.com",
			PasswordHash: mustHash(t, "password123"),
			Role:         "buyer",
			IsActive:     true,
		}, nil)

		_, err := f.commands.Login(ctx, request.LoginRequest{
			Email:    "buyer@example.com",
			Password: "wrongpassword",
		})

		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email reports the same error as a bad password", func(t *testing.T) {
		f := newAuthFixture()
		f.reads.On("UserByEmail", ctx, "nobody@example.com").Return(nil, notFoundErr())

		_, err := f.commands.Login(ctx, request.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newAuthFixture()
		f.reads.On("UserByEmail", ctx, "buyer@example.com").Return(&shared.UserSnapshot{
			ID:           userID,
			Email:        "buyer@example.com",
			PasswordHash: mustHash(t, "password123"),
			Role:         "buyer",
			IsActive:     false,
		}, nil)

		_, err := f.commands.Login(ctx, request.LoginRequest{
			Email:    "buyer@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, commands.ErrUserInactive)
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	snap := &shared.UserSnapshot{ID: userID, Email: "buyer@example.com"}

	t.Run("forgot, verify the emailed code, then reset", func(t *testing.T) {
		f := newAuthFixture()
		f.reads.On("UserByEmail", ctx, "buyer@example.com").Return(snap, nil)
		f.users.On("UpdatePassword", ctx, nil, userID, mock.Anything).Return(nil)

		err := f.commands.ForgotPassword(ctx, request.ForgotPasswordRequest{Email: "buyer@example.com"})
		require.NoError(t, err)

		code := f.mailer.LastCode("buyer@example.com")
		require.NotEmpty(t, code)

		result, err := f.commands.VerifyOTP(ctx, request.VerifyOTPRequest{
			Email: "buyer@example.com",
			Code:  code,
		})
		require.NoError(t, err)
		assert.Nil(t, result)

		err = f.commands.ResetPassword(ctx, request.ResetPasswordRequest{
			Email:       "buyer@example.com",
			NewPassword: "newpassword456",
		})

		require.NoError(t, err)
		f.users.AssertExpectations(t)
	})

	t.Run("unknown address is silently accepted", func(t *testing.T) {
		f := newAuthFixture()
		f.reads.On("UserByEmail", ctx, "nobody@example.com").Return(nil, notFoundErr())

		err := f.commands.ForgotPassword(ctx, request.ForgotPasswordRequest{Email: "nobody@example.com"})

		assert.NoError(t, err)
		assert.Empty(t, f.mailer.LastCode("nobody@example.com"))
	})

	t.Run("reset without a verified code", func(t *testing.T) {
		f := newAuthFixture()

		err := f.commands.ResetPassword(ctx, request.ResetPasswordRequest{
			Email:       "buyer@example.com",
			NewPassword: "newpassword456",
		})

		assert.ErrorIs(t, err, commands.ErrInvalidOTP)
		f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("verified flag is consumed by the first reset", func(t *testing.T) {
		f := newAuthFixture()
		f.reads.On("UserByEmail", ctx, "buyer@example.com").Return(snap, nil)
		f.users.On("UpdatePassword", ctx, nil, userID, mock.Anything).Return(nil)

		require.NoError(t, f.commands.ForgotPassword(ctx, request.ForgotPasswordRequest{Email: "buyer@example.com"}))
		code := f.mailer.LastCode("buyer@example.com")

		_, err := f.commands.VerifyOTP(ctx, request.VerifyOTPRequest{Email: "buyer@example.com", Code: code})
		require.NoError(t, err)

		require.NoError(t, f.commands.ResetPassword(ctx, request.ResetPasswordRequest{
			Email:       "buyer@example.com",
			NewPassword: "newpassword456",
		}))

		err = f.commands.ResetPassword(ctx, request.ResetPasswordRequest{
			Email:       "buyer@example.com",
			NewPassword: "anotherpassword789",
		})
		assert.ErrorIs(t, err, commands.ErrInvalidOTP)
	})
}
