package usecase

import (
	"context"
	"testing"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/request"
	"wheelshare/pkg/apperr"
	"wheelshare/pkg/utils"
	"wheelshare/test/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	otps     *mocks.MockOTPRepository
	mail     *mocks.MockMailer
	service  AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    new(mocks.MockUserRepository),
		sessions: new(mocks.MockSessionRepository),
		otps:     new(mocks.MockOTPRepository),
		mail:     new(mocks.MockMailer),
	}

	repo := &repository.Repository{
		User:    f.users,
		Session: f.sessions,
		OTP:     f.otps,
	}

	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24},
		OTP: utils.OTPConfig{ExpiryMinutes: 10, Length: 6},
	}

	f.mail.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	f.service = NewAuthService(repo, f.mail, config, zap.NewNop())
	return f
}

func verifiedUser(password string) *entity.User {
	hash, _ := utils.HashPassword(password)
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		FullName:      "Asha Rao",
		Email:         "asha@example.com",
		PasswordHash:  hash,
		Role:          entity.RoleCustomer,
		EmailVerified: true,
		IsActive:      true,
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(verifiedUser("x"), nil)

	_, err := f.service.Register(context.Background(), &request.RegisterRequest{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "supersecret",
		Role:     "customer",
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
}

func TestRegister_DriverNeedsLicense(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Register(context.Background(), &request.RegisterRequest{
		FullName: "Ravi Kumar",
		Email:    "ravi@example.com",
		Password: "supersecret",
		Role:     "driver",
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Success(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "asha@example.com" && !u.EmailVerified && u.IsActive
	})).Return(nil)
	f.otps.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := f.service.Register(context.Background(), &request.RegisterRequest{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "supersecret",
		Role:     "customer",
	})

	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	f.users.AssertExpectations(t)
	f.otps.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(verifiedUser("rightpassword"), nil)

	_, err := f.service.Login(context.Background(), &request.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrongpassword",
	}, "", "")

	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, err := f.service.Login(context.Background(), &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	}, "", "")

	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	f := newAuthFixture()

	user := verifiedUser("supersecret")
	user.EmailVerified = false
	f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := f.service.Login(context.Background(), &request.LoginRequest{
		Email:    user.Email,
		Password: "supersecret",
	}, "", "")

	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture()

	user := verifiedUser("supersecret")
	f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	f.sessions.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.UserID == user.ID && s.ExpiresAt.After(time.Now())
	})).Return(nil)

	auth, err := f.service.Login(context.Background(), &request.LoginRequest{
		Email:    user.Email,
		Password: "supersecret",
	}, "test-agent", "127.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, user.ID.String(), auth.UserID)

	// The issued token must parse back to the same user and session.
	claims, err := utils.ParseToken(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24}, auth.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	f.sessions.AssertExpectations(t)
}

func TestVerifyOTP_InvalidCode(t *testing.T) {
	f := newAuthFixture()

	f.otps.On("FindValidOTP", mock.Anything, "asha@example.com", "123456", string(entity.OTPTypeEmailVerification)).
		Return(nil, nil)

	err := f.service.VerifyOTP(context.Background(), &request.VerifyOTPRequest{
		Email: "asha@example.com",
		OTP:   "123456",
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestVerifyOTP_Success(t *testing.T) {
	f := newAuthFixture()

	user := verifiedUser("supersecret")
	user.EmailVerified = false

	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		Email:      user.Email,
		OTPCode:    "123456",
		OTPType:    entity.OTPTypeEmailVerification,
		ExpiresAt:  time.Now().Add(10 * time.Minute),
	}

	f.otps.On("FindValidOTP", mock.Anything, user.Email, "123456", string(entity.OTPTypeEmailVerification)).
		Return(otp, nil)
	f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	f.otps.On("MarkAsUsed", mock.Anything, otp.ID).Return(nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.EmailVerified
	})).Return(nil)

	err := f.service.VerifyOTP(context.Background(), &request.VerifyOTPRequest{
		Email: user.Email,
		OTP:   "123456",
	})

	require.NoError(t, err)
	f.otps.AssertExpectations(t)
	f.users.AssertExpectations(t)
}
