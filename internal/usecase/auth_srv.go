package usecase

import (
	"context"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/request"
	"wheelshare/internal/dto/response"
	"wheelshare/pkg/apperr"
	"wheelshare/pkg/mailer"
	"wheelshare/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	SendOTP(ctx context.Context, req *request.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	mail   mailer.Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	// Drivers must register with a license number.
	if req.Role == string(entity.RoleDriver) && (req.LicenseNumber == nil || *req.LicenseNumber == "") {
		return nil, apperr.InvalidArgument("license number is required for drivers")
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check existing email", zap.Error(err))
		return nil, apperr.Wrap(apperr.CodeInternal, "check existing email", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(apperr.CodeInternal, "hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:      req.FullName,
		Email:         req.Email,
		PasswordHash:  hash,
		Phone:         req.Phone,
		Role:          entity.UserRole(req.Role),
		LicenseNumber: req.LicenseNumber,
		EmailVerified: false,
		IsActive:      true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "create user", err)
	}

	if err := s.issueOTP(ctx, user); err != nil {
		// Registration succeeded; the user can re-request the OTP.
		s.log.Warn("Failed to issue registration OTP",
			zap.Error(err),
			zap.String("email", user.Email))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, apperr.Wrap(apperr.CodeInternal, "find user", err)
	}

	// Same message either way so login does not leak which emails exist.
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("account is deactivated")
	}

	if !user.EmailVerified {
		return nil, apperr.Forbidden("email is not verified")
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "create session", err)
	}

	token, expiresAt, err := utils.GenerateToken(s.config.JWT, user.ID, string(user.Role), session.ID)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err))
		return nil, apperr.Wrap(apperr.CodeInternal, "generate token", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", session.ID.String()))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, sessionID); err != nil {
		s.log.Error("Failed to revoke session",
			zap.Error(err),
			zap.String("session_id", sessionID.String()))
		return apperr.Wrap(apperr.CodeInternal, "revoke session", err)
	}

	return nil
}

func (s *authService) SendOTP(ctx context.Context, req *request.SendOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "find user", err)
	}
	if user == nil {
		return apperr.NotFound("no account for this email")
	}
	if user.EmailVerified {
		return apperr.InvalidState("email is already verified")
	}

	return s.issueOTP(ctx, user)
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	otp, err := s.repo.OTP.FindValidOTP(ctx, req.Email, req.OTP, string(entity.OTPTypeEmailVerification))
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "find OTP", err)
	}
	if otp == nil {
		return apperr.InvalidArgument("invalid or expired OTP")
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "find user", err)
	}
	if user == nil {
		return apperr.NotFound("no account for this email")
	}

	if err := s.repo.OTP.MarkAsUsed(ctx, otp.ID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "mark OTP used", err)
	}

	user.EmailVerified = true
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "update user", err)
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))

	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) issueOTP(ctx context.Context, user *entity.User) error {
	code := utils.GenerateOTP(s.config.OTP.Length)

	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Email:     user.Email,
		OTPCode:   code,
		OTPType:   entity.OTPTypeEmailVerification,
		ExpiresAt: time.Now().Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
	}

	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "create OTP", err)
	}

	// Delivery is best effort and must not block the request.
	go func(email, code string, expiry int) {
		if err := s.mail.SendOTP(email, code, expiry); err != nil {
			s.log.Error("Failed to send OTP email",
				zap.Error(err),
				zap.String("email", email))
		}
	}(user.Email, code, s.config.OTP.ExpiryMinutes)

	return nil
}
