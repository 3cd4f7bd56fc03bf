package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"realty-api/internal/domain/user"
	reqdto "realty-api/internal/handler/dto/request"
	"realty-api/internal/infra"
	"realty-api/internal/pkg/errs"
	"realty-api/internal/pkg/jwt"
	"realty-api/internal/pkg/otp"
	"realty-api/internal/pkg/password"
	"realty-api/internal/usecase/shared"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrEmailAlreadyUsed     = errs.New("email already registered")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
	ErrInvalidOTP           = errs.New("invalid or expired verification code")
	ErrOTPResendTooSoon     = errs.New("verification code requested too recently")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	TokenPair *TokenPair
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) error
	// VerifyOTP completes a pending registration and returns the new
	// session, or unlocks the reset-password step (nil result) when the
	// code was issued for a password reset.
	VerifyOTP(ctx context.Context, req reqdto.VerifyOTPRequest) (*LoginResult, error)
	ResendOTP(ctx context.Context, req reqdto.ResendOTPRequest) error
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ForgotPassword(ctx context.Context, req reqdto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req reqdto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req reqdto.ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateProfileRequest) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	otpStore   OTPStore
	mailer     Mailer
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, otpStore OTPStore, mailer Mailer) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		otpStore:   otpStore,
		mailer:     mailer,
	}
}

// Register validates the payload and parks it in the OTP store under a
// fresh verification code. No user row is written until the code comes
// back, so this endpoint never discloses whether an address is taken.
func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) error {
	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return errs.Mark(err, ErrAuthenticationFailed)
	}
	if _, err := req.ToDomain(hash); err != nil {
		return errs.Mark(err, ErrAuthenticationFailed)
	}

	code, err := otp.Generate()
	if err != nil {
		return errs.Wrap(err, "failed to generate verification code")
	}

	reg := PendingRegistration{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         req.Role,
	}
	if err := a.otpStore.SaveRegistration(ctx, req.Email, code, reg); err != nil {
		return err
	}

	if err := a.mailer.SendVerificationCode(req.Email, code); err != nil {
		// The code stays valid in the store, a resend can still deliver it
		slog.Error("failed to send verification email", "email", req.Email, "error", err.Error())
	}
	return nil
}

func (a *authCommandsImpl) VerifyOTP(ctx context.Context, req reqdto.VerifyOTPRequest) (*LoginResult, error) {
	reg, err := a.otpStore.ConsumeRegistration(ctx, req.Email, req.Code)
	if err != nil {
		return nil, err
	}
	if reg != nil {
		return a.completeRegistration(ctx, reg)
	}

	ok, err := a.otpStore.VerifyCode(ctx, OTPPurposePasswordReset, req.Email, req.Code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}
	// The verified flag is now set, ResetPassword may follow.
	return nil, nil
}

// completeRegistration turns a parked payload into a real account. A
// duplicate email only surfaces here, through the unique constraint.
func (a *authCommandsImpl) completeRegistration(ctx context.Context, reg *PendingRegistration) (*LoginResult, error) {
	email, err := user.NewEmail(reg.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	role, err := user.NewRole(reg.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	newUser := user.NewUser(email, reg.PasswordHash, reg.FullName, reg.Phone, role)

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Users().Create(ctx, tx.DB(), newUser)
		if createErr != nil {
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return ErrEmailAlreadyUsed
			}
			return createErr
		}
		userID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	pair, err := a.generateTokenPair(userID, role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{UserID: userID, TokenPair: pair}, nil
}

// ResendOTP re-issues the code for a pending registration. The response
// is the same whether or not one exists.
func (a *authCommandsImpl) ResendOTP(ctx context.Context, req reqdto.ResendOTPRequest) error {
	code, err := otp.Generate()
	if err != nil {
		return errs.Wrap(err, "failed to generate verification code")
	}

	ok, err := a.otpStore.RefreshRegistrationCode(ctx, req.Email, code)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := a.mailer.SendVerificationCode(req.Email, code); err != nil {
		slog.Error("failed to send verification email", "email", req.Email, "error", err.Error())
	}
	return nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	snap, err := a.uow.CommandReads().UserByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.ComparePassword(snap.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !snap.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	tokenPair, err := a.generateTokenPair(snap.ID, role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if updateErr := tx.Users().UpdateLastLogin(ctx, tx.DB(), snap.ID); updateErr != nil {
			slog.Warn("failed to update last login", "user_id", snap.ID, "error", updateErr.Error())
		}
		return nil
	})
	if err != nil {
		slog.Warn("transaction failed during login", "user_id", snap.ID, "error", err.Error())
	}

	return &LoginResult{UserID: snap.ID, TokenPair: tokenPair}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	snap, err := a.uow.CommandReads().UserByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !snap.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	return a.generateTokenPair(snap.ID, role)
}

func (a *authCommandsImpl) generateTokenPair(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (a *authCommandsImpl) ForgotPassword(ctx context.Context, req reqdto.ForgotPasswordRequest) error {
	_, err := a.uow.CommandReads().UserByEmail(ctx, req.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Do not reveal whether the address is registered
			return nil
		}
		return err
	}

	code, err := otp.Generate()
	if err != nil {
		slog.Error("failed to generate reset code", "email", req.Email, "error", err.Error())
		return nil
	}
	if err := a.otpStore.SaveCode(ctx, OTPPurposePasswordReset, req.Email, code); err != nil {
		slog.Error("failed to store reset code", "email", req.Email, "error", err.Error())
		return nil
	}
	if err := a.mailer.SendPasswordResetCode(req.Email, code); err != nil {
		// The code stays valid in the store, a resend can still deliver it
		slog.Error("failed to send reset email", "email", req.Email, "error", err.Error())
	}
	return nil
}

// ResetPassword requires a prior VerifyOTP call that consumed the reset
// code and left the verified flag.
func (a *authCommandsImpl) ResetPassword(ctx context.Context, req reqdto.ResetPasswordRequest) error {
	ok, err := a.otpStore.ConsumeVerified(ctx, OTPPurposePasswordReset, req.Email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}

	hash, err := password.HashPassword(req.NewPassword)
	if err != nil {
		return errs.Mark(err, ErrAuthenticationFailed)
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, readErr := tx.Reads().UserByEmail(ctx, req.Email)
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return readErr
		}
		return tx.Users().UpdatePassword(ctx, tx.DB(), snap.ID, hash)
	})
}

func (a *authCommandsImpl) ChangePassword(ctx context.Context, userID uuid.UUID, req reqdto.ChangePasswordRequest) error {
	snap, err := a.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := password.ComparePassword(snap.PasswordHash, req.CurrentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := password.HashPassword(req.NewPassword)
	if err != nil {
		return errs.Mark(err, ErrAuthenticationFailed)
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdatePassword(ctx, tx.DB(), userID, hash)
	})
}

func (a *authCommandsImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateProfileRequest) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Users().UpdateProfile(ctx, tx.DB(), userID, req.FullName, req.Phone)
		if err != nil && infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	})
}
