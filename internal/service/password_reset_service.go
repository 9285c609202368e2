package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/njprem/HeritageBites_Reset_API/internal/repository/ports"
	"github.com/njprem/HeritageBites_Reset_API/internal/util"
)

const (
	DefaultOTPTTL        = 10 * time.Minute
	DefaultResetTokenTTL = 15 * time.Minute
)

type PasswordResetConfig struct {
	Brand         string
	OTPTTL        time.Duration
	ResetTokenTTL time.Duration
}

type RequestOTPInput struct {
	Email string `validate:"required"`
}

type VerifyOTPInput struct {
	Email string `validate:"required"`
	OTP   string `validate:"required"`
}

type ResetPasswordInput struct {
	ResetToken  string `validate:"required"`
	NewPassword string `validate:"required"`
}

// PasswordResetService drives the email OTP reset flow: send an OTP, exchange
// it for a reset token, then spend the token on a password change. It holds no
// flow state of its own; everything lives on the user's reset record.
type PasswordResetService struct {
	users    ports.UserRepository
	identity ports.IdentityProvider
	mailer   ports.EmailSender
	validate *validator.Validate
	log      logrus.FieldLogger

	brand         string
	otpTTL        time.Duration
	resetTokenTTL time.Duration

	now           func() time.Time
	generateOTP   func() (string, error)
	generateToken func() (string, error)
}

func NewPasswordResetService(users ports.UserRepository, identity ports.IdentityProvider, mailer ports.EmailSender, logger logrus.FieldLogger, cfg PasswordResetConfig) *PasswordResetService {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = DefaultOTPTTL
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = DefaultResetTokenTTL
	}
	if strings.TrimSpace(cfg.Brand) == "" {
		cfg.Brand = "Heritage Bites"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PasswordResetService{
		users:         users,
		identity:      identity,
		mailer:        mailer,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		log:           logger,
		brand:         cfg.Brand,
		otpTTL:        cfg.OTPTTL,
		resetTokenTTL: cfg.ResetTokenTTL,
		now:           time.Now,
		generateOTP:   util.GenerateResetOTP,
		generateToken: util.GenerateResetToken,
	}
}

// RequestOTP issues a fresh OTP for the user with the given email and mails
// it. Any previous OTP is overwritten. When delivery fails the OTP that was
// just stored is withdrawn again so no undelivered code stays usable.
func (s *PasswordResetService) RequestOTP(ctx context.Context, email string) error {
	in := RequestOTPInput{Email: strings.TrimSpace(email)}
	if err := s.validate.Struct(in); err != nil {
		return NewResetError(ErrValidation, "Email is required", err)
	}

	logger := s.log.WithField("operation", "request_otp")

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if isNotFound(err) {
			return NewResetError(ErrUserNotFound, "User not found", err)
		}
		logger.WithError(err).Error("find user by email failed")
		return internalError(err)
	}
	logger = logger.WithField("user_id", user.ID.String())

	otp, err := s.generateOTP()
	if err != nil {
		logger.WithError(err).Error("generate otp failed")
		return internalError(err)
	}
	expiresAt := s.now().Add(s.otpTTL)

	if err := s.users.SaveOTP(ctx, user.Email, otp, expiresAt); err != nil {
		if isNotFound(err) {
			return NewResetError(ErrUserNotFound, "User not found", err)
		}
		logger.WithError(err).Error("store otp failed")
		return internalError(err)
	}

	subject, body := composeOTPEmail(s.brand, otp, s.otpTTL)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		logger.WithError(err).Error("send otp email failed")
		if clearErr := s.users.ClearOTP(context.WithoutCancel(ctx), user.Email, otp); clearErr != nil {
			logger.WithError(clearErr).Warn("withdraw undelivered otp failed")
		}
		return NewResetError(ErrDelivery, "Failed to send OTP email", err)
	}

	logger.Info("otp issued")
	return nil
}

// VerifyOTP checks the submitted code and, on success, swaps the OTP for a
// single-use reset token which is returned to the caller.
func (s *PasswordResetService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	in := VerifyOTPInput{Email: strings.TrimSpace(email), OTP: otp}
	if err := s.validate.Struct(in); err != nil {
		return "", NewResetError(ErrValidation, "Email and OTP required", err)
	}

	logger := s.log.WithField("operation", "verify_otp")

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if isNotFound(err) {
			return "", NewResetError(ErrUserNotFound, "User not found", err)
		}
		logger.WithError(err).Error("find user by email failed")
		return "", internalError(err)
	}
	logger = logger.WithField("user_id", user.ID.String())

	if !user.HasOTP() || subtle.ConstantTimeCompare([]byte(*user.OTP), []byte(in.OTP)) != 1 {
		logger.Info("otp mismatch")
		return "", NewResetError(ErrInvalidOTP, "Invalid OTP", nil)
	}

	now := s.now()
	if user.OTPExpired(now) {
		logger.Info("otp expired")
		return "", NewResetError(ErrExpired, "OTP expired", nil)
	}

	token, err := s.generateToken()
	if err != nil {
		logger.WithError(err).Error("generate reset token failed")
		return "", internalError(err)
	}

	if err := s.users.ExchangeOTP(ctx, user.Email, in.OTP, token, now.Add(s.resetTokenTTL)); err != nil {
		if isNotFound(err) {
			logger.Info("otp changed before exchange")
			return "", NewResetError(ErrInvalidOTP, "Invalid OTP", err)
		}
		logger.WithError(err).Error("exchange otp for reset token failed")
		return "", internalError(err)
	}

	logger.Info("otp verified")
	return token, nil
}

// ResetPassword spends a reset token: the identity provider sets the new
// password and the token is cleared. The provider is never contacted for an
// expired token.
func (s *PasswordResetService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	in := ResetPasswordInput{ResetToken: resetToken, NewPassword: newPassword}
	if err := s.validate.Struct(in); err != nil {
		return NewResetError(ErrValidation, "Missing reset token or password", err)
	}

	logger := s.log.WithField("operation", "reset_password")

	user, err := s.users.FindByResetToken(ctx, in.ResetToken)
	if err != nil {
		if isNotFound(err) {
			return NewResetError(ErrInvalidResetToken, "Invalid reset token", err)
		}
		logger.WithError(err).Error("find user by reset token failed")
		return internalError(err)
	}
	logger = logger.WithField("user_id", user.ID.String())

	if user.ResetTokenExpired(s.now()) {
		logger.Info("reset token expired")
		return NewResetError(ErrExpired, "Reset token expired", nil)
	}

	if err := s.identity.SetPassword(ctx, user.ID, in.NewPassword); err != nil {
		logger.WithError(err).Error("identity provider rejected password update")
		return NewResetError(ErrProvider, providerMessage(err), err)
	}

	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		logger.WithError(err).Error("clear reset token failed")
		return internalError(err)
	}

	logger.Info("password reset completed")
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// providerMessage extracts the message an identity provider attached to its
// failure, if it exposes one.
func providerMessage(err error) string {
	var pm interface{ ProviderMessage() string }
	if errors.As(err, &pm) {
		if msg := strings.TrimSpace(pm.ProviderMessage()); msg != "" {
			return msg
		}
	}
	return "Failed to update password"
}
