package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/HeritageBites_Reset_API/internal/domain"
)

// UserRepository is the user directory backing the reset flow. Lookups return
// sql.ErrNoRows when nothing matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByResetToken(ctx context.Context, token string) (*domain.User, error)
	SaveOTP(ctx context.Context, email, otp string, expiresAt time.Time) error
	// ClearOTP nulls the OTP pair only while it still holds otp.
	ClearOTP(ctx context.Context, email, otp string) error
	// ExchangeOTP clears the OTP pair and stores the reset token pair in a
	// single update, only while the record still holds otp. It returns
	// sql.ErrNoRows when the OTP was consumed or replaced meanwhile.
	ExchangeOTP(ctx context.Context, email, otp, resetToken string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
}
