package domain

import "time"

// ResetRecord holds the per-user password reset state. The OTP pair and the
// token pair are never both populated once a flow has been verified.
type ResetRecord struct {
	OTP              *string    `db:"otp" json:"-"`
	OTPExpiry        *time.Time `db:"otp_expiry" json:"-"`
	ResetToken       *string    `db:"reset_token" json:"-"`
	ResetTokenExpiry *time.Time `db:"reset_token_expiry" json:"-"`
}

func (r ResetRecord) HasOTP() bool {
	return r.OTP != nil && *r.OTP != ""
}

func (r ResetRecord) HasResetToken() bool {
	return r.ResetToken != nil && *r.ResetToken != ""
}

// OTPExpired reports whether the stored OTP can no longer be used at now.
// A missing expiry counts as expired.
func (r ResetRecord) OTPExpired(now time.Time) bool {
	if r.OTPExpiry == nil {
		return true
	}
	return now.After(*r.OTPExpiry)
}

// ResetTokenExpired reports whether the stored token can no longer be used at
// now. Tokens must always carry an expiry; a missing one counts as expired.
func (r ResetRecord) ResetTokenExpired(now time.Time) bool {
	if r.ResetTokenExpiry == nil {
		return true
	}
	return r.ResetTokenExpiry.Before(now)
}
