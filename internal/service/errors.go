package service

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidOTP        = errors.New("invalid otp")
	ErrInvalidResetToken = errors.New("invalid reset token")
	ErrExpired           = errors.New("expired")
	ErrDelivery          = errors.New("delivery failed")
	ErrProvider          = errors.New("identity provider failure")
	ErrInternal          = errors.New("internal error")
)

// ResetError carries the failure class of a reset flow step together with the
// message that may be shown to the caller. The message never contains the
// OTP, the reset token or the password.
type ResetError struct {
	kind  error
	msg   string
	cause error
}

func NewResetError(kind error, msg string, cause error) *ResetError {
	return &ResetError{kind: kind, msg: msg, cause: cause}
}

func (e *ResetError) Error() string {
	return e.msg
}

func (e *ResetError) Is(target error) bool {
	return target == e.kind
}

func (e *ResetError) Unwrap() error {
	return e.cause
}

func (e *ResetError) Kind() error {
	return e.kind
}

// UserMessage returns the caller-facing message for err.
func UserMessage(err error) string {
	var re *ResetError
	if errors.As(err, &re) && re.msg != "" {
		return re.msg
	}
	return "Internal server error"
}

func internalError(cause error) error {
	return NewResetError(ErrInternal, "Internal server error", cause)
}
