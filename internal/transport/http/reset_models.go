package http

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"User not found"`
}

// MessageResponse is returned by steps that only confirm success.
type MessageResponse struct {
	Message string `json:"message" example:"OTP sent successfully"`
}

// SendOTPRequest asks for a reset code to be mailed to the account address.
type SendOTPRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

// VerifyOTPRequest exchanges a mailed code for a reset token.
type VerifyOTPRequest struct {
	Email string `json:"email" example:"user@example.com"`
	OTP   string `json:"otp" example:"482913"`
}

// VerifyOTPResponse carries the reset token issued for a verified code.
type VerifyOTPResponse struct {
	Message    string `json:"message" example:"OTP verified successfully"`
	ResetToken string `json:"resetToken" example:"a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90"`
}

// ResetPasswordRequest spends a reset token on a new password.
type ResetPasswordRequest struct {
	ResetToken  string `json:"resetToken" example:"a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90"`
	NewPassword string `json:"newPassword" example:"NewPass123!"`
}
