package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/HeritageBites_Reset_API/internal/service"
	"github.com/njprem/HeritageBites_Reset_API/internal/util"
)

type PasswordResetter interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

type ResetHandler struct {
	resets PasswordResetter
}

func RegisterPasswordReset(e *echo.Echo, resets PasswordResetter) {
	handler := &ResetHandler{resets: resets}

	e.POST("/sendOtp", handler.sendOTP)
	e.POST("/verifyOtp", handler.verifyOTP)
	e.POST("/resetPassword", handler.resetPassword)
}

func (h *ResetHandler) sendOTP(c echo.Context) error {
	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.resets.RequestOTP(c.Request().Context(), req.Email); err != nil {
		return respondResetError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("OTP sent successfully"))
}

func (h *ResetHandler) verifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	token, err := h.resets.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return respondResetError(c, err)
	}
	return c.JSON(http.StatusOK, VerifyOTPResponse{
		Message:    "OTP verified successfully",
		ResetToken: token,
	})
}

func (h *ResetHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.resets.ResetPassword(c.Request().Context(), req.ResetToken, req.NewPassword); err != nil {
		return respondResetError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("Password updated successfully"))
}

func respondResetError(c echo.Context, err error) error {
	return c.JSON(resetErrorStatus(err), util.Error(service.UserMessage(err)))
}

func resetErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrExpired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidResetToken):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
