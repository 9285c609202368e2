package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/njprem/HeritageBites_Reset_API/internal/service"
)

type fakeResetter struct {
	requestErr error
	verifyErr  error
	resetErr   error
	token      string

	gotEmail    string
	gotOTP      string
	gotToken    string
	gotPassword string
}

func (f *fakeResetter) RequestOTP(_ context.Context, email string) error {
	f.gotEmail = email
	return f.requestErr
}

func (f *fakeResetter) VerifyOTP(_ context.Context, email, otp string) (string, error) {
	f.gotEmail = email
	f.gotOTP = otp
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.token, nil
}

func (f *fakeResetter) ResetPassword(_ context.Context, resetToken, newPassword string) error {
	f.gotToken = resetToken
	f.gotPassword = newPassword
	return f.resetErr
}

func newTestServer(resets PasswordResetter) *echo.Echo {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	e := NewRouter([]string{"*"}, logger)
	RegisterPasswordReset(e, resets)
	return e
}

func postJSON(t *testing.T, e *echo.Echo, path, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, payload
}

func TestSendOTPHandler(t *testing.T) {
	resets := &fakeResetter{}
	e := newTestServer(resets)

	rec, payload := postJSON(t, e, "/sendOtp", `{"email":"alice@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["message"] != "OTP sent successfully" {
		t.Fatalf("unexpected message %q", payload["message"])
	}
	if resets.gotEmail != "alice@example.com" {
		t.Fatalf("expected email to be forwarded, got %q", resets.gotEmail)
	}
}

func TestSendOTPHandlerUnknownUser(t *testing.T) {
	resets := &fakeResetter{
		requestErr: service.NewResetError(service.ErrUserNotFound, "User not found", nil),
	}
	e := newTestServer(resets)

	rec, payload := postJSON(t, e, "/sendOtp", `{"email":"ghost@example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if payload["error"] != "User not found" {
		t.Fatalf("unexpected error %q", payload["error"])
	}
}

func TestSendOTPHandlerMalformedBody(t *testing.T) {
	e := newTestServer(&fakeResetter{})

	rec, payload := postJSON(t, e, "/sendOtp", `{"email":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if payload["error"] == "" {
		t.Fatalf("expected error message")
	}
}

func TestVerifyOTPHandler(t *testing.T) {
	resets := &fakeResetter{token: strings.Repeat("ab", 32)}
	e := newTestServer(resets)

	rec, payload := postJSON(t, e, "/verifyOtp", `{"email":"alice@example.com","otp":"482913"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["message"] != "OTP verified successfully" {
		t.Fatalf("unexpected message %q", payload["message"])
	}
	if payload["resetToken"] != resets.token {
		t.Fatalf("expected reset token in body, got %q", payload["resetToken"])
	}
	if resets.gotOTP != "482913" {
		t.Fatalf("expected otp to be forwarded, got %q", resets.gotOTP)
	}
}

func TestResetPasswordHandler(t *testing.T) {
	resets := &fakeResetter{}
	e := newTestServer(resets)

	rec, payload := postJSON(t, e, "/resetPassword", `{"resetToken":"tok","newPassword":"NewPass123!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["message"] != "Password updated successfully" {
		t.Fatalf("unexpected message %q", payload["message"])
	}
	if resets.gotToken != "tok" || resets.gotPassword != "NewPass123!" {
		t.Fatalf("unexpected forwarded values %q / %q", resets.gotToken, resets.gotPassword)
	}
}

func TestResetErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", service.NewResetError(service.ErrValidation, "Email is required", nil), http.StatusBadRequest},
		{"invalid otp", service.NewResetError(service.ErrInvalidOTP, "Invalid OTP", nil), http.StatusBadRequest},
		{"expired", service.NewResetError(service.ErrExpired, "OTP expired", nil), http.StatusBadRequest},
		{"not found", service.NewResetError(service.ErrUserNotFound, "User not found", nil), http.StatusNotFound},
		{"invalid token", service.NewResetError(service.ErrInvalidResetToken, "Invalid reset token", nil), http.StatusNotFound},
		{"delivery", service.NewResetError(service.ErrDelivery, "Failed to send OTP email", nil), http.StatusInternalServerError},
		{"provider", service.NewResetError(service.ErrProvider, "Password too weak", nil), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resetErrorStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestResetPasswordHandlerHidesUnclassifiedErrors(t *testing.T) {
	resets := &fakeResetter{resetErr: errors.New("dial tcp 10.0.0.5:5432: connection refused")}
	e := newTestServer(resets)

	rec, payload := postJSON(t, e, "/resetPassword", `{"resetToken":"tok","newPassword":"NewPass123!"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if payload["error"] != "Internal server error" {
		t.Fatalf("expected generic message, got %q", payload["error"])
	}
}
