package mail

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("no-reply@heritagebites.test", "user@example.com", "Your OTP", "<p>123456</p>"))

	for _, want := range []string{
		"From: no-reply@heritagebites.test\r\n",
		"To: user@example.com\r\n",
		"Subject: Your OTP\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"\r\n\r\n<p>123456</p>\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected message to contain %q, got:\n%s", want, msg)
		}
	}
}

func TestBuildMessageStripsHeaderInjection(t *testing.T) {
	msg := string(buildMessage("from@example.com", "user@example.com\r\nBcc: evil@example.com", "hi", "body"))
	if strings.Contains(msg, "\r\nBcc:") {
		t.Fatalf("expected injected header to be neutralised:\n%s", msg)
	}
}

func TestSMTPMailerRequiresConfiguration(t *testing.T) {
	m := NewSMTPMailer("", "587", "", "", "from@example.com", false)
	if err := m.Send(context.Background(), "user@example.com", "s", "b"); !errors.Is(err, ErrMailerNotConfigured) {
		t.Fatalf("expected ErrMailerNotConfigured, got %v", err)
	}
	var nilMailer *SMTPMailer
	if err := nilMailer.Send(context.Background(), "user@example.com", "s", "b"); !errors.Is(err, ErrMailerNotConfigured) {
		t.Fatalf("expected ErrMailerNotConfigured for nil mailer, got %v", err)
	}
}

func TestSMTPMailerHonoursCancelledContext(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", "587", "", "", "from@example.com", false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, "user@example.com", "s", "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewResendMailerRequiresKey(t *testing.T) {
	if _, err := NewResendMailer("", "from@example.com"); !errors.Is(err, ErrMailerNotConfigured) {
		t.Fatalf("expected ErrMailerNotConfigured, got %v", err)
	}
}
