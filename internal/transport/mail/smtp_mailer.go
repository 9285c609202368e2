package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

var ErrMailerNotConfigured = errors.New("mailer missing configuration")

// SMTPMailer delivers HTML mail through a plain SMTP relay. With useTLS the
// connection is wrapped in TLS from the first byte (SMTPS, usually port 465);
// otherwise net/smtp upgrades through STARTTLS when the server offers it.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	useTLS   bool
}

func NewSMTPMailer(host, port, username, password, from string, useTLS bool) *SMTPMailer {
	return &SMTPMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
		useTLS:   useTLS,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m == nil || m.host == "" || m.port == "" || m.from == "" {
		return ErrMailerNotConfigured
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("mailer: recipient is required")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	message := buildMessage(m.from, to, subject, body)

	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, m.port)
	if !m.useTLS {
		return smtp.SendMail(addr, auth, m.from, []string{to}, message)
	}
	return m.sendImplicitTLS(ctx, addr, auth, to, message)
}

func (m *SMTPMailer) sendImplicitTLS(ctx context.Context, addr string, auth smtp.Auth, to string, message []byte) error {
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(m.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", headerValue(from)))
	message.WriteString(fmt.Sprintf("To: %s\r\n", headerValue(to)))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", headerValue(subject)))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")
	return []byte(message.String())
}

// headerValue strips line breaks so values cannot inject extra headers.
func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(strings.TrimSpace(v))
}
