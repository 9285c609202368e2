package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"

	IdentityProviderGoTrue = "gotrue"
	IdentityProviderLocal  = "local"
)

type Config struct {
	Port            string
	DatabaseURL     string
	AllowOrigins    []string
	LogstashTCPAddr string
	LogLevel        string

	OTPTTL        time.Duration
	ResetTokenTTL time.Duration

	MailProvider string
	MailFrom     string
	MailBrand    string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
	ResendAPIKey string

	IdentityProvider string
	GoTrueURL        string
	GoTrueServiceKey string
	GoTrueJWTSecret  string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	mailProvider := strings.ToLower(getenv("MAIL_PROVIDER", MailProviderSMTP))
	identityProvider := strings.ToLower(getenv("IDENTITY_PROVIDER", IdentityProviderGoTrue))

	cfg := Config{
		Port:             getenv("PORT", "8080"),
		DatabaseURL:      must("DATABASE_URL"),
		AllowOrigins:     splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:  getenv("LOGSTASH_TCP_ADDR", ""),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		OTPTTL:           getduration("OTP_TTL", 10*time.Minute),
		ResetTokenTTL:    getduration("RESET_TOKEN_TTL", 15*time.Minute),
		MailProvider:     mailProvider,
		MailFrom:         getenv("MAIL_FROM", getenv("SMTP_FROM", "")),
		MailBrand:        getenv("MAIL_BRAND", "Heritage Bites"),
		SMTPHost:         getenv("SMTP_HOST", ""),
		SMTPPort:         getenv("SMTP_PORT", "587"),
		SMTPUsername:     getenv("SMTP_USERNAME", ""),
		SMTPPassword:     getenv("SMTP_PASSWORD", ""),
		SMTPUseTLS:       getenv("SMTP_USE_TLS", "false") == "true",
		IdentityProvider: identityProvider,
	}

	switch mailProvider {
	case MailProviderResend:
		cfg.ResendAPIKey = must("RESEND_API_KEY")
	default:
		cfg.MailProvider = MailProviderSMTP
	}

	switch identityProvider {
	case IdentityProviderLocal:
	default:
		cfg.IdentityProvider = IdentityProviderGoTrue
		cfg.GoTrueURL = must("GOTRUE_URL")
		cfg.GoTrueServiceKey = getenv("GOTRUE_SERVICE_KEY", "")
		cfg.GoTrueJWTSecret = getenv("GOTRUE_JWT_SECRET", "")
		if cfg.GoTrueServiceKey == "" && cfg.GoTrueJWTSecret == "" {
			panic("missing env: GOTRUE_SERVICE_KEY or GOTRUE_JWT_SECRET")
		}
	}

	return cfg
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getduration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(getenv(k, ""))
	if err != nil || v <= 0 {
		return d
	}
	return v
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
