package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/njprem/HeritageBites_Reset_API/internal/config"
	"github.com/njprem/HeritageBites_Reset_API/internal/identity"
	"github.com/njprem/HeritageBites_Reset_API/internal/logging"
	"github.com/njprem/HeritageBites_Reset_API/internal/repository/ports"
	"github.com/njprem/HeritageBites_Reset_API/internal/repository/postgres"
	"github.com/njprem/HeritageBites_Reset_API/internal/service"
	httpx "github.com/njprem/HeritageBites_Reset_API/internal/transport/http"
	"github.com/njprem/HeritageBites_Reset_API/internal/transport/mail"
)

func main() {
	cfg := config.Load()

	logger, closer := logging.New(cfg.LogLevel, cfg.LogstashTCPAddr)
	defer closer.Close()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	defer db.Close()

	identityProvider, err := newIdentityProvider(cfg, db)
	if err != nil {
		logger.WithError(err).Fatal("configure identity provider")
	}
	mailer, err := newMailer(cfg)
	if err != nil {
		logger.WithError(err).Fatal("configure mailer")
	}

	resets := service.NewPasswordResetService(
		postgres.NewUserRepo(db),
		identityProvider,
		mailer,
		logger,
		service.PasswordResetConfig{
			Brand:         cfg.MailBrand,
			OTPTTL:        cfg.OTPTTL,
			ResetTokenTTL: cfg.ResetTokenTTL,
		},
	)

	e := httpx.NewRouter(cfg.AllowOrigins, logger)
	httpx.RegisterPasswordReset(e, resets)
	httpx.RegisterSwagger(e, "docs/swagger.yaml", logger)

	logger.WithFields(logrus.Fields{
		"port":              cfg.Port,
		"mail_provider":     cfg.MailProvider,
		"identity_provider": cfg.IdentityProvider,
		"otp_ttl":           cfg.OTPTTL.String(),
		"reset_token_ttl":   cfg.ResetTokenTTL.String(),
		"logstash":          cfg.LogstashTCPAddr != "",
	}).Info("password reset api starting")

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen and serve")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown http server")
	}
	logger.Info("password reset api stopped")
}

func newIdentityProvider(cfg config.Config, db *sqlx.DB) (ports.IdentityProvider, error) {
	if cfg.IdentityProvider == config.IdentityProviderLocal {
		return identity.NewLocalProvider(postgres.NewCredentialRepo(db)), nil
	}
	return identity.NewGoTrueProvider(cfg.GoTrueURL, cfg.GoTrueServiceKey, cfg.GoTrueJWTSecret)
}

func newMailer(cfg config.Config) (ports.EmailSender, error) {
	if cfg.MailProvider == config.MailProviderResend {
		return mail.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	}
	return mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.SMTPUseTLS), nil
}
