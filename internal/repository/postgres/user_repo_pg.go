package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/HeritageBites_Reset_API/internal/domain"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, full_name, created_at, updated_at, otp, otp_expiry, reset_token, reset_token_expiry`

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE lower(email) = lower($1)
        LIMIT 1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE reset_token = $1
        LIMIT 1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, token); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SaveOTP(ctx context.Context, email, otp string, expiresAt time.Time) error {
	const query = `
        UPDATE users
        SET otp = $2,
            otp_expiry = $3,
            updated_at = NOW()
        WHERE lower(email) = lower($1)
    `
	res, err := r.db.ExecContext(ctx, query, email, otp, expiresAt)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *UserRepository) ClearOTP(ctx context.Context, email, otp string) error {
	const query = `
        UPDATE users
        SET otp = NULL,
            otp_expiry = NULL,
            updated_at = NOW()
        WHERE lower(email) = lower($1) AND otp = $2
    `
	_, err := r.db.ExecContext(ctx, query, email, otp)
	return err
}

func (r *UserRepository) ExchangeOTP(ctx context.Context, email, otp, resetToken string, expiresAt time.Time) error {
	const query = `
        UPDATE users
        SET otp = NULL,
            otp_expiry = NULL,
            reset_token = $3,
            reset_token_expiry = $4,
            updated_at = NOW()
        WHERE lower(email) = lower($1) AND otp = $2
    `
	res, err := r.db.ExecContext(ctx, query, email, otp, resetToken, expiresAt)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE users
        SET reset_token = NULL,
            reset_token_expiry = NULL,
            updated_at = NOW()
        WHERE id = $1
    `
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
