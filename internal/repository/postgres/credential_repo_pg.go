package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CredentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepo(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) UpsertPassword(ctx context.Context, userID uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `
        INSERT INTO user_credentials (user_id, password_hash, password_salt)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE
        SET password_hash = EXCLUDED.password_hash,
            password_salt = EXCLUDED.password_salt,
            updated_at = NOW()
    `
	_, err := r.db.ExecContext(ctx, query, userID, passwordHash, passwordSalt)
	return err
}
