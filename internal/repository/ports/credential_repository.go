package ports

import (
	"context"

	"github.com/google/uuid"
)

type CredentialRepository interface {
	UpsertPassword(ctx context.Context, userID uuid.UUID, passwordHash, passwordSalt []byte) error
}
