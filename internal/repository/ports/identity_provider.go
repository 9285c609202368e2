package ports

import (
	"context"

	"github.com/google/uuid"
)

// IdentityProvider owns credential storage and performs the actual password
// change for a user identity.
type IdentityProvider interface {
	SetPassword(ctx context.Context, identityID uuid.UUID, newPassword string) error
}
