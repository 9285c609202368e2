package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/njprem/HeritageBites_Reset_API/internal/repository/ports"
	"github.com/njprem/HeritageBites_Reset_API/internal/util"
)

// LocalProvider keeps argon2id password hashes in the service's own database.
type LocalProvider struct {
	credentials ports.CredentialRepository
	params      util.Argon2Params
}

func NewLocalProvider(credentials ports.CredentialRepository) *LocalProvider {
	return &LocalProvider{credentials: credentials, params: util.DefaultArgon2Params}
}

func (p *LocalProvider) SetPassword(ctx context.Context, identityID uuid.UUID, newPassword string) error {
	if identityID == uuid.Nil {
		return &ProviderError{Message: "User not found"}
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return &ProviderError{Message: err.Error()}
	}
	hash, salt, err := p.params.Derive(newPassword)
	if err != nil {
		return fmt.Errorf("derive password: %w", err)
	}
	if err := p.credentials.UpsertPassword(ctx, identityID, hash, salt); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}
