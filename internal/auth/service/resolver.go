package service

import (
	"context"
	"strings"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/pkg/cryptox"
)

// Authenticator turns a bearer credential into the calling identity. API keys
// are recognised by their prefix; anything else is treated as a session token.
type Authenticator struct {
	Sessions *SessionService
	APIKeys  *APIKeyService
}

func (a *Authenticator) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return domain.Identity{}, ErrMissingCredential
	}

	if cryptox.IsAPIKey(credential) {
		user, key, err := a.APIKeys.Validate(ctx, credential)
		if err != nil {
			return domain.Identity{}, err
		}
		id := user.Identity(domain.AuthMethodAPIKey)
		id.APIKeyID = key.ID
		return id, nil
	}

	user, err := a.Sessions.Resolve(ctx, credential)
	if err != nil {
		return domain.Identity{}, err
	}
	return user.Identity(domain.AuthMethodSession), nil
}

// Authorize fails with ErrForbidden unless id satisfies required.
func Authorize(id domain.Identity, required domain.Role) error {
	if !id.Role.Satisfies(required) {
		return ErrForbidden
	}
	return nil
}
