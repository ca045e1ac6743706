package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/pkg/cryptox"
	"github.com/dabotcentral/central/pkg/idx"
	"github.com/dabotcentral/central/pkg/slogx"
)

type APIKeyService struct {
	Store store.Store
	Now   func() time.Time

	touches sync.WaitGroup
}

// Create issues a new active key for owner. The returned Key field is the
// only time the raw key leaves the service.
func (s *APIKeyService) Create(ctx context.Context, ownerID, name string) (domain.APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.APIKey{}, validationError("name is required")
	}

	raw, err := cryptox.GenerateAPIKey()
	if err != nil {
		return domain.APIKey{}, fmt.Errorf("generate api key: %w", err)
	}

	key := domain.APIKey{
		ID:        idx.New().String(),
		UserID:    ownerID,
		Key:       raw,
		Name:      name,
		IsActive:  true,
		CreatedAt: now(s.Now),
	}
	if err := s.Store.APIKeys().CreateAPIKey(ctx, key); err != nil {
		return domain.APIKey{}, persistenceError(ctx, "create api key", err)
	}

	slogx.FromContext(ctx).Info("api key created",
		slog.String("api_key_id", key.ID),
		slog.String("user_id", ownerID),
	)
	return key, nil
}

// List returns owner's keys newest first. Key is always empty.
func (s *APIKeyService) List(ctx context.Context, ownerID string) ([]domain.APIKey, error) {
	keys, err := s.Store.APIKeys().ListAPIKeysByUser(ctx, ownerID)
	if err != nil {
		return nil, persistenceError(ctx, "list api keys", err)
	}
	for i := range keys {
		keys[i].Key = ""
	}
	return keys, nil
}

// Revoke deactivates the key if owner holds it. Keys that don't exist or
// belong to someone else are silently ignored.
func (s *APIKeyService) Revoke(ctx context.Context, ownerID, keyID string) error {
	if keyID == "" {
		return validationError("key id is required")
	}
	if err := s.Store.APIKeys().DeactivateAPIKey(ctx, ownerID, keyID); err != nil {
		return persistenceError(ctx, "deactivate api key", err)
	}
	return nil
}

// Validate resolves an active key to its owner and records its use in the
// background.
func (s *APIKeyService) Validate(ctx context.Context, raw string) (domain.User, domain.APIKey, error) {
	if raw == "" {
		return domain.User{}, domain.APIKey{}, ErrMissingCredential
	}

	key, err := s.Store.APIKeys().GetAPIKeyByKey(ctx, raw)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.APIKey{}, ErrInvalidCredential
		}
		return domain.User{}, domain.APIKey{}, persistenceError(ctx, "get api key", err)
	}
	if !key.IsActive {
		return domain.User{}, domain.APIKey{}, ErrInvalidCredential
	}

	user, err := s.Store.Users().GetUserByID(ctx, key.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.APIKey{}, ErrInvalidCredential
		}
		return domain.User{}, domain.APIKey{}, persistenceError(ctx, "get api key owner", err)
	}

	s.touch(ctx, key.ID, now(s.Now))
	return user, key, nil
}

// Wait blocks until every pending last-used update has finished.
func (s *APIKeyService) Wait() {
	s.touches.Wait()
}

func (s *APIKeyService) touch(ctx context.Context, keyID string, at time.Time) {
	ctx = context.WithoutCancel(ctx)

	s.touches.Add(1)
	go func() {
		defer s.touches.Done()
		if err := s.Store.APIKeys().TouchAPIKey(ctx, keyID, at); err != nil {
			slogx.FromContext(ctx).Warn("failed to update api key last used",
				slog.String("api_key_id", keyID),
				slog.Any("error", err),
			)
		}
	}()
}
