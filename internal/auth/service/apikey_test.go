package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyCreateAndList(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, ownerID := f.login(t, "admin@b.com")

	_, err := f.apiKeys.Create(ctx, ownerID, "  ")
	require.ErrorIs(t, err, service.ErrValidation)

	first, err := f.apiKeys.Create(ctx, ownerID, "ci")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first.Key, cryptox.APIKeyPrefix))
	require.True(t, first.IsActive)

	f.clock.Advance(time.Second)
	second, err := f.apiKeys.Create(ctx, ownerID, "laptop")
	require.NoError(t, err)

	keys, err := f.apiKeys.List(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	require.Equal(t, second.ID, keys[0].ID, "newest first")
	require.Equal(t, first.ID, keys[1].ID)
	for _, k := range keys {
		require.Empty(t, k.Key)
	}
}

func TestAPIKeyRevoke(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, ownerID := f.login(t, "admin@b.com")
	_, otherID := f.login(t, "other@b.com")

	key, err := f.apiKeys.Create(ctx, ownerID, "ci")
	require.NoError(t, err)

	require.NoError(t, f.apiKeys.Revoke(ctx, otherID, key.ID), "foreign keys are ignored")
	_, _, err = f.apiKeys.Validate(ctx, key.Key)
	require.NoError(t, err)

	require.NoError(t, f.apiKeys.Revoke(ctx, ownerID, key.ID))
	require.NoError(t, f.apiKeys.Revoke(ctx, ownerID, key.ID))
	require.NoError(t, f.apiKeys.Revoke(ctx, ownerID, "missing"))

	keys, err := f.apiKeys.List(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.False(t, keys[0].IsActive)

	_, _, err = f.apiKeys.Validate(ctx, key.Key)
	require.ErrorIs(t, err, service.ErrInvalidCredential)
}

func TestAPIKeyValidateRecordsUse(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, ownerID := f.login(t, "admin@b.com")
	key, err := f.apiKeys.Create(ctx, ownerID, "ci")
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	user, got, err := f.apiKeys.Validate(ctx, key.Key)
	require.NoError(t, err)
	require.Equal(t, ownerID, user.ID)
	require.Equal(t, key.ID, got.ID)

	f.apiKeys.Wait()

	keys, err := f.apiKeys.List(ctx, ownerID)
	require.NoError(t, err)
	require.NotNil(t, keys[0].LastUsedAt)
	require.True(t, f.clock.Now().Equal(*keys[0].LastUsedAt))
}

func TestAuthenticatorResolve(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	token, userID := f.login(t, "a@b.com")
	key, err := f.apiKeys.Create(ctx, userID, "ci")
	require.NoError(t, err)

	t.Run("session", func(t *testing.T) {
		id, err := f.authn.Resolve(ctx, token)
		require.NoError(t, err)
		require.Equal(t, userID, id.UserID)
		require.Equal(t, domain.AuthMethodSession, id.Method)
		require.Empty(t, id.APIKeyID)
	})

	t.Run("api key", func(t *testing.T) {
		id, err := f.authn.Resolve(ctx, key.Key)
		require.NoError(t, err)
		require.Equal(t, userID, id.UserID)
		require.Equal(t, domain.AuthMethodAPIKey, id.Method)
		require.Equal(t, key.ID, id.APIKeyID)
	})

	t.Run("unknown api key", func(t *testing.T) {
		_, err := f.authn.Resolve(ctx, cryptox.APIKeyPrefix+"nope")
		require.ErrorIs(t, err, service.ErrInvalidCredential)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.authn.Resolve(ctx, "   ")
		require.ErrorIs(t, err, service.ErrMissingCredential)
	})
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := domain.Identity{Role: domain.RoleAdmin}
	standard := domain.Identity{Role: domain.RoleStandard}

	require.NoError(t, service.Authorize(admin, domain.RoleAdmin))
	require.NoError(t, service.Authorize(admin, domain.RoleStandard))
	require.NoError(t, service.Authorize(standard, domain.RoleStandard))
	require.ErrorIs(t, service.Authorize(standard, domain.RoleAdmin), service.ErrForbidden)
}

// touchFailingStore fails every last-used update and reports each attempt.
type touchFailingStore struct {
	store.Store
	touched chan string
}

func (s *touchFailingStore) APIKeys() store.APIKeys {
	return &touchFailingKeys{APIKeys: s.Store.APIKeys(), touched: s.touched}
}

type touchFailingKeys struct {
	store.APIKeys
	touched chan string
}

func (k *touchFailingKeys) TouchAPIKey(_ context.Context, id string, _ time.Time) error {
	k.touched <- id
	return errors.New("disk full")
}

func TestAPIKeyValidateIgnoresLastUsedFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, ownerID := f.login(t, "admin@b.com")
	key, err := f.apiKeys.Create(ctx, ownerID, "ci")
	require.NoError(t, err)

	failing := &touchFailingStore{Store: f.store, touched: make(chan string, 2)}
	keys := &service.APIKeyService{Store: failing, Now: f.clock.Now}
	authn := &service.Authenticator{Sessions: f.sessions, APIKeys: keys}
	t.Cleanup(keys.Wait)

	user, got, err := keys.Validate(ctx, key.Key)
	require.NoError(t, err)
	require.Equal(t, ownerID, user.ID)
	require.Equal(t, key.ID, got.ID)

	id, err := authn.Resolve(ctx, key.Key)
	require.NoError(t, err)
	require.Equal(t, ownerID, id.UserID)
	require.Equal(t, domain.AuthMethodAPIKey, id.Method)
	require.Equal(t, key.ID, id.APIKeyID)

	keys.Wait()
	require.Len(t, failing.touched, 2, "both authentications attempted the update")

	stored, err := f.store.APIKeys().GetAPIKeyByKey(ctx, key.Key)
	require.NoError(t, err)
	require.Nil(t, stored.LastUsedAt)
}
