package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/dabotcentral/central/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestCreateAPIKeyRequiresAdmin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	token := env.login(t, "user@b.com")

	rec := env.do(t, http.MethodPost, "/admin/api-keys", token, map[string]string{"name": "ci"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, authsdk.ErrorCodeForbidden, decode[authsdk.APIError](t, rec).Code)

	user, err := env.store.Users().GetUserByEmail(context.Background(), "user@b.com")
	require.NoError(t, err)
	keys, err := env.store.APIKeys().ListAPIKeysByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, keys)

	rec = env.do(t, http.MethodPost, "/admin/api-keys", "", map[string]string{"name": "ci"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	admin := env.loginAdmin(t, "admin@b.com")

	rec := env.do(t, http.MethodPost, "/admin/api-keys", admin, map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/admin/api-keys", admin, map[string]any{"name": 42})
	require.Equal(t, http.StatusBadRequest, rec.Code, "name must be a string")

	rec = env.do(t, http.MethodPost, "/admin/api-keys", admin, map[string]string{"name": "ci"})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[authsdk.CreateAPIKeyResponse](t, rec)
	require.True(t, strings.HasPrefix(created.Key, cryptox.APIKeyPrefix))
	require.Equal(t, "ci", created.Name)

	rec = env.do(t, http.MethodGet, "/admin/api-keys", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), created.Key)
	require.NotContains(t, rec.Body.String(), `"key"`)
	listed := decode[authsdk.ListAPIKeysResponse](t, rec)
	require.Len(t, listed.Keys, 1)
	require.Equal(t, created.ID, listed.Keys[0].ID)
	require.True(t, listed.Keys[0].IsActive)

	// The key authenticates as its owner, including through admin routes.
	rec = env.do(t, http.MethodGet, "/auth/me", created.Key, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin@b.com", decode[authsdk.MeResponse](t, rec).User.Email)

	rec = env.do(t, http.MethodGet, "/admin/api-keys", created.Key, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env.apiKeys.Wait()
	rec = env.do(t, http.MethodGet, "/admin/api-keys", admin, nil)
	require.NotNil(t, decode[authsdk.ListAPIKeysResponse](t, rec).Keys[0].LastUsedAt)

	for range 2 {
		rec = env.do(t, http.MethodDelete, "/admin/api-keys/"+created.ID, admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/auth/me", created.Key, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/admin/api-keys", admin, nil)
	require.False(t, decode[authsdk.ListAPIKeysResponse](t, rec).Keys[0].IsActive)
}

func TestAPIKeyQueryParameter(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	admin := env.loginAdmin(t, "admin@b.com")
	rec := env.do(t, http.MethodPost, "/admin/api-keys", admin, map[string]string{"name": "scripts"})
	require.Equal(t, http.StatusOK, rec.Code)
	key := decode[authsdk.CreateAPIKeyResponse](t, rec).Key

	get := func(target, authz string) int {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, get("/auth/me?api_key="+key, ""))
	require.Equal(t, http.StatusUnauthorized, get("/auth/me?api_key="+admin, ""),
		"session tokens are not accepted in the query")
	require.Equal(t, http.StatusUnauthorized, get("/auth/me?api_key="+key, "Bearer nope"),
		"the header wins over the query")
}

func TestRevokeForeignKeyIsNoop(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	owner := env.loginAdmin(t, "owner@b.com")
	other := env.loginAdmin(t, "other@b.com")

	rec := env.do(t, http.MethodPost, "/admin/api-keys", owner, map[string]string{"name": "ci"})
	created := decode[authsdk.CreateAPIKeyResponse](t, rec)

	rec = env.do(t, http.MethodDelete, "/admin/api-keys/"+created.ID, other, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/auth/me", created.Key, nil)
	require.Equal(t, http.StatusOK, rec.Code, "key survives a revoke by another admin")
}
