package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthUnderBasePath(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "/api")

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	// Auth routes move with the base path too.
	token := env.login(t, "a@b.com")
	rec = env.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProbes(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", decode[authsdk.HealthResponse](t, rec).Version)

	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decode[authsdk.HealthResponse](t, rec)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)

	require.NoError(t, env.store.Close())
	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPreflight(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/admin/api-keys", nil)
	req.Header.Set("Origin", "https://dabotcentral.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	// Non-preflight responses carry the headers as well.
	rec = env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	env.login(t, "a@b.com")
	rec := env.do(t, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `dabotcentral_otp_issued_total{outcome="success"} 1`)
	require.Contains(t, body, `dabotcentral_otp_verifications_total{outcome="success"} 1`)
	require.Contains(t, body, `dabotcentral_authentications_total{method="none",outcome="missing"} 1`)
	require.Contains(t, body, `route="POST /auth/send-otp"`)
}
