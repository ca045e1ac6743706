package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/dabotcentral/central/internal/auth/domain"
	authhttp "github.com/dabotcentral/central/internal/auth/http"
	"github.com/dabotcentral/central/internal/auth/metrics"
	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite"
	"github.com/dabotcentral/central/pkg/httpx"
	"github.com/dabotcentral/central/pkg/mailx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

type recordingSender struct {
	mu   sync.Mutex
	msgs []mailx.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg mailx.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func (s *recordingSender) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.msgs, "no mail sent")
	code := codePattern.FindString(s.msgs[len(s.msgs)-1].TextBody)
	require.NotEmpty(t, code)
	return code
}

type testEnv struct {
	handler  http.Handler
	store    *sqlite.Store
	mail     *recordingSender
	apiKeys  *service.APIKeyService
	admins   *service.AdminService
	registry *prometheus.Registry
	basePath string
}

type envOption func(*authhttp.Router)

func withTodoWriteRole(role domain.Role) envOption {
	return func(r *authhttp.Router) { r.TodoWriteRole = role }
}

func newTestEnv(t *testing.T, basePath string, opts ...envOption) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	templates, err := service.LoadTemplates()
	require.NoError(t, err)

	env := &testEnv{
		store:    st,
		mail:     &recordingSender{},
		registry: prometheus.NewRegistry(),
		basePath: basePath,
	}

	sessions := &service.SessionService{Store: st}
	env.apiKeys = &service.APIKeyService{Store: st}
	env.admins = &service.AdminService{Store: st}

	router := authhttp.NewRouter(authhttp.RouterConfig{
		BasePath:     basePath,
		BuildVersion: "test",
		CORS:         httpx.DefaultCORSConfig(),
		Store:        st,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:      metrics.NewMetrics(env.registry),
		Gatherer:     env.registry,
	})
	router.OTPService = &service.OTPService{
		Store:     st,
		Mailer:    env.mail,
		Templates: templates,
		From:      "DabotCentral <onboarding@dabotcentral.test>",
	}
	router.SessionService = sessions
	router.APIKeyService = env.apiKeys
	router.Authenticator = &service.Authenticator{Sessions: sessions, APIKeys: env.apiKeys}
	router.TodoService = &service.TodoService{Store: st}
	router.UserService = &service.UserService{Store: st}
	for _, opt := range opts {
		opt(router)
	}
	router.ApplyRoutes()
	env.handler = router

	t.Cleanup(func() {
		env.apiKeys.Wait()
		_ = st.Close()
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, e.basePath+path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// login drives send-otp and verify-otp and returns the session token.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/send-otp", "", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]string{
		"email": email,
		"code":  e.mail.lastCode(t),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

// loginAdmin promotes email before logging in.
func (e *testEnv) loginAdmin(t *testing.T, email string) string {
	t.Helper()
	require.NoError(t, e.admins.PromoteAdmins(context.Background(), []string{email}))
	return e.login(t, email)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
