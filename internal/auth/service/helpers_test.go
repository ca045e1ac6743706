package service_test

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite"
	"github.com/dabotcentral/central/pkg/mailx"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// recordingSender keeps every message, including ones it fails.
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

func (s *recordingSender) last(t *testing.T) mailx.Message {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.msgs, "no mail sent")
	return s.msgs[len(s.msgs)-1]
}

func (s *recordingSender) lastCode(t *testing.T) string {
	t.Helper()
	code := codePattern.FindString(s.last(t).TextBody)
	require.NotEmpty(t, code)
	return code
}

type fixture struct {
	store    *sqlite.Store
	clock    *fakeClock
	mail     *recordingSender
	otp      *service.OTPService
	sessions *service.SessionService
	apiKeys  *service.APIKeyService
	authn    *service.Authenticator
	todos    *service.TodoService
	admins   *service.AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	templates, err := service.LoadTemplates()
	require.NoError(t, err)

	f := &fixture{store: st, clock: newFakeClock(), mail: &recordingSender{}}
	f.otp = &service.OTPService{
		Store:     st,
		Mailer:    f.mail,
		Templates: templates,
		From:      "DabotCentral <onboarding@dabotcentral.test>",
		Now:       f.clock.Now,
	}
	f.sessions = &service.SessionService{Store: st, Now: f.clock.Now}
	f.apiKeys = &service.APIKeyService{Store: st, Now: f.clock.Now}
	f.authn = &service.Authenticator{Sessions: f.sessions, APIKeys: f.apiKeys}
	f.todos = &service.TodoService{Store: st, Now: f.clock.Now}
	f.admins = &service.AdminService{Store: st, Now: f.clock.Now}

	t.Cleanup(func() {
		f.apiKeys.Wait()
		_ = st.Close()
	})
	return f
}

// login runs the full OTP flow for email and returns the session token.
func (f *fixture) login(t *testing.T, email string) (string, string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.otp.Issue(ctx, email))
	verified, err := f.otp.Verify(ctx, email, f.mail.lastCode(t))
	require.NoError(t, err)

	token, user, err := f.sessions.CreateForVerifiedEmail(ctx, verified)
	require.NoError(t, err)
	return token, user.ID
}

func (f *fixture) promote(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, f.admins.PromoteAdmins(context.Background(), []string{email}))
}
