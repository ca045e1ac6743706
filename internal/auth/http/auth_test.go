package http_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestSendAndVerifyOTP(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")
	ctx := context.Background()

	rec := env.do(t, http.MethodPost, "/auth/send-otp", "", map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	sent := decode[authsdk.MessageResponse](t, rec)
	require.True(t, sent.Success)
	require.Equal(t, "OTP sent to your email", sent.Message)
	require.Equal(t, 1, env.mail.count())

	code := env.mail.lastCode(t)
	stored, err := env.store.OTPCodes().GetLatestRedeemableOTPCode(ctx, "a@b.com", code, time.Now().UTC())
	require.NoError(t, err)
	require.False(t, stored.Used)

	rec = env.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]string{"email": "a@b.com", "code": code})
	require.Equal(t, http.StatusOK, rec.Code)
	verified := decode[authsdk.VerifyOTPResponse](t, rec)
	require.True(t, verified.Success)
	require.Equal(t, "Login successful", verified.Message)
	require.Regexp(t, `^[0-9a-f]{64}$`, verified.Token)
	require.Equal(t, "a@b.com", verified.User.Email)

	user, err := env.store.Users().GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, verified.User.ID, user.ID)
	require.Equal(t, domain.RoleStandard, user.Role)
}

func TestVerifyOTPTwice(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/auth/send-otp", "", map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := map[string]string{"email": "a@b.com", "code": env.mail.lastCode(t)}

	rec = env.do(t, http.MethodPost, "/auth/verify-otp", "", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/verify-otp", "", body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	apiErr := decode[authsdk.APIError](t, rec)
	require.False(t, apiErr.Success)
	require.Equal(t, authsdk.ErrorCodeInvalidCredential, apiErr.Code)
}

func TestSendOTPFailures(t *testing.T) {
	t.Parallel()

	t.Run("invalid email", func(t *testing.T) {
		env := newTestEnv(t, "")
		rec := env.do(t, http.MethodPost, "/auth/send-otp", "", map[string]string{"email": "not-an-email"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, authsdk.ErrorCodeValidation, decode[authsdk.APIError](t, rec).Code)
		require.Zero(t, env.mail.count())
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t, "")
		rec := env.do(t, http.MethodPost, "/auth/send-otp", "", "just a string")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delivery failure", func(t *testing.T) {
		env := newTestEnv(t, "")
		env.mail.err = errors.New("provider down")

		rec := env.do(t, http.MethodPost, "/auth/send-otp", "", map[string]string{"email": "a@b.com"})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		apiErr := decode[authsdk.APIError](t, rec)
		require.Equal(t, authsdk.ErrorCodeDeliveryFailed, apiErr.Code)
		require.NotContains(t, rec.Body.String(), "provider down")
	})
}

func TestVerifyOTPRequiresFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]string{"code": "123456"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	token := env.login(t, "a@b.com")

	rec := env.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[authsdk.MeResponse](t, rec)
	require.True(t, me.Success)
	require.Equal(t, "a@b.com", me.User.Email)
	require.Equal(t, "standard", me.User.Role)
	require.NotNil(t, me.User.LastLogin)

	t.Run("missing token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/me", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, authsdk.ErrorCodeMissingCredential, decode[authsdk.APIError](t, rec).Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Bearer"))
	})

	t.Run("unknown token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/me", strings.Repeat("0", 64), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, authsdk.ErrorCodeInvalidCredential, decode[authsdk.APIError](t, rec).Code)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no token provided", decode[authsdk.APIError](t, rec).Message)

	token := env.login(t, "a@b.com")

	rec = env.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Logged out successfully", decode[authsdk.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "logout is idempotent")

	rec = env.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
