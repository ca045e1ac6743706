package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/metrics"
	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/pkg/cryptox"
	"github.com/dabotcentral/central/pkg/httpx"
	"github.com/dabotcentral/central/pkg/slogx"
)

// Resolver maps a bearer credential to the caller it belongs to.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (domain.Identity, error)
}

// credentialFromRequest reads the bearer credential from the Authorization
// header. Without that header an API key may be passed as the api_key query
// parameter; nothing else is accepted there.
func credentialFromRequest(r *http.Request) string {
	if r.Header.Get("Authorization") != "" {
		return httpx.BearerToken(r)
	}
	if key := r.URL.Query().Get("api_key"); cryptox.IsAPIKey(key) {
		return key
	}
	return ""
}

// AuthnMiddleware resolves the request credential and stores the identity in
// the request context. Failed resolutions are answered with 401.
func AuthnMiddleware(resolver Resolver, m *metrics.Metrics) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := credentialFromRequest(r)

			id, err := resolver.Resolve(r.Context(), credential)
			if err != nil {
				m.ObserveAuthentication(credentialKind(credential), authOutcome(err))
				writeServiceError(w, r, err)
				return
			}
			m.ObserveAuthentication(string(id.Method), metrics.OutcomeSuccess)

			ctx := WithIdentity(r.Context(), id)
			ctx = slogx.With(ctx,
				slog.String("user_id", id.UserID),
				slog.String("auth_method", string(id.Method)),
			)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose role does not satisfy required with 403.
// It must run after AuthnMiddleware.
func RequireRole(required domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeServiceError(w, r, service.ErrMissingCredential)
				return
			}
			if err := service.Authorize(id, required); err != nil {
				slogx.FromContext(r.Context()).Info("role requirement not met",
					slog.String("required", string(required)),
					slog.String("role", string(id.Role)),
				)
				writeServiceError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func credentialKind(credential string) string {
	switch {
	case credential == "":
		return "none"
	case cryptox.IsAPIKey(credential):
		return string(domain.AuthMethodAPIKey)
	default:
		return string(domain.AuthMethodSession)
	}
}

func authOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		return metrics.OutcomeMissing
	case errors.Is(err, service.ErrInvalidCredential):
		return metrics.OutcomeInvalid
	case errors.Is(err, service.ErrExpiredCredential):
		return metrics.OutcomeExpired
	default:
		return metrics.OutcomeError
	}
}
