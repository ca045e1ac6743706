package http

import (
	"context"

	"github.com/dabotcentral/central/internal/auth/domain"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// WithIdentity stores the authenticated caller in ctx.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the caller stored by the authn middleware.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(domain.Identity)
	return id, ok && id.UserID != ""
}
