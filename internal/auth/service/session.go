package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/pkg/cryptox"
	"github.com/dabotcentral/central/pkg/idx"
	"github.com/dabotcentral/central/pkg/slogx"
)

const DefaultSessionTTL = 30 * 24 * time.Hour

type SessionService struct {
	Store store.Store
	TTL   time.Duration
	Now   func() time.Time
}

// CreateForVerifiedEmail finds or creates the user for email, records the
// login and opens a new session for them.
func (s *SessionService) CreateForVerifiedEmail(ctx context.Context, email string) (string, domain.User, error) {
	loginAt := now(s.Now)

	token, err := cryptox.GenerateSessionToken()
	if err != nil {
		return "", domain.User{}, fmt.Errorf("generate session token: %w", err)
	}

	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		user, err = tx.Users().UpsertLogin(ctx, domain.User{
			ID:        idx.New().String(),
			Email:     canonicalEmail(email),
			Role:      domain.RoleStandard,
			LastLogin: &loginAt,
			CreatedAt: loginAt,
		})
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}

		err = tx.Sessions().CreateSession(ctx, domain.Session{
			ID:        idx.New().String(),
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: loginAt.Add(s.ttl()),
			CreatedAt: loginAt,
		})
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", domain.User{}, persistenceError(ctx, "create session for verified email", err)
	}

	slogx.FromContext(ctx).Info("session created", slog.String("user_id", user.ID))
	return token, user, nil
}

// Resolve returns the user owning token. An expired session is deleted on
// sight; that is the only place sessions are cleaned up.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrMissingCredential
	}

	sess, err := s.Store.Sessions().GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredential
		}
		return domain.User{}, persistenceError(ctx, "get session", err)
	}

	if sess.Expired(now(s.Now)) {
		if err := s.Store.Sessions().DeleteSessionByToken(ctx, token); err != nil {
			slogx.FromContext(ctx).Warn("failed to delete expired session",
				slog.String("session_id", sess.ID),
				slog.Any("error", err),
			)
		}
		return domain.User{}, ErrExpiredCredential
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredential
		}
		return domain.User{}, persistenceError(ctx, "get session user", err)
	}
	return user, nil
}

// Revoke deletes the session for token. Unknown tokens succeed.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return validationError("no token provided")
	}
	if err := s.Store.Sessions().DeleteSessionByToken(ctx, token); err != nil {
		return persistenceError(ctx, "delete session", err)
	}
	return nil
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}
