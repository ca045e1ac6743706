package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/pkg/idx"
	"github.com/dabotcentral/central/pkg/slogx"
)

// AdminService makes sure configured operators hold the admin role.
type AdminService struct {
	Store store.Store
	Now   func() time.Time
}

// PromoteAdmins upserts every email with role admin in one transaction.
// Users that don't exist yet are created without a login.
func (s *AdminService) PromoteAdmins(ctx context.Context, emails []string) error {
	if len(emails) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(emails))
	for _, e := range emails {
		email, err := NormalizeEmail(e)
		if err != nil {
			return err
		}
		normalized = append(normalized, email)
	}

	createdAt := now(s.Now)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, email := range normalized {
			_, err := tx.Users().UpsertRole(ctx, domain.User{
				ID:        idx.New().String(),
				Email:     email,
				Role:      domain.RoleAdmin,
				CreatedAt: createdAt,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return persistenceError(ctx, "promote admins", err)
	}

	slogx.FromContext(ctx).Info("admin users ensured", slog.Int("count", len(normalized)))
	return nil
}
