package service

import (
	"context"
	"errors"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id. A user that vanished after its
// credential was resolved is reported as an invalid credential.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredential
		}
		return domain.User{}, persistenceError(ctx, "get user", err)
	}
	return u, nil
}
