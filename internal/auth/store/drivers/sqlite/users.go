package sqlite

import (
	"context"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UpsertLogin(ctx context.Context, u domain.User) (domain.User, error) {
	row, err := r.q.UpsertUserLogin(ctx, gen.UpsertUserLoginParams{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		LastLogin: mapOptionalTime(u.LastLogin),
		CreatedAt: u.CreatedAt.UTC(),
	})
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UpsertRole(ctx context.Context, u domain.User) (domain.User, error) {
	row, err := r.q.UpsertUserRole(ctx, gen.UpsertUserRoleParams{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		LastLogin: mapOptionalTime(u.LastLogin),
		CreatedAt: u.CreatedAt.UTC(),
	})
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return mapUser(row), nil
}
