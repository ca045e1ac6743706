package postgres

import (
	"context"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, role, last_login, created_at`

type usersRepo struct {
	db sqlx.ExtContext
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *usersRepo) UpsertLogin(ctx context.Context, u domain.User) (domain.User, error) {
	return r.upsert(ctx, u, `last_login = EXCLUDED.last_login`)
}

func (r *usersRepo) UpsertRole(ctx context.Context, u domain.User) (domain.User, error) {
	return r.upsert(ctx, u, `role = EXCLUDED.role`)
}

func (r *usersRepo) upsert(ctx context.Context, u domain.User, set string) (domain.User, error) {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET ` + set + `
		RETURNING ` + userColumns

	var row userRow
	err := sqlx.GetContext(ctx, r.db, &row, query,
		u.ID, u.Email, string(u.Role), timeNull(u.LastLogin), u.CreatedAt.UTC())
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return row.toDomain(), nil
}
