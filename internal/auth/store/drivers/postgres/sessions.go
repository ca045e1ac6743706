package postgres

import (
	"context"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/jmoiron/sqlx"
)

type sessionsRepo struct {
	db sqlx.ExtContext
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	row := sessionRow{
		ID:        s.ID,
		UserID:    s.UserID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC(),
		CreatedAt: s.CreatedAt.UTC(),
	}
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO sessions (id, user_id, token, expires_at, created_at)
		VALUES (:id, :user_id, :token, :expires_at, :created_at)`, row)
	return mapError(err)
}

func (r *sessionsRepo) GetSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	var row sessionRow
	err := sqlx.GetContext(ctx, r.db, &row,
		`SELECT id, user_id, token, expires_at, created_at FROM sessions WHERE token = $1`, token)
	if err != nil {
		return domain.Session{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *sessionsRepo) DeleteSessionByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return mapError(err)
}
