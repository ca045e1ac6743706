package sqlite

import (
	"context"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite/gen"
)

type sessionsRepo struct {
	q *gen.Queries
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	return mapError(r.q.CreateSession(ctx, gen.CreateSessionParams{
		ID:        s.ID,
		UserID:    s.UserID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC(),
		CreatedAt: s.CreatedAt.UTC(),
	}))
}

func (r *sessionsRepo) GetSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	row, err := r.q.GetSessionByToken(ctx, token)
	if err != nil {
		return domain.Session{}, mapError(err)
	}
	return mapSession(row), nil
}

func (r *sessionsRepo) DeleteSessionByToken(ctx context.Context, token string) error {
	return mapError(r.q.DeleteSessionByToken(ctx, token))
}
