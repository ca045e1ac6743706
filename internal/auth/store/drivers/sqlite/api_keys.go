package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite/gen"
)

type apiKeysRepo struct {
	q *gen.Queries
}

func (r *apiKeysRepo) CreateAPIKey(ctx context.Context, k domain.APIKey) error {
	return mapError(r.q.CreateAPIKey(ctx, gen.CreateAPIKeyParams{
		ID:        k.ID,
		UserID:    k.UserID,
		Key:       k.Key,
		Name:      k.Name,
		CreatedAt: k.CreatedAt.UTC(),
	}))
}

func (r *apiKeysRepo) GetAPIKeyByKey(ctx context.Context, key string) (domain.APIKey, error) {
	row, err := r.q.GetAPIKeyByKey(ctx, key)
	if err != nil {
		return domain.APIKey{}, mapError(err)
	}
	return mapAPIKey(row), nil
}

func (r *apiKeysRepo) ListAPIKeysByUser(ctx context.Context, userID string) ([]domain.APIKey, error) {
	rows, err := r.q.ListAPIKeysByUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	keys := make([]domain.APIKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, mapAPIKeyListing(row))
	}
	return keys, nil
}

func (r *apiKeysRepo) DeactivateAPIKey(ctx context.Context, userID, id string) error {
	return mapError(r.q.DeactivateAPIKey(ctx, gen.DeactivateAPIKeyParams{
		ID:     id,
		UserID: userID,
	}))
}

func (r *apiKeysRepo) TouchAPIKey(ctx context.Context, id string, at time.Time) error {
	return mapError(r.q.TouchAPIKey(ctx, gen.TouchAPIKeyParams{
		LastUsedAt: sql.NullTime{Time: at.UTC(), Valid: true},
		ID:         id,
	}))
}
