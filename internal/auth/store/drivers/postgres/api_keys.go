package postgres

import (
	"context"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/jmoiron/sqlx"
)

type apiKeysRepo struct {
	db sqlx.ExtContext
}

func (r *apiKeysRepo) CreateAPIKey(ctx context.Context, k domain.APIKey) error {
	row := apiKeyRow{
		ID:        k.ID,
		UserID:    k.UserID,
		Key:       k.Key,
		Name:      k.Name,
		CreatedAt: k.CreatedAt.UTC(),
	}
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO api_keys (id, user_id, key, name, is_active, created_at)
		VALUES (:id, :user_id, :key, :name, TRUE, :created_at)`, row)
	return mapError(err)
}

func (r *apiKeysRepo) GetAPIKeyByKey(ctx context.Context, key string) (domain.APIKey, error) {
	var row apiKeyRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT id, user_id, key, name, is_active, last_used_at, created_at
		FROM api_keys WHERE key = $1`, key)
	if err != nil {
		return domain.APIKey{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *apiKeysRepo) ListAPIKeysByUser(ctx context.Context, userID string) ([]domain.APIKey, error) {
	var rows []apiKeyRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT id, user_id, name, is_active, last_used_at, created_at
		FROM api_keys WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}

	keys := make([]domain.APIKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.toDomain())
	}
	return keys, nil
}

func (r *apiKeysRepo) DeactivateAPIKey(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET is_active = FALSE WHERE id = $1 AND user_id = $2`, id, userID)
	return mapError(err)
}

func (r *apiKeysRepo) TouchAPIKey(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used_at = $1 WHERE id = $2`, at.UTC(), id)
	return mapError(err)
}
