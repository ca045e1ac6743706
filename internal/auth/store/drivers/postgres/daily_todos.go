package postgres

import (
	"context"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/jmoiron/sqlx"
)

type dailyTodosRepo struct {
	db sqlx.ExtContext
}

func (r *dailyTodosRepo) GetDailyTodoByUser(ctx context.Context, userID string) (domain.DailyTodo, error) {
	var row dailyTodoRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT id, user_id, content, updated_at FROM daily_todos
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT 1`, userID)
	if err != nil {
		return domain.DailyTodo{}, mapError(err)
	}
	return row.toDomain(), nil
}

// UpsertDailyTodo bumps updated_at past the stored value under the row lock,
// so concurrent writers that read the same previous todo still move it forward.
func (r *dailyTodosRepo) UpsertDailyTodo(ctx context.Context, t domain.DailyTodo) (domain.DailyTodo, error) {
	var row dailyTodoRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		INSERT INTO daily_todos (id, user_id, content, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			content = EXCLUDED.content,
			updated_at = GREATEST(EXCLUDED.updated_at, daily_todos.updated_at + INTERVAL '1 microsecond')
		RETURNING id, user_id, content, updated_at`,
		t.ID, t.UserID, t.Content, t.UpdatedAt.UTC())
	if err != nil {
		return domain.DailyTodo{}, mapError(err)
	}
	return row.toDomain(), nil
}
