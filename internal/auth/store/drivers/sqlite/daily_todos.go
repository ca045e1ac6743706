package sqlite

import (
	"context"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite/gen"
)

type dailyTodosRepo struct {
	q *gen.Queries
}

func (r *dailyTodosRepo) GetDailyTodoByUser(ctx context.Context, userID string) (domain.DailyTodo, error) {
	row, err := r.q.GetDailyTodoByUser(ctx, userID)
	if err != nil {
		return domain.DailyTodo{}, mapError(err)
	}
	return mapDailyTodo(row), nil
}

func (r *dailyTodosRepo) UpsertDailyTodo(ctx context.Context, t domain.DailyTodo) (domain.DailyTodo, error) {
	row, err := r.q.UpsertDailyTodo(ctx, gen.UpsertDailyTodoParams{
		ID:        t.ID,
		UserID:    t.UserID,
		Content:   t.Content,
		UpdatedAt: t.UpdatedAt.UTC(),
	})
	if err != nil {
		return domain.DailyTodo{}, mapError(err)
	}
	return mapDailyTodo(row), nil
}
