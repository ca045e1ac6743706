package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/pkg/idx"
)

type TodoService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *TodoService) Get(ctx context.Context, userID string) (domain.DailyTodo, error) {
	todo, err := s.Store.DailyTodos().GetDailyTodoByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.DailyTodo{}, ErrNotFound
		}
		return domain.DailyTodo{}, persistenceError(ctx, "get daily todo", err)
	}
	return todo, nil
}

// Write replaces the user's todo with content. The stored UpdatedAt is always
// later than the one it replaces, even when the clock has not moved.
func (s *TodoService) Write(ctx context.Context, userID, content string) (domain.DailyTodo, error) {
	if content == "" {
		return domain.DailyTodo{}, validationError("content is required")
	}

	var out domain.DailyTodo
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		next := now(s.Now).Truncate(time.Microsecond)

		prev, err := tx.DailyTodos().GetDailyTodoByUser(ctx, userID)
		switch {
		case err == nil:
			if !next.After(prev.UpdatedAt) {
				next = prev.UpdatedAt.Truncate(time.Microsecond).Add(time.Microsecond)
			}
		case errors.Is(err, store.ErrNotFound):
		default:
			return fmt.Errorf("get previous todo: %w", err)
		}

		out, err = tx.DailyTodos().UpsertDailyTodo(ctx, domain.DailyTodo{
			ID:        idx.New().String(),
			UserID:    userID,
			Content:   content,
			UpdatedAt: next,
		})
		return err
	})
	if err != nil {
		return domain.DailyTodo{}, persistenceError(ctx, "write daily todo", err)
	}
	return out, nil
}
