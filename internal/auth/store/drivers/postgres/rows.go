package postgres

import (
	"database/sql"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
)

type userRow struct {
	ID        string       `db:"id"`
	Email     string       `db:"email"`
	Role      string       `db:"role"`
	LastLogin sql.NullTime `db:"last_login"`
	CreatedAt time.Time    `db:"created_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Email:     r.Email,
		Role:      domain.Role(r.Role),
		LastLogin: nullTimePtr(r.LastLogin),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type sessionRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (r sessionRow) toDomain() domain.Session {
	return domain.Session{
		ID:        r.ID,
		UserID:    r.UserID,
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt.UTC(),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type otpCodeRow struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	Used      bool      `db:"used"`
	CreatedAt time.Time `db:"created_at"`
}

func (r otpCodeRow) toDomain() domain.OTPCode {
	return domain.OTPCode{
		ID:        r.ID,
		Email:     r.Email,
		Code:      r.Code,
		ExpiresAt: r.ExpiresAt.UTC(),
		Used:      r.Used,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type apiKeyRow struct {
	ID         string       `db:"id"`
	UserID     string       `db:"user_id"`
	Key        string       `db:"key"`
	Name       string       `db:"name"`
	IsActive   bool         `db:"is_active"`
	LastUsedAt sql.NullTime `db:"last_used_at"`
	CreatedAt  time.Time    `db:"created_at"`
}

func (r apiKeyRow) toDomain() domain.APIKey {
	return domain.APIKey{
		ID:         r.ID,
		UserID:     r.UserID,
		Key:        r.Key,
		Name:       r.Name,
		IsActive:   r.IsActive,
		LastUsedAt: nullTimePtr(r.LastUsedAt),
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

type dailyTodoRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r dailyTodoRow) toDomain() domain.DailyTodo {
	return domain.DailyTodo{
		ID:        r.ID,
		UserID:    r.UserID,
		Content:   r.Content,
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func timeNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
