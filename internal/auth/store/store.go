package store

import (
	"context"
	"errors"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: unique constraint violated")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories are reached through methods so a transaction
// hands out the same repositories bound to its own connection.
type Store interface {
	Users() Users
	Sessions() Sessions
	OTPCodes() OTPCodes
	APIKeys() APIKeys
	DailyTodos() DailyTodos

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A nil return commits, anything
	// else rolls back.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpsertLogin inserts u if no user has its email, otherwise sets
	// last_login on the existing row. ID and Role are only used on insert.
	// The stored row is returned.
	UpsertLogin(ctx context.Context, u domain.User) (domain.User, error)

	// UpsertRole inserts u if no user has its email, otherwise sets the
	// role of the existing row. The stored row is returned.
	UpsertRole(ctx context.Context, u domain.User) (domain.User, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSessionByToken(ctx context.Context, token string) (domain.Session, error)

	// DeleteSessionByToken removes the session if present. A missing row is
	// not an error.
	DeleteSessionByToken(ctx context.Context, token string) error
}

type OTPCodes interface {
	CreateOTPCode(ctx context.Context, c domain.OTPCode) error

	// GetLatestRedeemableOTPCode returns the newest unused code for the exact
	// (email, code) pair that expires after now.
	GetLatestRedeemableOTPCode(ctx context.Context, email, code string, now time.Time) (domain.OTPCode, error)

	// MarkOTPCodeUsed flips used for an unused code and reports whether this
	// call performed the transition.
	MarkOTPCodeUsed(ctx context.Context, id string) (bool, error)
}

type APIKeys interface {
	CreateAPIKey(ctx context.Context, k domain.APIKey) error
	GetAPIKeyByKey(ctx context.Context, key string) (domain.APIKey, error)

	// ListAPIKeysByUser returns the user's keys newest first without key
	// material.
	ListAPIKeysByUser(ctx context.Context, userID string) ([]domain.APIKey, error)

	// DeactivateAPIKey sets is_active false on the key matching both id and
	// userID. No matching row is not an error.
	DeactivateAPIKey(ctx context.Context, userID, id string) error

	TouchAPIKey(ctx context.Context, id string, at time.Time) error
}

type DailyTodos interface {
	GetDailyTodoByUser(ctx context.Context, userID string) (domain.DailyTodo, error)

	// UpsertDailyTodo writes the user's single todo, replacing content and
	// updated_at if one exists. ID is only used on insert. Callers compute
	// updated_at inside a write transaction; drivers whose transactions
	// don't serialize writers must keep it strictly increasing themselves.
	UpsertDailyTodo(ctx context.Context, t domain.DailyTodo) (domain.DailyTodo, error)
}
