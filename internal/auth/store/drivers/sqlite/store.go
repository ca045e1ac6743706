package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to an in-memory database is its own database, so keep
	// exactly one.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.q.WithTx(tx)), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users           { return &usersRepo{q: s.q} }
func (s *Store) Sessions() store.Sessions     { return &sessionsRepo{q: s.q} }
func (s *Store) OTPCodes() store.OTPCodes     { return &otpCodesRepo{q: s.q} }
func (s *Store) APIKeys() store.APIKeys       { return &apiKeysRepo{q: s.q} }
func (s *Store) DailyTodos() store.DailyTodos { return &dailyTodosRepo{q: s.q} }

// mapError translates driver errors into store sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return errors.Join(store.ErrConflict, err)
		}
	}
	return err
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:        row.ID,
		Email:     row.Email,
		Role:      domain.Role(row.Role),
		LastLogin: mapNullTimePtr(row.LastLogin),
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func mapSession(row gen.Session) domain.Session {
	return domain.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Token:     row.Token,
		ExpiresAt: row.ExpiresAt.UTC(),
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func mapOTPCode(row gen.OtpCode) domain.OTPCode {
	return domain.OTPCode{
		ID:        row.ID,
		Email:     row.Email,
		Code:      row.Code,
		ExpiresAt: row.ExpiresAt.UTC(),
		Used:      row.Used,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func mapAPIKey(row gen.ApiKey) domain.APIKey {
	return domain.APIKey{
		ID:         row.ID,
		UserID:     row.UserID,
		Key:        row.Key,
		Name:       row.Name,
		IsActive:   row.IsActive,
		LastUsedAt: mapNullTimePtr(row.LastUsedAt),
		CreatedAt:  row.CreatedAt.UTC(),
	}
}

func mapAPIKeyListing(row gen.ListAPIKeysByUserRow) domain.APIKey {
	return domain.APIKey{
		ID:         row.ID,
		UserID:     row.UserID,
		Name:       row.Name,
		IsActive:   row.IsActive,
		LastUsedAt: mapNullTimePtr(row.LastUsedAt),
		CreatedAt:  row.CreatedAt.UTC(),
	}
}

func mapDailyTodo(row gen.DailyTodo) domain.DailyTodo {
	return domain.DailyTodo{
		ID:        row.ID,
		UserID:    row.UserID,
		Content:   row.Content,
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
