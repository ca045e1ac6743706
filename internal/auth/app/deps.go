package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/internal/auth/store/drivers/postgres"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite"
	"github.com/dabotcentral/central/pkg/mailx"
	"github.com/dabotcentral/central/pkg/mailx/sesmail"
)

// openStore connects the configured driver and applies its migrations.
func openStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		st, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		st, err = sqlite.NewStore(sqliteDSN(cfg.DatabasePath))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", slog.String("driver", cfg.DatabaseDriver))
	return st, nil
}

// sqliteDSN opens every transaction with BEGIN IMMEDIATE. A deferred
// transaction that reads before writing cannot wait out a concurrent writer
// under WAL and fails with SQLITE_BUSY instead.
func sqliteDSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path,
	)
}

// newMailer returns the configured provider paced to the provider quota.
func newMailer(ctx context.Context, cfg Config, logger *slog.Logger) (mailx.Sender, error) {
	var provider mailx.Sender

	switch cfg.MailProvider {
	case MailProviderSES:
		ses, err := sesmail.NewFromEnv(ctx, cfg.AWSRegion, cfg.MailFrom)
		if err != nil {
			return nil, err
		}
		provider = ses
	default:
		logger.Warn("using log mail provider, login codes are written to the log")
		provider = mailx.LogSender{}
	}

	return mailx.NewThrottled(provider, cfg.MailRatePerSecond, cfg.MailBurst), nil
}
