package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dabotcentral/central/pkg/slogx"
)

// Error kinds surfaced to transports. Every error returned by a service wraps
// exactly one of these.
var (
	ErrValidation        = errors.New("validation_error")
	ErrMissingCredential = errors.New("missing_credential")
	ErrInvalidCredential = errors.New("invalid_credential")
	ErrExpiredCredential = errors.New("expired_credential")
	ErrForbidden         = errors.New("forbidden")
	ErrPersistence       = errors.New("persistence_error")
	ErrDelivery          = errors.New("delivery_error")
	ErrNotFound          = errors.New("not_found")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// persistenceError logs the store failure with detail and wraps it so the
// transport only sees ErrPersistence.
func persistenceError(ctx context.Context, op string, err error) error {
	slogx.FromContext(ctx).Error("store operation failed",
		slog.String("op", op),
		slog.Any("error", err),
	)
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
