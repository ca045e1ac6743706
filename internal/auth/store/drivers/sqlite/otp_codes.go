package sqlite

import (
	"context"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store/drivers/sqlite/gen"
)

type otpCodesRepo struct {
	q *gen.Queries
}

func (r *otpCodesRepo) CreateOTPCode(ctx context.Context, c domain.OTPCode) error {
	return mapError(r.q.CreateOTPCode(ctx, gen.CreateOTPCodeParams{
		ID:        c.ID,
		Email:     c.Email,
		Code:      c.Code,
		ExpiresAt: c.ExpiresAt.UTC(),
		CreatedAt: c.CreatedAt.UTC(),
	}))
}

func (r *otpCodesRepo) GetLatestRedeemableOTPCode(
	ctx context.Context,
	email, code string,
	now time.Time,
) (domain.OTPCode, error) {
	row, err := r.q.GetLatestRedeemableOTPCode(ctx, gen.GetLatestRedeemableOTPCodeParams{
		Email:     email,
		Code:      code,
		ExpiresAt: now.UTC(),
	})
	if err != nil {
		return domain.OTPCode{}, mapError(err)
	}
	return mapOTPCode(row), nil
}

func (r *otpCodesRepo) MarkOTPCodeUsed(ctx context.Context, id string) (bool, error) {
	n, err := r.q.MarkOTPCodeUsed(ctx, id)
	if err != nil {
		return false, mapError(err)
	}
	return n == 1, nil
}
