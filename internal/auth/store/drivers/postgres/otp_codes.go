package postgres

import (
	"context"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/jmoiron/sqlx"
)

type otpCodesRepo struct {
	db sqlx.ExtContext
}

func (r *otpCodesRepo) CreateOTPCode(ctx context.Context, c domain.OTPCode) error {
	row := otpCodeRow{
		ID:        c.ID,
		Email:     c.Email,
		Code:      c.Code,
		ExpiresAt: c.ExpiresAt.UTC(),
		CreatedAt: c.CreatedAt.UTC(),
	}
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO otp_codes (id, email, code, expires_at, used, created_at)
		VALUES (:id, :email, :code, :expires_at, FALSE, :created_at)`, row)
	return mapError(err)
}

func (r *otpCodesRepo) GetLatestRedeemableOTPCode(
	ctx context.Context,
	email, code string,
	now time.Time,
) (domain.OTPCode, error) {
	var row otpCodeRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT id, email, code, expires_at, used, created_at FROM otp_codes
		WHERE email = $1 AND code = $2 AND used = FALSE AND expires_at > $3
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, email, code, now.UTC())
	if err != nil {
		return domain.OTPCode{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *otpCodesRepo) MarkOTPCodeUsed(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE otp_codes SET used = TRUE WHERE id = $1 AND used = FALSE`, id)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
