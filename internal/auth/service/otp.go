package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/pkg/cryptox"
	"github.com/dabotcentral/central/pkg/idx"
	"github.com/dabotcentral/central/pkg/mailx"
	"github.com/dabotcentral/central/pkg/slogx"
)

const (
	DefaultOTPTTL  = 10 * time.Minute
	OTPMailSubject = "Your DabotCentral Login Code"
)

// OTPService issues emailed login codes and redeems them.
type OTPService struct {
	Store     store.Store
	Mailer    mailx.Sender
	Templates *mailx.Templates
	From      string
	TTL       time.Duration
	Now       func() time.Time
}

// Issue stores a fresh code for email and mails it. The stored code is kept
// when delivery fails, so a retried send leaves more than one valid code.
func (s *OTPService) Issue(ctx context.Context, email string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	l := slogx.FromContext(ctx)
	issuedAt := now(s.Now)
	ttl := s.ttl()

	code, err := cryptox.GenerateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	err = s.Store.OTPCodes().CreateOTPCode(ctx, domain.OTPCode{
		ID:        idx.New().String(),
		Email:     email,
		Code:      code,
		ExpiresAt: issuedAt.Add(ttl),
		CreatedAt: issuedAt,
	})
	if err != nil {
		return persistenceError(ctx, "create otp code", err)
	}

	msg, err := s.message(email, code, ttl)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		l.Error("failed to send otp email", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	l.Info("otp issued")
	return nil
}

// Verify redeems code for email and returns the email that proved control.
// Each code succeeds at most once.
func (s *OTPService) Verify(ctx context.Context, email, code string) (string, error) {
	email = canonicalEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return "", validationError("email and code are required")
	}

	otp, err := s.Store.OTPCodes().GetLatestRedeemableOTPCode(ctx, email, code, now(s.Now))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredential
		}
		return "", persistenceError(ctx, "get otp code", err)
	}

	ok, err := s.Store.OTPCodes().MarkOTPCodeUsed(ctx, otp.ID)
	if err != nil {
		return "", persistenceError(ctx, "mark otp code used", err)
	}
	if !ok {
		// A concurrent verify redeemed it first.
		return "", ErrInvalidCredential
	}

	return otp.Email, nil
}

func (s *OTPService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultOTPTTL
	}
	return s.TTL
}

func (s *OTPService) message(email, code string, ttl time.Duration) (mailx.Message, error) {
	minutes := int(ttl.Round(time.Minute) / time.Minute)

	html, err := s.Templates.Render(OTPEmailTemplate, struct {
		Code             string
		ExpiresInMinutes int
	}{code, minutes})
	if err != nil {
		return mailx.Message{}, err
	}

	return mailx.Message{
		From:     s.From,
		To:       []string{email},
		Subject:  OTPMailSubject,
		HTMLBody: html,
		TextBody: fmt.Sprintf("Your DabotCentral login code is %s. This code expires in %d minutes.", code, minutes),
	}, nil
}
