package http

import (
	"errors"
	"net/http"

	"github.com/dabotcentral/central/internal/auth/metrics"
	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/dabotcentral/central/pkg/httpx"
)

type AuthHandler struct {
	OTPService     *service.OTPService
	SessionService *service.SessionService
	Metrics        *metrics.Metrics
}

// HandleSendOTP emails a login code.
//
//	@Summary		Send login code
//	@Description	Emails a 6-digit code valid for 10 minutes. The response does not reveal whether the email belongs to a user.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SendOTPRequest	true	"Email to send the code to"
//	@Success		200		{object}	authsdk.MessageResponse
//	@Failure		400		{object}	authsdk.APIError	"Invalid email address"
//	@Failure		500		{object}	authsdk.APIError	"Code could not be stored or sent"
//	@Router			/auth/send-otp [post]
func (h *AuthHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SendOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.OTPService.Issue(r.Context(), req.Email); err != nil {
		h.Metrics.ObserveOTPIssued(issueOutcome(err))
		writeServiceError(w, r, err)
		return
	}
	h.Metrics.ObserveOTPIssued(metrics.OutcomeSuccess)

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Success: true,
		Message: "OTP sent to your email",
	})
}

// HandleVerifyOTP redeems a login code for a session token.
//
//	@Summary		Verify login code
//	@Description	Redeems a code sent by /auth/send-otp. Creates the user on first login and returns a 30-day session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyOTPRequest	true	"Email and code"
//	@Success		200		{object}	authsdk.VerifyOTPResponse
//	@Failure		400		{object}	authsdk.APIError	"Missing email or code"
//	@Failure		401		{object}	authsdk.APIError	"Unknown, used or expired code"
//	@Failure		500		{object}	authsdk.APIError	"Internal server error"
//	@Router			/auth/verify-otp [post]
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	email, err := h.OTPService.Verify(ctx, req.Email, req.Code)
	if err != nil {
		h.Metrics.ObserveOTPVerification(verifyOutcome(err))
		if errors.Is(err, service.ErrInvalidCredential) {
			authsdk.ErrInvalidCode.WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	h.Metrics.ObserveOTPVerification(metrics.OutcomeSuccess)

	token, user, err := h.SessionService.CreateForVerifiedEmail(ctx, email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.VerifyOTPResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    authsdk.UserSummary{ID: user.ID, Email: user.Email},
	})
}

// HandleLogout deletes the presented session token.
//
//	@Summary		Log out
//	@Description	Deletes the session for the bearer token. Unknown tokens also succeed.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse
//	@Failure		400	{object}	authsdk.APIError	"No token provided"
//	@Router			/auth/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionService.Revoke(r.Context(), httpx.BearerToken(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

func issueOutcome(err error) string {
	if errors.Is(err, service.ErrValidation) {
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}

func verifyOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidCredential):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
