package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/dabotcentral/central/pkg/httpx"
	"github.com/dabotcentral/central/pkg/slogx"
)

// writeServiceError translates a service error into its status code and a
// stable body. Store and unexpected errors are logged and answered with a
// generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, httpx.ErrInvalidBody):
		authsdk.ErrInvalidRequest.WithMessage("invalid request body").WriteError(w)
	case errors.Is(err, service.ErrValidation):
		authsdk.ErrInvalidRequest.WithMessage(validationMessage(err)).WriteError(w)
	case errors.Is(err, service.ErrMissingCredential):
		authsdk.ErrMissingCredential.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredential):
		authsdk.ErrInvalidCredential.WriteError(w)
	case errors.Is(err, service.ErrExpiredCredential):
		authsdk.ErrExpiredCredential.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		authsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		authsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrDelivery):
		slogx.FromContext(r.Context()).Error("delivery failed", slog.Any("error", err))
		authsdk.ErrDeliveryFailed.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
	}
}

// validationMessage strips the error kind, leaving the fixed text the
// service attached.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
	if msg == "" || msg == service.ErrValidation.Error() {
		return authsdk.ErrInvalidRequest.Message
	}
	return msg
}
