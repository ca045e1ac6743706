package http

import (
	"net/http"

	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/dabotcentral/central/pkg/httpx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated user.
//
//	@Summary		Current user
//	@Description	Returns the user owning the session token or API key.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MeResponse
//	@Failure		401	{object}	authsdk.APIError	"Missing, invalid or expired credential"
//	@Failure		500	{object}	authsdk.APIError	"Internal server error"
//	@Router			/auth/me [get]
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := IdentityFromContext(ctx)
	if !ok {
		writeServiceError(w, r, service.ErrMissingCredential)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{
		Success: true,
		User: authsdk.UserProfile{
			ID:        user.ID,
			Email:     user.Email,
			Role:      string(user.Role),
			LastLogin: user.LastLogin,
			CreatedAt: user.CreatedAt,
		},
	})
}
