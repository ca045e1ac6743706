package http

import (
	"net/http"

	"github.com/dabotcentral/central/internal/auth/metrics"
	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/dabotcentral/central/pkg/httpx"
)

type APIKeysHandler struct {
	APIKeyService *service.APIKeyService
	Metrics       *metrics.Metrics
}

// HandleCreate issues a new API key for the caller.
//
//	@Summary		Create API key
//	@Description	Mints a key owned by the calling admin. The raw key is returned only in this response.
//	@Tags			API Keys
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CreateAPIKeyRequest	true	"Key name"
//	@Success		200		{object}	authsdk.CreateAPIKeyResponse
//	@Failure		400		{object}	authsdk.APIError	"Missing name"
//	@Failure		401		{object}	authsdk.APIError	"Unauthenticated"
//	@Failure		403		{object}	authsdk.APIError	"Admin access required"
//	@Router			/admin/api-keys [post]
func (h *APIKeysHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	var req authsdk.CreateAPIKeyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	key, err := h.APIKeyService.Create(ctx, id.UserID, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.Metrics.ObserveAPIKeyCreated()

	httpx.WriteJSON(w, http.StatusOK, authsdk.CreateAPIKeyResponse{
		Success:   true,
		Key:       key.Key,
		ID:        key.ID,
		Name:      key.Name,
		CreatedAt: key.CreatedAt,
	})
}

// HandleList lists the caller's API keys.
//
//	@Summary		List API keys
//	@Description	Returns the caller's keys newest first. Key material is never included.
//	@Tags			API Keys
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.ListAPIKeysResponse
//	@Failure		401	{object}	authsdk.APIError	"Unauthenticated"
//	@Failure		403	{object}	authsdk.APIError	"Admin access required"
//	@Router			/admin/api-keys [get]
func (h *APIKeysHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	keys, err := h.APIKeyService.List(ctx, id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := authsdk.ListAPIKeysResponse{
		Success: true,
		Keys:    make([]authsdk.APIKeyInfo, 0, len(keys)),
	}
	for _, k := range keys {
		resp.Keys = append(resp.Keys, authsdk.APIKeyInfo{
			ID:         k.ID,
			Name:       k.Name,
			CreatedAt:  k.CreatedAt,
			LastUsedAt: k.LastUsedAt,
			IsActive:   k.IsActive,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRevoke deactivates one of the caller's API keys.
//
//	@Summary		Revoke API key
//	@Description	Deactivates the key. Succeeds whether or not the key exists or belongs to the caller.
//	@Tags			API Keys
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Key ID"
//	@Success		200	{object}	authsdk.MessageResponse
//	@Failure		401	{object}	authsdk.APIError	"Unauthenticated"
//	@Failure		403	{object}	authsdk.APIError	"Admin access required"
//	@Router			/admin/api-keys/{id} [delete]
func (h *APIKeysHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	if err := h.APIKeyService.Revoke(ctx, id.UserID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Success: true,
		Message: "API key revoked",
	})
}
