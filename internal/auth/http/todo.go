package http

import (
	"errors"
	"net/http"

	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/dabotcentral/central/pkg/httpx"
)

type TodoHandler struct {
	TodoService *service.TodoService
}

// HandleGet returns the caller's daily todo.
//
//	@Summary		Get daily todo
//	@Tags			Daily Todo
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.DailyTodoResponse
//	@Failure		401	{object}	authsdk.APIError	"Unauthenticated"
//	@Failure		404	{object}	authsdk.APIError	"No todo written yet"
//	@Router			/daily-todo [get]
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	todo, err := h.TodoService.Get(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			authsdk.ErrTodoNotFound.WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.DailyTodoResponse{
		Success:      true,
		Content:      todo.Content,
		User:         id.Email,
		LastModified: todo.UpdatedAt,
	})
}

// HandleWrite replaces the caller's daily todo.
//
//	@Summary		Write daily todo
//	@Description	Overwrites the caller's single todo. last_modified strictly increases on every write.
//	@Tags			Daily Todo
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.WriteDailyTodoRequest	true	"New content"
//	@Success		200		{object}	authsdk.WriteDailyTodoResponse
//	@Failure		400		{object}	authsdk.APIError	"Missing content"
//	@Failure		401		{object}	authsdk.APIError	"Unauthenticated"
//	@Failure		403		{object}	authsdk.APIError	"Admin access required"
//	@Router			/daily-todo [post]
func (h *TodoHandler) HandleWrite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	var req authsdk.WriteDailyTodoRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	todo, err := h.TodoService.Write(ctx, id.UserID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.WriteDailyTodoResponse{
		Success:      true,
		Message:      "Daily todo updated",
		LastModified: todo.UpdatedAt,
	})
}
