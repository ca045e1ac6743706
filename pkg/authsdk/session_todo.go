package authsdk

import (
	"context"
	"net/http"
)

// GetDailyTodo returns the caller's todo. It fails with ErrTodoNotFound
// until one has been written.
func (s *Session) GetDailyTodo(ctx context.Context) (*DailyTodoResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/daily-todo", nil, nil)
	if err != nil {
		return nil, err
	}

	var out DailyTodoResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// WriteDailyTodo replaces the caller's todo with content.
func (s *Session) WriteDailyTodo(ctx context.Context, content string) (*WriteDailyTodoResponse, error) {
	body, err := jsonBody(WriteDailyTodoRequest{Content: content})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/daily-todo", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out WriteDailyTodoResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
