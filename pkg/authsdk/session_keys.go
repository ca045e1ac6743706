package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateAPIKey mints a new API key. The raw key is only ever returned here.
// Requires: admin role
func (s *Session) CreateAPIKey(ctx context.Context, name string) (*CreateAPIKeyResponse, error) {
	body, err := jsonBody(CreateAPIKeyRequest{Name: name})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/admin/api-keys", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out CreateAPIKeyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAPIKeys returns the caller's keys, newest first, without key material.
// Requires: admin role
func (s *Session) ListAPIKeys(ctx context.Context) ([]APIKeyInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/api-keys", nil, nil)
	if err != nil {
		return nil, err
	}

	var out ListAPIKeysResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Keys, nil
}

// RevokeAPIKey deactivates one of the caller's keys.
// Requires: admin role
func (s *Session) RevokeAPIKey(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/admin/api-keys/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
