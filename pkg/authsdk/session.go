package authsdk

import (
	"context"
	"net/http"
)

// Session carries a bearer credential, a session token or an API key.
// It is safe for concurrent use.
type Session struct {
	client     *SDKClient
	credential string
}

// Credential returns the bearer credential the session sends.
func (s *Session) Credential() string {
	return s.credential
}

// Me returns the authenticated user.
func (s *Session) Me(ctx context.Context) (*UserProfile, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout deletes the session token on the server. Logging out an already
// revoked token succeeds.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
