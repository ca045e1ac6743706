package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the DabotCentral API. It provides access to
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the API rooted at baseURL, including any
// path prefix the server is mounted under.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession returns a session that authenticates with credential, either a
// session token or an API key.
func (c *SDKClient) NewSession(credential string) *Session {
	return &Session{client: c, credential: credential}
}

// LoginWithOTP redeems an emailed code and returns a session for the issued
// token.
func (c *SDKClient) LoginWithOTP(ctx context.Context, email, code string) (*Session, *VerifyOTPResponse, error) {
	resp, err := c.VerifyOTP(ctx, email, code)
	if err != nil {
		return nil, nil, err
	}
	return c.NewSession(resp.Token), resp, nil
}
