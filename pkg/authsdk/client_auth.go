package authsdk

import (
	"context"
	"net/http"
)

// SendOTP asks the server to email a login code to email.
func (c *SDKClient) SendOTP(ctx context.Context, email string) error {
	body, err := jsonBody(SendOTPRequest{Email: email})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/send-otp", body, jsonHeaders)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// VerifyOTP redeems code and returns the issued session token.
func (c *SDKClient) VerifyOTP(ctx context.Context, email, code string) (*VerifyOTPResponse, error) {
	body, err := jsonBody(VerifyOTPRequest{Email: email, Code: code})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/verify-otp", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out VerifyOTPResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
