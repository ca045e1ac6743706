package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const (
	// TokenSize256 is the entropy, in bytes, of session tokens and API keys.
	TokenSize256 = 32

	// OTPLength is the number of digits in an emailed login code.
	OTPLength = 6

	// APIKeyPrefix marks a bearer credential as an API key rather than a
	// session token.
	APIKeyPrefix = "sk_dabotcentral_"
)

var (
	otpFloor = big.NewInt(100000)
	otpSpan  = big.NewInt(900000)
)

// GenerateToken returns size random bytes as lowercase hex.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// GenerateOTP returns a code drawn uniformly from 100000-999999.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return n.Add(n, otpFloor).String(), nil
}

// GenerateSessionToken returns a 64 character hex session token.
func GenerateSessionToken() (string, error) {
	return GenerateToken(TokenSize256)
}

// GenerateAPIKey returns APIKeyPrefix followed by 64 hex characters.
func GenerateAPIKey() (string, error) {
	tok, err := GenerateToken(TokenSize256)
	if err != nil {
		return "", err
	}
	return APIKeyPrefix + tok, nil
}

// IsAPIKey reports whether credential has the API key shape.
func IsAPIKey(credential string) bool {
	return strings.HasPrefix(credential, APIKeyPrefix)
}
