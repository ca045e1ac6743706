package domain

// AuthMethod records which kind of bearer credential resolved an Identity.
type AuthMethod string

const (
	AuthMethodSession AuthMethod = "session"
	AuthMethodAPIKey  AuthMethod = "api_key"
)

// Identity is the caller resolved from a bearer credential.
type Identity struct {
	UserID string
	Email  string
	Role   Role
	Method AuthMethod

	// APIKeyID is set when Method is AuthMethodAPIKey.
	APIKeyID string
}
