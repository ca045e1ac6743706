package authsdk

import "time"

// ============================================================================
// OTP Login
// ============================================================================

type SendOTPRequest struct {
	Email string `json:"email" example:"me@example.com"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" example:"me@example.com"`
	Code  string `json:"code" example:"123456"`
}

// MessageResponse is the body of operations that only report success.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"OTP sent to your email"`
}

// UserSummary identifies the user a session was issued to.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type VerifyOTPResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Login successful"`

	// Token is the session bearer token (64 hex characters)
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// ============================================================================
// Current User
// ============================================================================

type UserProfile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role" example:"standard"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

type MeResponse struct {
	Success bool        `json:"success" example:"true"`
	User    UserProfile `json:"user"`
}

// ============================================================================
// API Keys
// ============================================================================

type CreateAPIKeyRequest struct {
	Name string `json:"name" example:"ci"`
}

// CreateAPIKeyResponse is the only response that ever carries the raw key.
type CreateAPIKeyResponse struct {
	Success   bool      `json:"success" example:"true"`
	Key       string    `json:"key" example:"sk_dabotcentral_0123abcd..."`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type APIKeyInfo struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	IsActive   bool       `json:"is_active"`
}

type ListAPIKeysResponse struct {
	Success bool         `json:"success" example:"true"`
	Keys    []APIKeyInfo `json:"keys"`
}

// ============================================================================
// Daily Todo
// ============================================================================

type DailyTodoResponse struct {
	Success bool   `json:"success" example:"true"`
	Content string `json:"content"`

	// User is the owner's email
	User         string    `json:"user"`
	LastModified time.Time `json:"last_modified"`
}

type WriteDailyTodoRequest struct {
	Content string `json:"content"`
}

type WriteDailyTodoResponse struct {
	Success      bool      `json:"success" example:"true"`
	Message      string    `json:"message" example:"Daily todo updated"`
	LastModified time.Time `json:"last_modified"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /health, /livez and /readyz. Only /readyz
// fills Checks.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
