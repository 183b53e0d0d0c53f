package matchsdk

import (
	"time"

	"github.com/aussiebroadwan/mutual/pkg/jwtx"
)

// ============================================================================
// Account Types
// ============================================================================

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank" example:"alice"`
	Password string `json:"password" validate:"required,notblank" example:"correct horse battery staple"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank" example:"alice"`
	Password string `json:"password" validate:"required,notblank" example:"correct horse battery staple"`
}

// LoginResponse is returned by a successful login. Token is sent back as
// "Authorization: Bearer <token>" on authenticated calls.
type LoginResponse struct {
	Token  string `json:"token" example:"eyJhbGciOiJFZERTQSIsImtpZCI6Im11dHVhbC0uLi4ifQ..."`
	UserID string `json:"userId" example:"01J9Z3QK7G2V8X4T6N0B5C1D2E"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"user registered"`
}

// ============================================================================
// Crush Types
// ============================================================================

// CrushRequest is the body of POST /api/crush. The owner is taken from the
// bearer token.
type CrushRequest struct {
	Name string `json:"name" validate:"required,notblank" example:"bob"`
}

// Interest is one recorded crush. Name is free text and need not belong to a
// registered user.
type Interest struct {
	ID        string    `json:"id" example:"01J9Z3R2M4K8P6Q0S2T4V6X8Z0"`
	UserID    string    `json:"userId" example:"01J9Z3QK7G2V8X4T6N0B5C1D2E"`
	Name      string    `json:"name" example:"bob"`
	CreatedAt time.Time `json:"createdAt" example:"2025-01-01T12:00:00Z"`
}

// MatchesResponse lists the names whose owners named the caller back, in the
// order the caller added them.
type MatchesResponse struct {
	Matches []string `json:"matches" example:"bob,carol"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"1.0.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency, "ok" or "error: ...".
type HealthChecks struct {
	Store  string `json:"store" example:"ok"`
	Signer string `json:"signer" example:"ok"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse is the key set served at /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS
