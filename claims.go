package bookstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims carries the account attributes embedded in every issued token.
// The profile fields mirror what the dashboard renders without a second
// store lookup.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID          string      `json:"id,omitempty"`
	AccountName  string      `json:"name,omitempty"`
	AccountEmail string      `json:"email,omitempty"`
	UserRole     AccountRole `json:"role,omitempty"`
	Avatar       string      `json:"avatar,omitempty"`
}

// AccountID returns the account ID, falling back to the subject claim
func (c *JWTClaims) AccountID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Name returns the display name claim
func (c *JWTClaims) Name() string {
	return c.AccountName
}

// Email returns the email claim
func (c *JWTClaims) Email() string {
	return c.AccountEmail
}

// Role returns the account role claim
func (c *JWTClaims) Role() AccountRole {
	return c.UserRole
}

// HasRole checks if the token carries the given role
func (c *JWTClaims) HasRole(role AccountRole) bool {
	return c.UserRole == role
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued at time
func (c *JWTClaims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
