package bookstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountRole is a closed enumeration of account roles. It is a distinct
// type on purpose: the role gate takes the enum, not a raw string.
type AccountRole string

const (
	// RoleUser is a storefront customer account
	RoleUser AccountRole = "user"
	// RoleAdmin is a dashboard administrator account
	RoleAdmin AccountRole = "admin"
)

// Account is the credential store record. Admin accounts are identified by
// email, storefront users by username; the store enforces uniqueness on
// both columns so concurrent registrations for the same identifier resolve
// to exactly one winner.
type Account struct {
	bun.BaseModel  `bun:"table:accounts,alias:acc"`
	ID             uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role           AccountRole `bun:"role,notnull" json:"role,omitempty"`
	Name           string      `bun:"name" json:"name,omitempty"`
	Email          string      `bun:"email,nullzero,unique" json:"email,omitempty"`
	Username       string      `bun:"username,notnull,unique" json:"username,omitempty"`
	AvatarPath     string      `bun:"avatar_path" json:"avatar_path,omitempty"`
	PasswordHash   string      `bun:"password_hash" json:"-"`
	LoginAttempts  int         `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time  `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time  `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedAt      *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time  `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Identifier returns the account's natural identifier: email for admin
// accounts, username otherwise.
func (a *Account) Identifier() string {
	if a.Role == RoleAdmin && a.Email != "" {
		return a.Email
	}
	return a.Username
}
