package bookstore

import (
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// Text codes surfaced to API clients alongside the HTTP status.
const (
	TextCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	TextCodeEmptyPassword       = "EMPTY_PASSWORD"
	TextCodeDuplicateIdentifier = "DUPLICATE_IDENTIFIER"
	TextCodeTokenExpired        = "TOKEN_EXPIRED"
	TextCodeTokenMalformed      = "TOKEN_MALFORMED"
	TextCodeTokenMissing        = "TOKEN_MISSING"
	TextCodeInsufficientRole    = "INSUFFICIENT_ROLE"
	TextCodeMissingIdentity     = "MISSING_IDENTITY"
	TextCodeStoreUnavailable    = "STORE_UNAVAILABLE"
	TextCodeBootstrapFailed     = "BOOTSTRAP_FAILED"
)

// ErrInvalidCredentials covers both unknown identifier and wrong password.
// Callers never learn which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrDuplicateIdentifier means the email or username is already registered
var ErrDuplicateIdentifier = errors.New("identifier already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateIdentifier)

// ErrTokenExpired is returned for structurally valid tokens past their exp
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers bad signatures, wrong algorithms, missing exp,
// and undecodable tokens
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed)

// ErrTokenMissing is returned when the Authorization header is absent or
// does not carry the expected scheme
var ErrTokenMissing = errors.New("missing or malformed authorization header", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing)

// ErrInsufficientRole is returned when an authenticated account lacks the
// role a route requires
var ErrInsufficientRole = errors.New("insufficient role", errors.CategoryAuthz).
	WithTextCode(TextCodeInsufficientRole)

// ErrMissingIdentity means a role gate ran without an upstream auth gate.
// That is a wiring bug, not a client error.
var ErrMissingIdentity = errors.New("no identity in request context", errors.CategoryInternal).
	WithTextCode(TextCodeMissingIdentity)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound)

// ErrTooManyLoginAttempts enforces the login cool down window
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryRateLimit)

// ErrBootstrapFailed wraps unrecoverable default account seeding failures
var ErrBootstrapFailed = errors.New("default account bootstrap failed", errors.CategoryInternal).
	WithTextCode(TextCodeBootstrapFailed)

// WrapStoreError wraps storage failures without leaking driver details to
// API clients.
func WrapStoreError(err error, msg string) error {
	return errors.Wrap(err, errors.CategoryInternal, msg).
		WithTextCode(TextCodeStoreUnavailable)
}

// IsDuplicateIdentifierError reports whether err is a unique constraint
// violation from the underlying store.
func IsDuplicateIdentifierError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDuplicateIdentifier) {
		return true
	}

	if repository.IsDuplicatedKey(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
