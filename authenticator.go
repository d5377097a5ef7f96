package bookstore

import (
	"context"
	"reflect"
	"time"
)

// DefaultStoreTimeout bounds a single login's store round trips
var DefaultStoreTimeout = 5 * time.Second

// Auther is the Authenticator implementation backed by an
// IdentityProvider and a TokenService
type Auther struct {
	provider        IdentityProvider
	signingKey      []byte
	tokenExpiration int
	issuer          string
	storeTimeout    time.Duration
	logger          Logger
	tokenService    TokenService
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		provider:        provider,
		signingKey:      []byte(opts.GetSigningKey()),
		tokenExpiration: opts.GetTokenExpiration(),
		issuer:          opts.GetIssuer(),
		storeTimeout:    DefaultStoreTimeout,
		logger:          defLogger{},
		tokenService:    tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.tokenService = NewTokenService(
		s.signingKey,
		s.tokenExpiration,
		s.issuer,
		logger,
	)
	return s
}

// WithStoreTimeout overrides the per-login store deadline
func (s *Auther) WithStoreTimeout(timeout time.Duration) *Auther {
	if timeout > 0 {
		s.storeTimeout = timeout
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and returns a signed token for the account
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error: %v", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrInvalidCredentials
	}

	return s.tokenService.Generate(identity)
}

// ClaimsFromToken validates a raw token and returns its claims
func (s *Auther) ClaimsFromToken(token string) (*JWTClaims, error) {
	claims, err := s.tokenService.Validate(token)
	if err != nil {
		s.logger.Debug("ClaimsFromToken validation failed: %v", err)
		return nil, err
	}
	return claims, nil
}

var _ Authenticator = (*Auther)(nil)
