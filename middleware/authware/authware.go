// Package authware provides router middleware that gates routes behind a
// validated bearer token and, optionally, a required account role.
package authware

import (
	"strings"

	"github.com/goliatone/go-bookstore"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// TokenValidator validates raw tokens without creating import cycles.
// This mirrors the TokenService.Validate method from the bookstore package.
type TokenValidator interface {
	Validate(tokenString string) (*bookstore.JWTClaims, error)
}

type Config struct {
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	ContextKey     string
	AuthScheme     string
	// Validator is required for token validation
	Validator TokenValidator
}

// New returns middleware that rejects requests without a valid bearer
// token. Valid claims are stored under ContextKey in the router locals and
// propagated to the standard context.
func New(config ...Config) router.MiddlewareFunc {
	cfg := getDefaultConfig(config...)
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw, err := TokenFromHeader(ctx.Header(router.HeaderAuthorization), cfg.AuthScheme)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			claims, err := cfg.Validator.Validate(raw)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, claims)
			ctx.SetContext(bookstore.WithClaimsContext(ctx.Context(), claims))

			return cfg.SuccessHandler(ctx)
		}
	}
}

// RequireRole returns middleware that rejects authenticated requests whose
// claims lack the given role. It must run after New; a missing identity is
// reported as a server error, not a client one.
func RequireRole(role bookstore.AccountRole, config ...Config) router.MiddlewareFunc {
	cfg := getRoleConfig(config...)
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			claims, ok := bookstore.GetRouterClaims(ctx, cfg.ContextKey)
			if !ok {
				return cfg.ErrorHandler(ctx, bookstore.ErrMissingIdentity)
			}

			if !claims.HasRole(role) {
				return cfg.ErrorHandler(ctx, bookstore.ErrInsufficientRole)
			}

			return ctx.Next()
		}
	}
}

// TokenFromHeader extracts the raw token from an Authorization header value
func TokenFromHeader(header, authScheme string) (string, error) {
	authScheme = strings.TrimSpace(authScheme)
	l := len(authScheme)
	if l == 0 {
		return "", bookstore.ErrTokenMissing
	}

	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) && header[l] == ' ' {
		token := strings.TrimSpace(header[l:])
		if token != "" {
			return token, nil
		}
	}

	return "", bookstore.ErrTokenMissing
}

func getDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("AUTH: middleware configuration: Validator is required.")
	}

	cfg = applyCommonDefaults(cfg)

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	return cfg
}

func getRoleConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}
	return applyCommonDefaults(cfg)
}

func applyCommonDefaults(cfg Config) Config {
	if cfg.ContextKey == "" {
		cfg.ContextKey = "identity"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return cfg
}

func defaultErrorHandler(c router.Context, err error) error {
	status := router.StatusUnauthorized
	textCode := bookstore.TextCodeTokenMalformed

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		if richErr.TextCode != "" {
			textCode = richErr.TextCode
		}
		switch richErr.Category {
		case errors.CategoryAuthz:
			status = router.StatusForbidden
		case errors.CategoryInternal:
			status = router.StatusInternalServerError
		}
	}

	return c.JSON(status, map[string]any{
		"error": textCode,
	})
}
