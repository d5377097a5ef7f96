package main

import (
	"os"
	"strconv"
)

// AppConfig holds the resolved process configuration. Values come from the
// environment, optionally seeded from a .env file, and are read exactly
// once at startup.
type AppConfig struct {
	Port  string
	DBDSN string
	Debug bool
	Auth  AuthConfig
}

// AuthConfig implements bookstore.Config
type AuthConfig struct {
	SigningKey           string
	TokenExpiration      int
	Issuer               string
	ContextKey           string
	AuthScheme           string
	PasswordHashCost     int
	DefaultAdminName     string
	DefaultAdminEmail    string
	DefaultAdminPassword string
	DefaultUserName      string
	DefaultUserPassword  string
}

func (c AuthConfig) GetSigningKey() string           { return c.SigningKey }
func (c AuthConfig) GetTokenExpiration() int         { return c.TokenExpiration }
func (c AuthConfig) GetIssuer() string               { return c.Issuer }
func (c AuthConfig) GetContextKey() string           { return c.ContextKey }
func (c AuthConfig) GetAuthScheme() string           { return c.AuthScheme }
func (c AuthConfig) GetPasswordHashCost() int        { return c.PasswordHashCost }
func (c AuthConfig) GetDefaultAdminName() string     { return c.DefaultAdminName }
func (c AuthConfig) GetDefaultAdminEmail() string    { return c.DefaultAdminEmail }
func (c AuthConfig) GetDefaultAdminPassword() string { return c.DefaultAdminPassword }
func (c AuthConfig) GetDefaultUserName() string      { return c.DefaultUserName }
func (c AuthConfig) GetDefaultUserPassword() string  { return c.DefaultUserPassword }

// LoadConfig resolves the configuration from the environment
func LoadConfig() AppConfig {
	return AppConfig{
		Port:  getEnv("PORT", "9000"),
		DBDSN: getEnv("DB_DSN", "file:bookstore.db?cache=shared&mode=rwc"),
		Debug: getEnvBool("DEBUG", false),
		Auth: AuthConfig{
			SigningKey:           getEnv("JWT_SECRET", "secretkey"),
			TokenExpiration:      getEnvInt("TOKEN_TTL_HOURS", 72),
			Issuer:               getEnv("TOKEN_ISSUER", "bookstore"),
			ContextKey:           getEnv("AUTH_CONTEXT_KEY", "identity"),
			AuthScheme:           getEnv("AUTH_SCHEME", "Bearer"),
			PasswordHashCost:     getEnvInt("BCRYPT_COST", 10),
			DefaultAdminName:     getEnv("DEFAULT_ADMIN_NAME", ""),
			DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", ""),
			DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
			DefaultUserName:      getEnv("DEFAULT_USER_NAME", ""),
			DefaultUserPassword:  getEnv("DEFAULT_USER_PASSWORD", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}

	return b
}
