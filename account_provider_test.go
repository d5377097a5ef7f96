package bookstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-bookstore"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func storedAccount(t *testing.T, password string, role bookstore.AccountRole) *bookstore.Account {
	t.Helper()

	hash, err := bookstore.HashPassword(password)
	assert.NoError(t, err)

	return &bookstore.Account{
		ID:           uuid.New(),
		Role:         role,
		Name:         "Administrator",
		Email:        "admin@example.com",
		Username:     "admin@example.com",
		PasswordHash: hash,
	}
}

func TestAccountProvider_VerifyIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies valid credentials", func(t *testing.T) {
		account := storedAccount(t, "admin1234", bookstore.RoleAdmin)

		store := &MockAccountTracker{}
		store.On("GetByIdentifier", ctx, "admin@example.com").Return(account, nil)
		store.On("TrackSuccessfulLogin", ctx, account).Return(nil)

		provider := bookstore.NewAccountProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "admin@example.com", "admin1234")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, account.ID.String(), identity.ID())
		assert.Equal(t, bookstore.RoleAdmin, identity.Role())
		assert.Equal(t, "admin@example.com", identity.Email())

		store.AssertExpectations(t)
	})

	t.Run("unknown identifier collapses to invalid credentials", func(t *testing.T) {
		store := &MockAccountTracker{}
		store.On("GetByIdentifier", ctx, "nobody@example.com").
			Return(nil, repository.NewRecordNotFound())

		logger := &MockLogger{}
		logger.On("Debug", mock.AnythingOfType("string"), mock.Anything).Maybe()

		provider := bookstore.NewAccountProvider(store).WithLogger(logger)

		identity, err := provider.VerifyIdentity(ctx, "nobody@example.com", "whatever")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, bookstore.ErrInvalidCredentials)

		store.AssertNotCalled(t, "TrackAttemptedLogin", mock.Anything, mock.Anything)
	})

	t.Run("wrong password collapses to invalid credentials and tracks attempt", func(t *testing.T) {
		account := storedAccount(t, "admin1234", bookstore.RoleAdmin)

		store := &MockAccountTracker{}
		store.On("GetByIdentifier", ctx, "admin@example.com").Return(account, nil)
		store.On("TrackAttemptedLogin", ctx, account).Return(nil)

		logger := &MockLogger{}
		logger.On("Debug", mock.AnythingOfType("string"), mock.Anything).Maybe()

		provider := bookstore.NewAccountProvider(store).WithLogger(logger)

		identity, err := provider.VerifyIdentity(ctx, "admin@example.com", "wrong-password")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, bookstore.ErrInvalidCredentials)

		store.AssertExpectations(t)
		store.AssertNotCalled(t, "TrackSuccessfulLogin", mock.Anything, mock.Anything)
	})

	t.Run("cool down blocks repeated attempts", func(t *testing.T) {
		account := storedAccount(t, "admin1234", bookstore.RoleAdmin)
		now := time.Now()
		account.LoginAttempts = bookstore.MaxLoginAttempts + 1
		account.LoginAttemptAt = &now

		store := &MockAccountTracker{}
		store.On("GetByIdentifier", ctx, "admin@example.com").Return(account, nil)

		provider := bookstore.NewAccountProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "admin@example.com", "admin1234")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, bookstore.ErrTooManyLoginAttempts)
	})

	t.Run("attempt counter resets outside cool down window", func(t *testing.T) {
		account := storedAccount(t, "admin1234", bookstore.RoleAdmin)
		staleAttempt := time.Now().Add(-48 * time.Hour)
		account.LoginAttempts = bookstore.MaxLoginAttempts + 1
		account.LoginAttemptAt = &staleAttempt

		store := &MockAccountTracker{}
		store.On("GetByIdentifier", ctx, "admin@example.com").Return(account, nil)
		store.On("TrackSuccessfulLogin", ctx, account).Return(nil)

		provider := bookstore.NewAccountProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "admin@example.com", "admin1234")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
	})

	t.Run("invalid role fails validation", func(t *testing.T) {
		account := storedAccount(t, "admin1234", bookstore.AccountRole("superuser"))

		store := &MockAccountTracker{}
		store.On("GetByIdentifier", ctx, "admin@example.com").Return(account, nil)
		store.On("TrackSuccessfulLogin", ctx, account).Return(nil)

		provider := bookstore.NewAccountProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "admin@example.com", "admin1234")

		assert.Nil(t, identity)
		assert.Error(t, err)
	})
}

func TestAccountProvider_FindIdentityByIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("finds identity", func(t *testing.T) {
		account := storedAccount(t, "admin1234", bookstore.RoleAdmin)

		store := &MockAccountTracker{}
		store.On("GetByIdentifier", ctx, "admin@example.com").Return(account, nil)

		provider := bookstore.NewAccountProvider(store)

		identity, err := provider.FindIdentityByIdentifier(ctx, "admin@example.com")

		assert.NoError(t, err)
		assert.Equal(t, account.ID.String(), identity.ID())
	})

	t.Run("unknown identifier returns not found", func(t *testing.T) {
		store := &MockAccountTracker{}
		store.On("GetByIdentifier", ctx, "nobody").
			Return(nil, repository.NewRecordNotFound())

		provider := bookstore.NewAccountProvider(store)

		identity, err := provider.FindIdentityByIdentifier(ctx, "nobody")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, bookstore.ErrIdentityNotFound)
	})
}
