package bookstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-bookstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegisterAccountHandler_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("registers account with hashed password", func(t *testing.T) {
		repo := NewMockRepoManager()
		repo.AccountsMock().
			On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*bookstore.Account")).
			Return(nil, nil)

		handler := bookstore.NewRegisterAccountHandler(repo)

		account, err := handler.Execute(ctx, bookstore.RegisterAccountMessage{
			Name:     "Administrator",
			Email:    "admin@example.com",
			Password: "admin1234",
			Role:     bookstore.RoleAdmin,
		})

		assert.NoError(t, err)
		assert.NotNil(t, account)
		assert.Equal(t, "Administrator", account.Name)
		assert.Equal(t, "admin@example.com", account.Email)
		assert.Equal(t, bookstore.RoleAdmin, account.Role)

		assert.NotEqual(t, "admin1234", account.PasswordHash)
		assert.NoError(t, bookstore.ComparePasswordAndHash("admin1234", account.PasswordHash))

		repo.AccountsMock().AssertExpectations(t)
	})

	t.Run("derives username from email when missing", func(t *testing.T) {
		repo := NewMockRepoManager()
		repo.AccountsMock().
			On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*bookstore.Account")).
			Return(nil, nil)

		handler := bookstore.NewRegisterAccountHandler(repo)

		account, err := handler.Execute(ctx, bookstore.RegisterAccountMessage{
			Email:    "shopper@example.com",
			Password: "password123",
			Role:     bookstore.RoleUser,
		})

		assert.NoError(t, err)
		assert.Equal(t, "shopper", account.Username)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		repo := NewMockRepoManager()

		handler := bookstore.NewRegisterAccountHandler(repo)

		account, err := handler.Execute(ctx, bookstore.RegisterAccountMessage{
			Email: "admin@example.com",
			Role:  bookstore.RoleAdmin,
		})

		assert.Nil(t, account)
		assert.ErrorIs(t, err, bookstore.ErrNoEmptyString)

		repo.AccountsMock().AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps unique violation to duplicate identifier", func(t *testing.T) {
		repo := NewMockRepoManager()
		repo.AccountsMock().
			On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*bookstore.Account")).
			Return(nil, errors.New("UNIQUE constraint failed: accounts.username"))

		handler := bookstore.NewRegisterAccountHandler(repo)

		account, err := handler.Execute(ctx, bookstore.RegisterAccountMessage{
			Username: "taken",
			Password: "password123",
			Role:     bookstore.RoleUser,
		})

		assert.Nil(t, account)
		assert.ErrorIs(t, err, bookstore.ErrDuplicateIdentifier)
	})

	t.Run("cancelled context aborts registration", func(t *testing.T) {
		repo := NewMockRepoManager()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		handler := bookstore.NewRegisterAccountHandler(repo)

		account, err := handler.Execute(cancelled, bookstore.RegisterAccountMessage{
			Username: "anyone",
			Password: "password123",
		})

		assert.Nil(t, account)
		assert.Error(t, err)
	})
}

func TestIsDuplicateIdentifierError(t *testing.T) {
	assert.True(t, bookstore.IsDuplicateIdentifierError(errors.New("UNIQUE constraint failed: accounts.email")))
	assert.True(t, bookstore.IsDuplicateIdentifierError(errors.New(`duplicate key value violates unique constraint "idx_accounts_username"`)))
	assert.True(t, bookstore.IsDuplicateIdentifierError(bookstore.ErrDuplicateIdentifier))
	assert.False(t, bookstore.IsDuplicateIdentifierError(errors.New("connection refused")))
	assert.False(t, bookstore.IsDuplicateIdentifierError(nil))
}
