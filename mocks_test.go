package bookstore_test

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-bookstore"
	"github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockLogger implements bookstore.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// MockIdentity implements bookstore.Identity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Avatar() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Role() bookstore.AccountRole {
	args := m.Called()
	return args.Get(0).(bookstore.AccountRole)
}

// MockAccountTracker implements bookstore.AccountTracker
type MockAccountTracker struct {
	mock.Mock
}

func (m *MockAccountTracker) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*bookstore.Account, error) {
	args := m.Called(ctx, identifier)
	account, _ := args.Get(0).(*bookstore.Account)
	return account, args.Error(1)
}

func (m *MockAccountTracker) TrackAttemptedLogin(ctx context.Context, account *bookstore.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountTracker) TrackSuccessfulLogin(ctx context.Context, account *bookstore.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockIdentityProvider implements bookstore.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (bookstore.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(bookstore.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (bookstore.Identity, error) {
	args := m.Called(ctx, identifier)
	identity, _ := args.Get(0).(bookstore.Identity)
	return identity, args.Error(1)
}

// MockAccounts mocks the store methods the handlers exercise. The embedded
// interface satisfies the rest of the repository surface; calling an
// unmocked method panics, which is what we want in tests.
type MockAccounts struct {
	bookstore.Accounts
	mock.Mock
}

func (m *MockAccounts) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*bookstore.Account, error) {
	args := m.Called(ctx, identifier)
	account, _ := args.Get(0).(*bookstore.Account)
	return account, args.Error(1)
}

func (m *MockAccounts) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*bookstore.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*bookstore.Account)
	return account, args.Error(1)
}

func (m *MockAccounts) CreateTx(ctx context.Context, tx bun.IDB, record *bookstore.Account, criteria ...repository.InsertCriteria) (*bookstore.Account, error) {
	args := m.Called(ctx, tx, record)
	account, _ := args.Get(0).(*bookstore.Account)
	if account == nil && args.Error(1) == nil {
		account = record
	}
	return account, args.Error(1)
}

func (m *MockAccounts) CountByRoleTx(ctx context.Context, tx bun.IDB, role bookstore.AccountRole) (int, error) {
	args := m.Called(ctx, tx, role)
	return args.Int(0), args.Error(1)
}

// MockRepoManager implements bookstore.RepositoryManager backed by
// MockAccounts; RunInTx invokes the callback with a zero transaction.
type MockRepoManager struct {
	accounts *MockAccounts
}

func NewMockRepoManager() *MockRepoManager {
	return &MockRepoManager{accounts: &MockAccounts{}}
}

func (m *MockRepoManager) Validate() error {
	return nil
}

func (m *MockRepoManager) MustValidate() {}

func (m *MockRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return f(ctx, bun.Tx{})
	}
}

func (m *MockRepoManager) Accounts() bookstore.Accounts {
	return m.accounts
}

func (m *MockRepoManager) AccountsMock() *MockAccounts {
	return m.accounts
}
