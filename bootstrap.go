package bookstore

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// Fallback bootstrap credentials. Production deployments override these
// through Config; a warning is logged when the default password survives.
const (
	DefaultAdminName     = "Administrator"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin1234"
	DefaultUserName      = "Guest"
	DefaultUserUsername  = "guest"
	DefaultUserPassword  = "guest1234"
)

// Bootstrapper seeds the default accounts at startup. Seeding is
// idempotent: a second run against a populated store creates nothing.
type Bootstrapper struct {
	repo   RepositoryManager
	config Config
	logger Logger
}

// NewBootstrapper creates a Bootstrapper
func NewBootstrapper(repo RepositoryManager, config Config) *Bootstrapper {
	return &Bootstrapper{
		repo:   repo,
		config: config,
		logger: defLogger{},
	}
}

func (b *Bootstrapper) WithLogger(l Logger) *Bootstrapper {
	b.logger = l
	return b
}

// EnsureDefaultAdmin creates the default administrator account when no
// admin account exists. Count and insert run in one transaction; a unique
// violation afterwards means a concurrent instance won the race, which is
// the same end state and not an error.
func (b *Bootstrapper) EnsureDefaultAdmin(ctx context.Context) error {
	name := b.config.GetDefaultAdminName()
	if name == "" {
		name = DefaultAdminName
	}

	email := b.config.GetDefaultAdminEmail()
	if email == "" {
		email = DefaultAdminEmail
	}

	password := b.config.GetDefaultAdminPassword()
	if password == "" {
		password = DefaultAdminPassword
		b.logger.Warn("default admin password in use, change it before going live")
	}

	account := &Account{
		Name:     name,
		Email:    email,
		Username: email,
		Role:     RoleAdmin,
	}

	if id, err := hashid.NewUUID(email); err == nil {
		account.ID = id
	}

	created, err := b.ensureAccount(ctx, account, password, RoleAdmin)
	if err != nil {
		return err
	}

	if created {
		b.logger.Info("default admin account created: %s", email)
	}

	return nil
}

// EnsureDefaultUser creates the default storefront account when no user
// account exists.
func (b *Bootstrapper) EnsureDefaultUser(ctx context.Context) error {
	name := b.config.GetDefaultUserName()
	if name == "" {
		name = DefaultUserName
	}

	password := b.config.GetDefaultUserPassword()
	if password == "" {
		password = DefaultUserPassword
	}

	account := &Account{
		Name:     name,
		Username: DefaultUserUsername,
		Role:     RoleUser,
	}

	if id, err := hashid.NewUUID(DefaultUserUsername); err == nil {
		account.ID = id
	}

	created, err := b.ensureAccount(ctx, account, password, RoleUser)
	if err != nil {
		return err
	}

	if created {
		b.logger.Info("default user account created: %s", account.Username)
	}

	return nil
}

func (b *Bootstrapper) ensureAccount(ctx context.Context, account *Account, password string, role AccountRole) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	created := false

	err := b.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := b.repo.Accounts().CountByRoleTx(ctx, tx, role)
		if err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		hash, err := HashPassword(password)
		if err != nil {
			return err
		}

		account.PasswordHash = hash
		if _, err := b.repo.Accounts().CreateTx(ctx, tx, account); err != nil {
			return err
		}

		created = true
		return nil
	})

	if err != nil {
		if IsDuplicateIdentifierError(err) {
			b.logger.Info("default %s account already seeded by another instance", role)
			return false, nil
		}

		return false, goerrors.Wrap(err, ErrBootstrapFailed.Category, ErrBootstrapFailed.Message).
			WithTextCode(ErrBootstrapFailed.TextCode).
			WithMetadata(map[string]any{"role": role})
	}

	return created, nil
}
