package bookstore

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// AccountTracker is a store we can use to retrieve and track accounts
type AccountTracker interface {
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*Account, error)
	TrackAttemptedLogin(ctx context.Context, account *Account) error
	TrackSuccessfulLogin(ctx context.Context, account *Account) error
}

// AccountProvider resolves stored accounts into auth identities
type AccountProvider struct {
	store     AccountTracker
	Validator func(*Account) error
	logger    Logger
}

// MaxLoginAttempts is the maximum number of attempts an account gets
// in a period
var MaxLoginAttempts = 5

// CoolDownPeriod is the period in which we enforce a cool down
var CoolDownPeriod = "24h"

// NewAccountProvider will create a new AccountProvider
func NewAccountProvider(store AccountTracker) *AccountProvider {
	return &AccountProvider{
		store:     store,
		logger:    defLogger{},
		Validator: defaultAccountValidator,
	}
}

func (p *AccountProvider) WithLogger(l Logger) *AccountProvider {
	p.logger = l
	return p
}

func (p *AccountProvider) validate(account *Account) error {
	if p.Validator != nil {
		return p.Validator(account)
	}
	return defaultAccountValidator(account)
}

// VerifyIdentity will find the account, compare the password, and return
// the identity. Unknown identifier and wrong password both come back as
// ErrInvalidCredentials so callers cannot probe for registered accounts.
func (p AccountProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	account, err := p.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			p.logger.Debug("VerifyIdentity no account for identifier %s", identifier)
			return nil, ErrInvalidCredentials
		}
		return nil, WrapStoreError(err, "failed to retrieve account during verification")
	}

	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if account.LoginAttemptAt != nil {
		expired, err := IsOutsideThresholdPeriod(*account.LoginAttemptAt, CoolDownPeriod)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to calculate login attempt cooldown")
		}

		if expired {
			account.LoginAttempts = 0
		}
	}

	// if we have too many attempts in the given window, cool off!
	if account.LoginAttempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		if err2 := p.store.TrackAttemptedLogin(ctx, account); err2 != nil {
			return nil, WrapStoreError(err2, "failed to track login attempt")
		}

		p.logger.Debug("VerifyIdentity password mismatch for account %s", account.ID)
		return nil, ErrInvalidCredentials
	}

	// reset the login_attempts counter and login_attempt_at
	if err := p.store.TrackSuccessfulLogin(ctx, account); err != nil {
		p.logger.Error("failed to track successful login: %v", err)
	}

	if err := p.validate(account); err != nil {
		return nil, err
	}

	return identityFromAccount(account), nil
}

// FindIdentityByIdentifier resolves an identity without checking credentials
func (p AccountProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	account, err := p.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, WrapStoreError(err, "failed to retrieve account")
	}

	if account == nil {
		return nil, ErrIdentityNotFound
	}

	if err := p.validate(account); err != nil {
		return nil, err
	}

	return identityFromAccount(account), nil
}

type authIdentity struct {
	id       string
	name     string
	username string
	email    string
	avatar   string
	role     AccountRole
}

func (a authIdentity) ID() string        { return a.id }
func (a authIdentity) Name() string      { return a.name }
func (a authIdentity) Username() string  { return a.username }
func (a authIdentity) Email() string     { return a.email }
func (a authIdentity) Avatar() string    { return a.avatar }
func (a authIdentity) Role() AccountRole { return a.role }

var _ Identity = authIdentity{}

func identityFromAccount(account *Account) authIdentity {
	return authIdentity{
		id:       account.ID.String(),
		name:     account.Name,
		username: account.Username,
		email:    account.Email,
		avatar:   account.AvatarPath,
		role:     account.Role,
	}
}

func defaultAccountValidator(a *Account) error {
	if a.Role.IsValid() {
		return nil
	}
	return errors.New("account has an unknown or invalid role", errors.CategoryAuth).
		WithTextCode("INVALID_ROLE").
		WithMetadata(map[string]any{"role": a.Role, "account_id": a.ID.String()})
}
