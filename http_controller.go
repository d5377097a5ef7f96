package bookstore

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the admin and storefront auth endpoints
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {

	controller := NewAuthController(opts...)

	app.
		Post(controller.Routes.AdminLogin, controller.AdminLoginPost).
		SetName("admin.sign-in.post")

	app.
		Post(controller.Routes.AdminRegister,
			controller.AdminRegisterPost,
			controller.AuthGate,
			controller.AdminGate,
		).
		SetName("admin.register.post")

	app.
		Get(controller.Routes.AdminProfile,
			controller.AdminProfileGet,
			controller.AuthGate,
		).
		SetName("admin.profile.get")

	app.
		Post(controller.Routes.UserRegister, controller.UserRegisterPost).
		SetName("user.register.post")

	app.
		Post(controller.Routes.UserLogin, controller.UserLoginPost).
		SetName("user.sign-in.post")
}

type AuthControllerRoutes struct {
	AdminLogin    string
	AdminRegister string
	AdminProfile  string
	UserRegister  string
	UserLogin     string
}

type AuthController struct {
	Debug      bool
	Logger     Logger
	Repo       RepositoryManager
	Routes     *AuthControllerRoutes
	Auther     Authenticator
	AuthGate   router.MiddlewareFunc
	AdminGate  router.MiddlewareFunc
	ContextKey string
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		ContextKey: "identity",
		Routes: &AuthControllerRoutes{
			AdminLogin:    "/api/admin/login",
			AdminRegister: "/api/admin/register",
			AdminProfile:  "/api/admin/profile",
			UserRegister:  "/api/users/register",
			UserLogin:     "/api/users/login",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.AuthGate == nil {
		panic("Missing auth middleware in auth controller...")
	}

	if c.AdminGate == nil {
		panic("Missing admin role middleware in auth controller...")
	}

	return c
}

// WithRepositoryManager sets the store
func WithRepositoryManager(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

// WithAuthenticator sets the authenticator
func WithAuthenticator(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// WithGates sets the auth and admin role middlewares
func WithGates(authGate, adminGate router.MiddlewareFunc) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.AuthGate = authGate
		c.AdminGate = adminGate
		return c
	}
}

// WithControllerLogger sets the controller logger
func WithControllerLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = l
		return c
	}
}

// WithDebug enables payload dumps
func WithDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// AccountSummary is the account shape returned to API clients
type AccountSummary struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	Email    string      `json:"email,omitempty"`
	Username string      `json:"userName,omitempty"`
	Avatar   string      `json:"avatar,omitempty"`
	Role     AccountRole `json:"role"`
}

func summaryFromAccount(account *Account) AccountSummary {
	return AccountSummary{
		ID:       account.ID.String(),
		Name:     account.Name,
		Email:    account.Email,
		Username: account.Username,
		Avatar:   account.AvatarPath,
		Role:     account.Role,
	}
}

// AdminLoginRequest payload
type AdminLoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r AdminLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) AdminLoginPost(ctx router.Context) error {
	payload := new(AdminLoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("admin login parse payload: %v", err)
		return a.respondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	if err := payload.Validate(); err != nil {
		return a.respondValidationError(ctx, err)
	}

	if a.Debug {
		fmt.Println("======= ADMIN LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("==========================")
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return a.respondError(ctx, err)
	}

	account, err := a.Repo.Accounts().GetByIdentifier(ctx.Context(), payload.Email)
	if err != nil {
		return a.respondError(ctx, WrapStoreError(err, "failed to load account after login"))
	}

	// a valid storefront credential is still not an admin credential
	if !account.Role.IsAdmin() {
		a.Logger.Warn("admin login rejected for non admin account %s", account.ID)
		return a.respondError(ctx, ErrInvalidCredentials)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"token": token,
		"admin": summaryFromAccount(account),
	})
}

// AdminRegisterRequest payload
type AdminRegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Avatar   string `form:"avatar" json:"avatar"`
}

// Validate will run validation rules
func (r AdminRegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (a *AuthController) AdminRegisterPost(ctx router.Context) error {
	payload := new(AdminRegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("admin register parse payload: %v", err)
		return a.respondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	if err := payload.Validate(); err != nil {
		return a.respondValidationError(ctx, err)
	}

	req := RegisterAccountMessage{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Avatar:   payload.Avatar,
		Role:     RoleAdmin,
	}

	register := NewRegisterAccountHandler(a.Repo)
	account, err := register.Execute(ctx.Context(), req)
	if err != nil {
		a.Logger.Error("admin register error: %v", err)
		return a.respondError(ctx, err)
	}

	return ctx.JSON(fiber.StatusCreated, map[string]any{
		"admin": summaryFromAccount(account),
	})
}

func (a *AuthController) AdminProfileGet(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, a.ContextKey)
	if !ok {
		return a.respondError(ctx, ErrMissingIdentity)
	}

	account, err := a.Repo.Accounts().GetByID(ctx.Context(), claims.AccountID())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return a.respondError(ctx, ErrIdentityNotFound)
		}
		return a.respondError(ctx, WrapStoreError(err, "failed to load account profile"))
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"admin": summaryFromAccount(account),
	})
}

// UserRegisterRequest payload
type UserRegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Username string `form:"userName" json:"userName"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r UserRegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (a *AuthController) UserRegisterPost(ctx router.Context) error {
	payload := new(UserRegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("user register parse payload: %v", err)
		return a.respondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	if err := payload.Validate(); err != nil {
		return a.respondValidationError(ctx, err)
	}

	req := RegisterAccountMessage{
		Name:     payload.Name,
		Username: payload.Username,
		Password: payload.Password,
		Role:     RoleUser,
	}

	register := NewRegisterAccountHandler(a.Repo)
	account, err := register.Execute(ctx.Context(), req)
	if err != nil {
		a.Logger.Error("user register error: %v", err)
		return a.respondError(ctx, err)
	}

	return ctx.JSON(fiber.StatusCreated, map[string]any{
		"userId":   account.ID.String(),
		"userName": account.Username,
		"role":     account.Role,
	})
}

// UserLoginRequest payload
type UserLoginRequest struct {
	Username string `form:"userName" json:"userName"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r UserLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) UserLoginPost(ctx router.Context) error {
	payload := new(UserLoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("user login parse payload: %v", err)
		return a.respondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	if err := payload.Validate(); err != nil {
		return a.respondValidationError(ctx, err)
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return a.respondError(ctx, err)
	}

	claims, err := a.Auther.ClaimsFromToken(token)
	if err != nil {
		return a.respondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"token":    token,
		"userId":   claims.AccountID(),
		"userName": claims.Name(),
		"role":     claims.Role(),
	})
}

func (a *AuthController) respondValidationError(ctx router.Context, err error) error {
	return ctx.JSON(router.StatusBadRequest, map[string]any{
		"error":      "VALIDATION_ERROR",
		"validation": err.Error(),
	})
}

// respondError maps error categories to HTTP statuses. Auth failures stay
// a generic 401 so callers cannot tell an unknown identifier from a wrong
// password or a bad token apart beyond the text code.
func (a *AuthController) respondError(ctx router.Context, err error) error {
	status := fiber.StatusInternalServerError
	textCode := "INTERNAL_ERROR"

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		if richErr.TextCode != "" {
			textCode = richErr.TextCode
		}

		switch richErr.Category {
		case goerrors.CategoryAuth:
			status = router.StatusUnauthorized
		case goerrors.CategoryAuthz:
			status = router.StatusForbidden
		case goerrors.CategoryValidation, goerrors.CategoryBadInput, goerrors.CategoryConflict:
			status = router.StatusBadRequest
		case goerrors.CategoryNotFound:
			status = fiber.StatusNotFound
		case goerrors.CategoryRateLimit:
			status = fiber.StatusTooManyRequests
		}
	}

	if status == fiber.StatusInternalServerError {
		a.Logger.Error("request failed: %v", err)
	}

	return ctx.JSON(status, map[string]any{
		"error": textCode,
	})
}
