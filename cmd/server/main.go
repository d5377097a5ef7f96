package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	bookstore "github.com/goliatone/go-bookstore"
	"github.com/goliatone/go-bookstore/middleware/authware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config AppConfig
	bunDB  *bun.DB
	auth   bookstore.Authenticator
	repo   bookstore.RepositoryManager
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("bookstore"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	if err := godotenv.Load(); err != nil {
		lgr.GetLogger("config").Debug("no .env file loaded", "error", err)
	}

	app := &App{
		config: LoadConfig(),
		logger: lgr,
	}

	bookstore.SetPasswordHashCost(app.config.Auth.PasswordHashCost)

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	WithHTTPServer(app)

	if err := WithHTTPAuth(app); err != nil {
		panic(err)
	}

	EnsureDefaultAccounts(ctx, app)

	app.srv.Serve(":" + app.config.Port)

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	sqldb, err := sql.Open(sqliteshim.ShimName, app.config.DBDSN)
	if err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := bookstore.EnsureSchema(ctx, db); err != nil {
		return err
	}

	app.bunDB = db
	app.repo = bookstore.NewRepositoryManager(db)

	return app.repo.Validate()
}

func WithHTTPServer(app *App) {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: app.config.Debug,
			StrictRouting:     false,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	app.srv = srv
}

func WithHTTPAuth(app *App) error {
	cfg := app.config.Auth

	provider := bookstore.NewAccountProvider(app.repo.Accounts()).
		WithLogger(adaptLogger(app.GetLogger("auth:prv")))

	authenticator := bookstore.NewAuthenticator(provider, cfg).
		WithLogger(adaptLogger(app.GetLogger("auth:authn")))

	app.auth = authenticator

	authGate := authware.New(authware.Config{
		Validator:  authenticator.TokenService(),
		ContextKey: cfg.GetContextKey(),
		AuthScheme: cfg.GetAuthScheme(),
	})

	adminGate := authware.RequireRole(bookstore.RoleAdmin, authware.Config{
		ContextKey: cfg.GetContextKey(),
	})

	bookstore.RegisterAuthRoutes(app.srv.Router().Group("/"),
		bookstore.WithRepositoryManager(app.repo),
		bookstore.WithAuthenticator(authenticator),
		bookstore.WithGates(authGate, adminGate),
		bookstore.WithControllerLogger(adaptLogger(app.GetLogger("auth:ctrl"))),
		bookstore.WithDebug(app.config.Debug),
	)

	return nil
}

// EnsureDefaultAccounts seeds the default admin and storefront accounts.
// A failure here leaves login for that role unavailable until the store
// recovers, so we log and keep serving rather than crash.
func EnsureDefaultAccounts(ctx context.Context, app *App) {
	lgr := app.GetLogger("bootstrap")

	bootstrap := bookstore.NewBootstrapper(app.repo, app.config.Auth).
		WithLogger(adaptLogger(lgr))

	if err := bootstrap.EnsureDefaultAdmin(ctx); err != nil {
		lgr.Error("default admin bootstrap failed, admin login unavailable until resolved", "error", err)
	}

	if err := bootstrap.EnsureDefaultUser(ctx); err != nil {
		lgr.Error("default user bootstrap failed", "error", err)
	}
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}

// loggerAdapter bridges the structured glog logger to the printf style
// logger the bookstore package expects.
type loggerAdapter struct {
	lgr glog.Logger
}

func adaptLogger(lgr glog.Logger) bookstore.Logger {
	return loggerAdapter{lgr: lgr}
}

func (l loggerAdapter) Debug(format string, args ...any) { l.lgr.Debug(fmt.Sprintf(format, args...)) }
func (l loggerAdapter) Info(format string, args ...any)  { l.lgr.Info(fmt.Sprintf(format, args...)) }
func (l loggerAdapter) Warn(format string, args ...any)  { l.lgr.Warn(fmt.Sprintf(format, args...)) }
func (l loggerAdapter) Error(format string, args ...any) { l.lgr.Error(fmt.Sprintf(format, args...)) }
