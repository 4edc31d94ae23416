package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fintrack/internal/app"
	"github.com/MrJamesThe3rd/fintrack/internal/config"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
	fintrackHttp "github.com/MrJamesThe3rd/fintrack/internal/http"
	accountHandler "github.com/MrJamesThe3rd/fintrack/internal/http/account"
	categoryHandler "github.com/MrJamesThe3rd/fintrack/internal/http/category"
	currencyHandler "github.com/MrJamesThe3rd/fintrack/internal/http/currency"
	operationHandler "github.com/MrJamesThe3rd/fintrack/internal/http/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/http/pages"
	"github.com/MrJamesThe3rd/fintrack/internal/http/security"
	txHandler "github.com/MrJamesThe3rd/fintrack/internal/http/transaction"
	userHandler "github.com/MrJamesThe3rd/fintrack/internal/http/user"
	"github.com/MrJamesThe3rd/fintrack/internal/logging"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logging.Setup(cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		return err
	}

	if cfg.UsesInsecureSessionSecret() {
		slog.Warn("using the default session secret outside development", "env", cfg.App.Env)
	}

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			return err
		}
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	svc := app.NewServices(db, cfg.Session.BcryptCost)
	sessions := session.NewManager(cfg.Session.SecretKey, cfg.Session.TTL, cfg.Session.SecureCookie, svc.Users)

	site, err := pages.New(pages.Deps{
		Users:        svc.Users,
		Sessions:     sessions,
		Operations:   svc.Operations,
		Categories:   svc.Categories,
		Currencies:   svc.Currencies,
		Transactions: svc.Transactions,
	})
	if err != nil {
		return err
	}

	router := fintrackHttp.New(fintrackHttp.Handlers{
		Operations:   operationHandler.NewHandler(svc.Operations),
		Categories:   categoryHandler.NewHandler(svc.Categories),
		Currencies:   currencyHandler.NewHandler(svc.Currencies),
		Transactions: txHandler.NewHandler(svc.Transactions),
		Users:        userHandler.NewHandler(),
		Account:      accountHandler.NewHandler(svc.Users, sessions),
		Pages:        site,
	}, sessions, fintrackHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Headers:        security.DefaultHeaders(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr, "env", cfg.App.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
