package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petclinic/internal/adapters/auth/jwtauth"
	"petclinic/internal/adapters/storage/memory"
	"petclinic/internal/adapters/storage/postgres"
	"petclinic/internal/adapters/storage/sqlite"
	"petclinic/internal/adapters/storage/sqlstore"
	"petclinic/internal/config"
	"petclinic/internal/ports/auth"
	"petclinic/internal/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var errNoDatabase = errors.New("storage driver memory has no database")

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// openDB abre la base del driver configurado. Con memory devuelve errNoDatabase.
func (a *app) openDB(ctx context.Context) (*sql.DB, sqlstore.Dialect, error) {
	var (
		db  *sql.DB
		err error
	)
	switch a.cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, a.cfg.Storage.DSN)
	case config.DriverPostgres:
		db, err = postgres.Open(ctx, a.cfg.Storage.DSN)
	default:
		return nil, "", errNoDatabase
	}
	if err != nil {
		return nil, "", err
	}

	d, err := sqlstore.ParseDialect(a.cfg.Storage.Driver)
	if err != nil {
		_ = db.Close()
		return nil, "", err
	}
	return db, d, nil
}

// openRepos devuelve los repos y una función para liberar la conexión.
func (a *app) openRepos(ctx context.Context) (router.Repos, func() error, error) {
	if a.cfg.Storage.Driver == config.DriverMemory {
		a.log.Warn("using in-memory storage; data is lost on restart", nil)
		return router.MemoryRepos(memory.NewSeededStore()), func() error { return nil }, nil
	}

	db, d, err := a.openDB(ctx)
	if err != nil {
		return router.Repos{}, nil, err
	}
	if a.cfg.Storage.AutoMigrate {
		if err := sqlstore.Migrate(db, d, "up", a.log); err != nil {
			_ = db.Close()
			return router.Repos{}, nil, err
		}
	}
	store := sqlstore.New(db, d)
	return router.SQLRepos(store), store.Close, nil
}

func (a *app) verifier() (auth.AuthVerifier, error) {
	if a.cfg.Auth.JWTSecret == "" {
		if a.cfg.Auth.Required {
			return nil, fmt.Errorf("%w: auth.required needs auth.jwt_secret", config.ErrInvalid)
		}
		return nil, nil
	}
	return jwtauth.NewVerifier(jwtauth.Config{
		Secret: a.cfg.Auth.JWTSecret,
		Issuer: a.cfg.Auth.Issuer,
	})
}

func (a *app) serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := a.verifier()
	if err != nil {
		return err
	}

	repos, closeRepos, err := a.openRepos(ctx)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := closeRepos(); err != nil {
			a.log.Error("close storage", map[string]any{"error": err})
		}
	}()

	h := router.NewRouter(router.Options{
		Repos:        repos,
		Logger:       a.log,
		AuthVerifier: verifier,
		RequireAuth:  a.cfg.Auth.Required,
	})

	srv := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      h,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", map[string]any{
			"addr":    srv.Addr,
			"storage": a.cfg.Storage.Driver,
			"auth":    a.cfg.Auth.Required,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.log.Info("server stopped", nil)
	return nil
}
