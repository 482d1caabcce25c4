package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/lmittmann/tint"

	"github.com/tendant/learning-tracks/internal/api"
	"github.com/tendant/learning-tracks/internal/config"
	"github.com/tendant/learning-tracks/internal/repository/psql"
	"github.com/tendant/learning-tracks/internal/service"
	"github.com/tendant/learning-tracks/internal/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(os.Stdout, cfg.Log))

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: time.Kitchen,
	}))
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := psql.NewPool(ctx, cfg.Database.ConnString())
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := psql.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		slog.Info("database schema applied")
	}

	store := psql.NewStore(pool)
	ja := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)

	router := api.NewRouter(api.RouterConfig{
		Contents: api.NewContentHandler(service.NewContentService(store, youtube.New(cfg.YouTube))),
		Tracks:   api.NewTrackHandler(service.NewTrackService(store)),
		Users: api.NewUserHandler(
			service.NewUserService(store.Users(), cfg.Auth.BcryptCost),
			service.NewAuthService(store.Users(), ja, cfg.Auth.TokenTTL),
		),
		Auth:           ja,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowCORS:      cfg.Server.IsDevelopment(),
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("learning tracks server starting", "port", cfg.Server.Port, "env", cfg.Server.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server exiting")
	return nil
}
