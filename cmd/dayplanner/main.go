package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/example/dayplanner/internal/config"
	httptransport "github.com/example/dayplanner/internal/http"
	"github.com/example/dayplanner/internal/persistence"
	"github.com/example/dayplanner/internal/persistence/sqlite"
	"github.com/example/dayplanner/internal/planner"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := func() string { return uuid.NewString() }
	tokenGenerator := func() string { return uuid.NewString() }
	now := time.Now

	if cfg.AdminEmail != "" {
		if err := seedAdminUser(context.Background(), storage, idGenerator, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
			logger.Error("failed to seed administrator account", "error", err)
			os.Exit(1)
		}
	}

	plannerService := planner.NewPlannerServiceWithLogger(storage, storage, now, nil, cfg.DayCacheTTL, cfg.DayCacheMaxEntries, logger)
	authService := planner.NewAuthServiceWithLogger(storage, storage, nil, tokenGenerator, now, cfg.SessionTTL, logger)

	authHandler := httptransport.NewAuthHandler(authService, logger)
	plannerHandler := httptransport.NewPlannerHandler(plannerService, logger)
	cronHandler := httptransport.NewCronHandler(now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:    authHandler,
		Planner: plannerHandler,
		Cron:    cronHandler,
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Login and cron projection are reachable without a session.
		if strings.EqualFold(r.URL.Path, "/sessions") || strings.EqualFold(r.URL.Path, "/cron/next") {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	maintenance := cron.New(cron.WithSeconds())
	if _, err := maintenance.AddFunc(cfg.SessionCleanupSpec, func() {
		if err := storage.DeleteExpiredSessions(context.Background(), time.Now()); err != nil {
			logger.Error("failed to prune expired sessions", "error", err)
			return
		}
		logger.Info("expired sessions pruned")
	}); err != nil {
		logger.Error("failed to schedule session cleanup", "spec", cfg.SessionCleanupSpec, "error", err)
		os.Exit(1)
	}
	maintenance.Start()
	defer maintenance.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("day planner API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedAdminUser creates the administrator account named by configuration when
// no user with that email exists yet.
func seedAdminUser(ctx context.Context, storage *sqlite.Store, idGenerator func() string, email, password string, logger *slog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := storage.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return err
	}

	hash, err := planner.CreatePasswordHash(password, planner.DefaultArgon2idParams)
	if err != nil {
		return err
	}

	user := persistence.User{
		ID:           idGenerator(),
		Email:        email,
		DisplayName:  "Administrator",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := storage.CreateUser(ctx, user); err != nil {
		return err
	}
	logger.Info("administrator account seeded", "email", email, "user_id", user.ID)
	return nil
}
