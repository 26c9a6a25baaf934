package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/config"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/handler"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/infrastructure/postgres"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/usecase/activity"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/usecase/stats"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/usecase/team"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/usecase/user"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/notify"
)

func main() {
	cfg := config.Load()
	logger := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer pool.Close()

	if cfg.Migrate {
		migrationsPath := "db/migrations/postgresql"
		if err := postgres.RunMigrations(ctx, pool, migrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		logger.Info("migrations completed")
	}

	repo := postgres.NewPostgresRepository(pool, logger)
	notifier := notify.NewLogNotifier(logger)
	teamUC := team.New(repo, repo, notifier, logger)
	userUC := user.New(repo, notifier, logger)
	activityUC := activity.New(repo, logger)
	statsUC := stats.New(repo, repo, logger)
	h := handler.New(teamUC, userUC, activityUC, statsUC, cfg.AdminToken, cfg.UserToken, logger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h.Router(),
	}

	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
