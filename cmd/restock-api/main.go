package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restock/internal/api"
	"restock/internal/config"
	"restock/internal/db"
	"restock/internal/game"
	"restock/internal/leaderboard"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadAPIFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	bal := game.DefaultBalance()
	if cfg.BalancePath != "" {
		loaded, err := game.LoadBalance(cfg.BalancePath)
		if err != nil {
			logger.Error("load balance", "path", cfg.BalancePath, "err", err)
			os.Exit(1)
		}
		bal = loaded
	}

	var scores leaderboard.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		scores, err = leaderboard.OpenPostgres(ctx, pool)
		if err != nil {
			logger.Error("leaderboard init failed", "err", err)
			os.Exit(1)
		}
		logger.Info("leaderboard backend", "kind", "postgres")
	} else {
		store, err := leaderboard.OpenSQLite(cfg.LeaderboardPath)
		if err != nil {
			logger.Error("leaderboard init failed", "path", cfg.LeaderboardPath, "err", err)
			os.Exit(1)
		}
		defer store.Close()
		scores = store
		logger.Info("leaderboard backend", "kind", "sqlite", "path", cfg.LeaderboardPath)
	}

	server := api.New(cfg, logger, scores, bal)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("restock api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
