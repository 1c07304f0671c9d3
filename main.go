package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ytget/yt-telegram-bot/internal/bot"
	"github.com/ytget/yt-telegram-bot/internal/config"
	"github.com/ytget/yt-telegram-bot/internal/health"
	"github.com/ytget/yt-telegram-bot/internal/platform"
	"github.com/ytget/yt-telegram-bot/internal/resolver"
	"github.com/ytget/yt-telegram-bot/internal/session"
)

// version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(1)
	}

	log, logCloser, err := config.SetupLogger(cfg)
	if err != nil {
		slog.Error("logger setup failed", "err", err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	log.Info("yt-telegram-bot starting", "version", version, "health_port", cfg.HealthPort)

	if err := platform.CreateDirectoryIfNotExists(cfg.DownloadDir); err != nil {
		log.Error("failed to ensure download dir", "dir", cfg.DownloadDir, "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Liveness endpoint, on its own listener.
	healthSrv := health.NewServer(cfg.HealthPort)
	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health server failed", "err", err)
		}
	}()

	// Session store with its periodic sweep.
	store := session.NewStore(cfg.SessionTTL, cfg.SweepInterval, log)
	go store.Run(ctx)

	res := resolver.NewService(cfg.SocketTimeout, cfg.Retries, cfg.MaxFileSize)

	botSvc, err := bot.NewService(cfg, store, res, log)
	if err != nil {
		log.Error("bot startup failed", "err", err)
		os.Exit(1)
	}
	go botSvc.Start()

	// Block until asked to stop, then unwind everything.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	botSvc.Stop()
	cancel()
	if err := healthSrv.Shutdown(context.Background()); err != nil {
		log.Error("health server shutdown failed", "err", err)
	}
}
