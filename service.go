package main

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

	"ewintr.nl/yt2blog/config"
	"ewintr.nl/yt2blog/fetcher"
	"ewintr.nl/yt2blog/handler"
	"ewintr.nl/yt2blog/process"
	"ewintr.nl/yt2blog/session"
	"ewintr.nl/yt2blog/storage"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	var sessions storage.SessionRepository
	if cfg.Postgres.Enabled() {
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			logger.Error("unable to connect to postgres", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		pg, err := storage.NewPostgres(db, cfg.SessionTTL)
		if err != nil {
			logger.Error("unable to migrate postgres", slog.String("error", err.Error()))
			os.Exit(1)
		}
		sessions = pg
		logger.Info("using postgres session store", slog.String("host", cfg.Postgres.Host))
	} else {
		sessions = storage.NewMemory(cfg.SessionTTL)
		logger.Info("using in memory session store")
	}

	watchPage := fetcher.NewWatchPage(cfg.TranscriptTimeout, logger)
	var (
		checker  fetcher.VideoChecker
		captions fetcher.CaptionLister
		metadata session.MetadataFetcher
	)
	if cfg.YoutubeAPIKey != "" {
		ytClient, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YoutubeAPIKey))
		if err != nil {
			logger.Error("unable to create youtube service", slog.String("error", err.Error()))
			os.Exit(1)
		}
		yt := fetcher.NewYoutube(ytClient, cfg.TranscriptTimeout)
		checker, captions, metadata = yt, yt, yt
	} else {
		logger.Warn("no youtube api key, video metadata is disabled")
	}

	flow := session.NewFlow(
		fetcher.NewResolver(checker, cfg.VideoCheck, logger),
		fetcher.NewFetcher(watchPage, captions, logger),
		metadata,
		process.NewGenerator(process.NewOpenAIClient(cfg.Generation, logger), logger),
		logger,
	)
	if cfg.Generation.APIKey == "" {
		logger.Warn("no api key for the generation service, blog generation will fail")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.NewServer(flow, sessions, cfg.SessionTTL, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()
	logger.Info("http server started", slog.Int("port", cfg.Port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("could not stop http server", slog.String("error", err.Error()))
	}

	logger.Info("service stopped")
}
