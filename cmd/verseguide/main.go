package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/chikere/verseguide/internal/bot"
	"github.com/chikere/verseguide/internal/config"
	dbRedis "github.com/chikere/verseguide/internal/db/redis"
	logpkg "github.com/chikere/verseguide/internal/logger"
	"github.com/chikere/verseguide/internal/metrics"
	"github.com/chikere/verseguide/internal/quota"
	"github.com/chikere/verseguide/internal/transport/httpapi"
	openaiChat "github.com/chikere/verseguide/internal/transport/openai"
	"github.com/chikere/verseguide/internal/transport/telegram"
	"github.com/chikere/verseguide/internal/transport/verseapi"
	"github.com/chikere/verseguide/internal/usage"
	"github.com/chikere/verseguide/internal/verse"
	"github.com/chikere/verseguide/internal/versecache"
	"github.com/chikere/verseguide/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting verseguide",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("daily_limit", cfg.Bot.Limit()),
		zap.String("timezone", cfg.Bot.Timezone),
	)

	metrics.RegisterBotMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Verse generation chain: OpenAI-compatible chat -> optional reply cache.
	generator := openaiChat.NewGenerator(&openaiChat.Config{
		APIKey:  cfg.Verse.APIKey,
		BaseURL: cfg.Verse.BaseURL,
		Model:   cfg.Verse.Model,
		Logger:  logger,
	})
	var lookup httpapi.VerseLookup = verse.New(generator)

	if len(cfg.Cache.Addrs) > 0 {
		cacheStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cacheStore.Close()

		if err := cacheStore.WaitForReady(ctx, 10*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}

		lookup = versecache.New(
			lookup, cacheStore,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.VerseCacheTotal, logger,
		)
		logger.Info("Verse reply cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Verse API server.
	apiServer := httpapi.NewServer(lookup, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      apiServer.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Quota enforcement: store, policy, daily janitor.
	store := usage.NewStore(cfg.Bot.Limit(), cfg.Location())
	policy := quota.New(store)

	janitor := usage.NewJanitor(store, cfg.Bot.SweepHour, logger)
	go janitor.Run(ctx)

	// Dispatcher wired to the backend over HTTP, same as any other client.
	backend := verseapi.NewClient(verseapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	dispatcher := bot.NewDispatcher(bot.Config{
		Quota:          policy,
		Backend:        backend,
		MaxQueryLength: cfg.Bot.MaxQueryLength,
		BackendTimeout: time.Duration(cfg.Backend.TimeoutSec) * time.Second,
		Logger:         logger,
	})

	tgBot, err := telegram.NewBot(telegram.Config{
		Token:       cfg.Telegram.Token,
		PollTimeout: time.Duration(cfg.Telegram.PollTimeoutSec) * time.Second,
		Handler:     dispatcher,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("Failed to connect to Telegram", zap.Error(err))
	}
	go tgBot.Run(ctx)

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Received shutdown signal")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Stopped gracefully")
}
