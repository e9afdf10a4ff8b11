package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	redis "github.com/redis/go-redis/v9"

	"github.com/McCollisters/autovista-api-sub002/internal/common"
	"github.com/McCollisters/autovista-api-sub002/internal/config"
	"github.com/McCollisters/autovista-api-sub002/internal/db"
	"github.com/McCollisters/autovista-api-sub002/internal/notify"
	"github.com/McCollisters/autovista-api-sub002/internal/obs"
	"github.com/McCollisters/autovista-api-sub002/internal/portal"
	"github.com/McCollisters/autovista-api-sub002/internal/quote"
	"github.com/McCollisters/autovista-api-sub002/internal/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := db.Connect(connectCtx, cfg.DatabaseURL, "autovista-worker")
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}

	var mailer common.EmailSender = common.LogEmailSender{Logger: logger}

	handler := &notify.QuoteCreatedHandler{
		Quotes:  quote.NewPGStore(pool),
		Portals: &portal.Store{Pool: pool},
		Mail:    mailer,
		Logger:  logger,
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisOpts.Addr, Password: redisOpts.Password, DB: redisOpts.DB},
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Logger:      asynqLogger{logger: logger},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(task.TypeQuoteCreated, handler)

	go func() {
		<-ctx.Done()
		logger.Info().Msg("worker stopping")
		srv.Shutdown()
	}()

	logger.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("worker starting")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker exited unexpectedly")
	}
	logger.Info().Msg("worker stopped")
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
