package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/common/otel"
	"wiw3ch.app/matchmaker/core/config"
	"wiw3ch.app/matchmaker/core/db"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/lock"
	"wiw3ch.app/matchmaker/internal/queue"
	"wiw3ch.app/matchmaker/internal/service"
	"wiw3ch.app/matchmaker/internal/store"
	"wiw3ch.app/matchmaker/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Setup(cfg)

	slog.InfoContext(ctx, "matchmaker worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Redis.Group,
		"consumer_name", cfg.Redis.Consumer)

	// different node ID than server and seed
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Redis.Stream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Redis.Stream,
		Group:        cfg.Redis.Group,
		Consumer:     cfg.Redis.Consumer,
		DLQStream:    cfg.Redis.DLQStream,
		BatchSize:    cfg.Worker.BatchSize,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Worker.MaxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	analyzer, explainer, err := analysis.Setup(ctx, cfg.AnalysisLLM, cfg.ExplanationLLM)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize llm clients", "error", err)
		os.Exit(1)
	}

	// the worker never enqueues, so it runs without a producer
	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		analyzer,
		explainer,
		lock.NewRedisLocker(redisClient, cfg.Redis.LockKeyPrefix, cfg.LockTTL(service.MaxCandidatesPerRun)),
		nil,
		cfg,
	)

	w := worker.New(consumer, services.Matches(), worker.Config{
		MaxAttempts: cfg.Worker.MaxAttempts,
		MatchLimit:  cfg.Matching.DefaultLimit,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Redis.Stream,
		Group:     cfg.Redis.Group,
		Consumer:  cfg.Redis.Consumer + "-reclaimer",
		MinIdle:   5 * time.Minute,
		Interval:  1 * time.Minute,
		BatchSize: 10,
	}, consumer, w.Handle)

	sweeper := worker.NewSweeper(cfg.Worker.SweepInterval, map[string]worker.Expirer{
		"matches":       services.Matches(),
		"introductions": services.Introductions(),
	})

	errCh := make(chan error, 3)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()
	go func() {
		sweeper.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running",
		"sweep_interval", cfg.Worker.SweepInterval.String())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// reclaimer and sweeper stop quickly; the worker may be mid-batch
	reclaimer.Stop()
	sweeper.Stop()
	w.Stop()

wait:
	for range 3 {
		select {
		case <-shutdownCtx.Done():
			slog.WarnContext(ctx, "shutdown timeout exceeded")
			break wait
		case err := <-errCh:
			if err != nil {
				slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
			}
		}
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "otel shutdown error", "error", err)
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
 __  __    _  _____ ____ _   _    __        _____  ____  _  _______ ____
|  \/  |  / \|_   _/ ___| | | |   \ \      / / _ \|  _ \| |/ / ____|  _ \
| |\/| | / _ \ | || |   | |_| |    \ \ /\ / / | | | |_) | ' /|  _| | |_) |
| |  | |/ ___ \| || |___|  _  |     \ V  V /| |_| |  _ <| . \| |___|  _ <
|_|  |_/_/   \_\_| \____|_| |_|      \_/\_/  \___/|_| \_\_|\_\_____|_| \_\
`
