package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/common/otel"
	"wiw3ch.app/matchmaker/core/config"
	"wiw3ch.app/matchmaker/core/db"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/http/middleware"
	httprouter "wiw3ch.app/matchmaker/internal/http/router"
	"wiw3ch.app/matchmaker/internal/lock"
	"wiw3ch.app/matchmaker/internal/queue"
	"wiw3ch.app/matchmaker/internal/service"
	"wiw3ch.app/matchmaker/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "matchmaker starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
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

	producer := queue.NewRedisProducer(redisClient, cfg.Redis.Stream, slog.Default())
	defer producer.Close()

	analyzer, explainer, err := analysis.Setup(ctx, cfg.AnalysisLLM, cfg.ExplanationLLM)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize llm clients", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "llm clients initialized",
		"analysis_provider", cfg.AnalysisLLM.Provider,
		"analysis_model", cfg.AnalysisLLM.Model,
		"explanations_enabled", explainer != nil)

	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		analyzer,
		explainer,
		lock.NewRedisLocker(redisClient, cfg.Redis.LockKeyPrefix, cfg.LockTTL(service.MaxCandidatesPerRun)),
		producer,
		cfg,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// match generation waits on the explanation model once per candidate
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		MemberHeader: cfg.MemberHeader,
	})

	return router
}

const banner = `
 __  __    _  _____ ____ _   _ __  __    _    _  _______ ____
|  \/  |  / \|_   _/ ___| | | |  \/  |  / \  | |/ / ____|  _ \
| |\/| | / _ \ | || |   | |_| | |\/| | / _ \ | ' /|  _| | |_) |
| |  | |/ ___ \| || |___|  _  | |  | |/ ___ \| . \| |___|  _ <
|_|  |_/_/   \_\_| \____|_| |_|_|  |_/_/   \_\_|\_\_____|_| \_\
`
