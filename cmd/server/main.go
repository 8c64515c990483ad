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

	"basegraph.app/forum/common/id"
	"basegraph.app/forum/common/logger"
	"basegraph.app/forum/common/otel"
	"basegraph.app/forum/common/sanitize"
	"basegraph.app/forum/core/config"
	"basegraph.app/forum/core/db"
	"basegraph.app/forum/internal/guard"
	"basegraph.app/forum/internal/http/middleware"
	httprouter "basegraph.app/forum/internal/http/router"
	"basegraph.app/forum/internal/queue"
	"basegraph.app/forum/internal/search"
	"basegraph.app/forum/internal/service"
	"basegraph.app/forum/internal/spam"
	"basegraph.app/forum/internal/store"
	"basegraph.app/forum/internal/throttle"
	"basegraph.app/forum/internal/visits"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

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

	slog.InfoContext(ctx, "forum server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
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

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	eventProducer := queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, slog.Default())
	defer eventProducer.Close()

	indexer := setupIndexer(ctx, cfg.Search)

	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		eventProducer,
		indexer,
		visits.NewRedisTracker(redisClient, cfg.Features.VisitTTL),
		service.IssueServiceConfig{PruneSubscriptionsOnDelete: cfg.Features.PruneSubscriptionsOnDelete},
	)

	replyGuard := guard.Chain{
		guard.Spam(spam.Default(cfg.Replies.SpamKeywords)),
		guard.Throttle(setupLimiter(ctx, cfg.Replies, redisClient), throttle.Scope(cfg.Replies.ThrottleScope)),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, httprouter.RouterConfig{
		ReplyGuard: replyGuard,
		Cleaner:    sanitize.NewCleaner(),
		Ready: func(ctx context.Context) error {
			if err := database.Ping(ctx); err != nil {
				return err
			}
			return redisClient.Ping(ctx).Err()
		},
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
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
	cancelBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// setupIndexer falls back to a no-op indexer when Typesense is not configured
// or unreachable. Search then answers 503 while writes keep working.
func setupIndexer(ctx context.Context, cfg config.SearchConfig) search.Indexer {
	if !cfg.Enabled() {
		slog.InfoContext(ctx, "search disabled (no typesense configured)")
		return search.Nop{}
	}

	indexer, err := search.NewTypesenseIndexer(ctx, search.TypesenseConfig{
		URL:        cfg.URL,
		APIKey:     cfg.APIKey,
		Collection: cfg.Collection,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize typesense, search disabled", "error", err)
		return search.Nop{}
	}

	slog.InfoContext(ctx, "search enabled", "collection", cfg.Collection)
	return indexer
}

func setupLimiter(ctx context.Context, cfg config.ReplyPolicyConfig, client *redis.Client) throttle.Limiter {
	if cfg.ThrottleBackend == "memory" {
		limiter := throttle.NewMemoryLimiter(cfg.ThrottleWindow)
		go limiter.RunEvictor(ctx, cfg.ThrottleWindow)
		slog.InfoContext(ctx, "reply throttle using process memory", "window", cfg.ThrottleWindow, "scope", cfg.ThrottleScope)
		return limiter
	}

	slog.InfoContext(ctx, "reply throttle using redis", "window", cfg.ThrottleWindow, "scope", cfg.ThrottleScope)
	return throttle.NewRedisLimiter(client, cfg.ThrottleWindow)
}

func setupRouter(cfg config.Config, services *service.Services, routerCfg httprouter.RouterConfig) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.TraceHeader(cfg.Pipeline.TraceHeaderName))

	httprouter.SetupRoutes(router, services, routerCfg)

	return router
}

const banner = `
███████╗ ██████╗ ██████╗ ██╗   ██╗███╗   ███╗
██╔════╝██╔═══██╗██╔══██╗██║   ██║████╗ ████║
█████╗  ██║   ██║██████╔╝██║   ██║██╔████╔██║
██╔══╝  ██║   ██║██╔══██╗██║   ██║██║╚██╔╝██║
██║     ╚██████╔╝██║  ██║╚██████╔╝██║ ╚═╝ ██║
╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝
                                   server
`
