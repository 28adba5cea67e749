package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"chatops.app/courier/common/id"
	"chatops.app/courier/common/llm"
	"chatops.app/courier/common/logger"
	"chatops.app/courier/common/otel"
	"chatops.app/courier/core/config"
	"chatops.app/courier/core/kv"
	"chatops.app/courier/internal/health"
	"chatops.app/courier/internal/http/middleware"
	httprouter "chatops.app/courier/internal/http/router"
	"chatops.app/courier/internal/poller"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
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
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "courier starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	handle, err := kv.New(ctx, cfg.Redis)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer handle.Close()
	slog.InfoContext(ctx, "redis connected", "key_prefix", cfg.Redis.KeyPrefix)

	directoryStore := store.NewDirectoryStore(handle)
	conversationStore := store.NewConversationStore(handle)

	var llmClient llm.Client
	if cfg.Resolver.Enabled() {
		llmClient, err = llm.New(llm.Config{
			APIKey:  cfg.Resolver.APIKey,
			BaseURL: cfg.Resolver.BaseURL,
			Model:   cfg.Resolver.Model,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to initialize resolver client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "resolver enabled", "model", llmClient.Model())
	} else {
		slog.InfoContext(ctx, "resolver disabled (no API key configured)")
	}

	services := service.NewServices(service.ServicesConfig{
		Directory:     directoryStore,
		Conversations: conversationStore,
		LLM:           llmClient,
		Resolve: service.ResolveConfig{
			MaxAttempts: cfg.Resolver.MaxAttempts,
			RetryDelay:  cfg.Resolver.RetryDelay,
			Timeout:     cfg.Resolver.Timeout,
			MaxTokens:   cfg.Resolver.MaxTokens,
		},
	})

	directoryPoller := poller.New(directoryStore, poller.Config{Interval: cfg.Poller.Interval})
	pollerCtx, cancelPoller := context.WithCancel(ctx)
	defer cancelPoller()
	go directoryPoller.Run(pollerCtx)
	defer directoryPoller.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, directoryStore, directoryPoller, handle)
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
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, directory store.DirectoryStore, view *poller.DirectoryPoller, handle *kv.KV) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.Config{
		Directory: directory,
		View:      view,
		Store:     handle,
		Probe: health.Config{
			Timeout:    cfg.Probe.Timeout,
			SampleSize: cfg.Probe.SampleSize,
		},
	})

	return router
}

const banner = `
 ██████╗ ██████╗ ██╗   ██╗██████╗ ██╗███████╗██████╗
██╔════╝██╔═══██╗██║   ██║██╔══██╗██║██╔════╝██╔══██╗
██║     ██║   ██║██║   ██║██████╔╝██║█████╗  ██████╔╝
██║     ██║   ██║██║   ██║██╔══██╗██║██╔══╝  ██╔══██╗
╚██████╗╚██████╔╝╚██████╔╝██║  ██║██║███████╗██║  ██║
 ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚═╝  ╚═╝
`
