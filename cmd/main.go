// @title Prompt Studio API
// @version 1.0
// @description Expands short prompts with an LLM and renders them with Stable Diffusion.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/prompt-studio/internal/cache"
	"github.com/kdduha/prompt-studio/internal/config"
	"github.com/kdduha/prompt-studio/internal/forge"
	"github.com/kdduha/prompt-studio/internal/handler"
	"github.com/kdduha/prompt-studio/internal/llm"
	"github.com/kdduha/prompt-studio/internal/logger"
	"github.com/kdduha/prompt-studio/internal/metrics"
	"github.com/kdduha/prompt-studio/internal/service"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/genai"

	_ "github.com/kdduha/prompt-studio/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	completer, err := newCompleter(ctx, cfg.LLM)
	if err != nil {
		zl.Fatal("llm client error", zap.Error(err))
	}

	expander := service.NewPromptExpander(zl, completer, cfg.LLM)
	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(cfg.RedisConfig)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			zl.Warn("redis is not reachable, expansions will not be cached until it is", zap.Error(err))
		}
		expander.SetCacheClient(redisCache)
		zl.Info("set redis as cache", zap.String("addr", cfg.RedisConfig.Addr))
	}

	generateService := service.NewGenerateService(zl, expander, forge.NewClient(cfg.Forge))
	g := handler.NewGenerateHandler(generateService)

	middlewares := []func(http.Handler) http.Handler{
		middleware.RequestID,
		logger.Middleware(zl),
		middleware.Recoverer,
		metrics.Middleware,
	}
	if cfg.Server.ThrottleLimit > 0 {
		middlewares = append(middlewares, middleware.Throttle(cfg.Server.ThrottleLimit))
	}
	if cfg.Server.Timeout > 0 {
		middlewares = append(middlewares, middleware.Timeout(cfg.Server.Timeout))
	}

	r := chi.NewRouter()
	r.Use(middlewares...)

	r.Post("/generate_images", g.GenerateImages)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		zl.Info("server started",
			zap.String("port", cfg.Server.Port),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("llm_model", cfg.LLM.Model),
			zap.String("forge_url", cfg.Forge.URL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}

func newCompleter(ctx context.Context, cfg config.LLMConfig) (llm.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		return llm.NewOpenAICompleter(openai.NewClient(opts...)), nil
	case config.ProviderGemini:
		clientCfg := &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if cfg.BaseURL != "" {
			clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		}
		client, err := genai.NewClient(ctx, clientCfg)
		if err != nil {
			return nil, err
		}
		return llm.NewGeminiCompleter(client), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}
