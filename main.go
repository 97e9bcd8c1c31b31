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

	"github.com/xiaot623/neuralthreads/internal/adapter/llm"
	"github.com/xiaot623/neuralthreads/internal/adapter/stylist"
	"github.com/xiaot623/neuralthreads/internal/config"
	"github.com/xiaot623/neuralthreads/internal/logger"
	store "github.com/xiaot623/neuralthreads/internal/repository"
	"github.com/xiaot623/neuralthreads/internal/service"
	handler "github.com/xiaot623/neuralthreads/internal/transport/http"
	stylisthttp "github.com/xiaot623/neuralthreads/internal/transport/http/stylist"
	v1 "github.com/xiaot623/neuralthreads/internal/transport/http/v1"
	"github.com/xiaot623/neuralthreads/internal/transport/ws"
	"github.com/xiaot623/neuralthreads/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.NewLogger(cfg.Debug)
	defer func() { _ = log.Sync() }()

	log.Info("starting neuralthreads",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("driver", store.DriverFor(cfg.DatabaseURL)),
		zap.String("llm_base_url", cfg.LLMBaseURL),
		zap.String("llm_model", cfg.LLMModel),
		zap.Bool("llm_configured", cfg.GroqAPIKey != ""),
	)

	// Initialize store
	db, err := store.NewSQLStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to initialize store", zap.Error(err))
	}
	defer db.Close()

	// Initialize LLM client
	llmClient := llm.NewLLMClient(log, cfg.LLMBaseURL, cfg.GroqAPIKey, cfg.LLMTimeout, llm.WithRateLimit(cfg.LLMRPS))

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultBookingPolicy)
	if err != nil {
		log.Fatal("failed to initialize policy engine", zap.Error(err))
	}

	// Initialize service
	svc := service.New(db, llmClient, cfg, policyEngine, log)

	// Initialize WebSocket chat
	hub := ws.NewHub()
	wsServer := ws.NewServer(cfg, hub, stylist.NewLocal(svc), log)

	server := handler.NewServer(log,
		stylisthttp.NewHandler(svc, log),
		v1.NewHandler(svc, log),
		wsServer,
	)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.CloseAll()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("failed to shutdown server gracefully", zap.Error(err))
	}

	log.Info("stopped")
}
