package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"serein/internal/config"
	"serein/internal/db"
	"serein/internal/handler"
	transport "serein/internal/http"
	"serein/internal/logger"
	"serein/internal/repository"
	"serein/internal/service"
	"serein/internal/service/ai"
	"serein/internal/snowflake"
)

func main() {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(1); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	userRepo := repository.NewUserRepository(dbConn)
	journalRepo := repository.NewJournalRepository(dbConn)

	provider, err := ai.NewProvider(ai.Config{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		BaseURL:  cfg.AI.BaseURL,
		Model:    cfg.AI.Model,
	})
	if err != nil {
		// Entries still get stored with fallback judgments.
		logger.Warn("ai provider not configured", "module", "main", "action", "init", "resource", "ai", "result", "failed", "error", err)
		provider = ai.NewDisabledProvider()
	}
	limiter := ai.NewRateLimiter(cfg.AI.QPS)

	analyzer := service.NewSentimentAnalyzer(provider, limiter, cfg.AI.Timeout)
	summarizer := service.NewWeeklySummarizer(provider, limiter, cfg.AI.Timeout)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	journalService := service.NewJournalService(journalRepo, analyzer, summarizer)

	authHandler := handler.NewAuthHandler(authService)
	journalHandler := handler.NewJournalHandler(journalService)

	router := transport.NewRouter(authService, authHandler, journalHandler)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		dbConn.Close()
		os.Exit(0)
	}()

	logger.Info("server starting", "module", "main", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "provider", provider.Name())
	if err := router.Start(cfg.Addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
