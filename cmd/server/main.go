package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macro-outlook/internal/config"
	"macro-outlook/internal/handler"
	"macro-outlook/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/urfave/negroni"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel(), cfg.GetLogFormat())

	if cfg.SecretStoreErr != nil {
		appLogger.Warn("Secrets file could not be read; falling back to environment",
			"path", cfg.GetSecretsFile(), "error", cfg.SecretStoreErr)
	}
	if err := cfg.Validate(); err != nil {
		appLogger.Error("❌ Kein OpenAI API-Key gefunden oder Konfiguration ungültig.", err)
		os.Exit(1)
	}

	// Wiring
	container, err := config.NewContainer(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize services", err)
		os.Exit(1)
	}

	outlookHandler := handler.NewOutlookHandler(container.OutlookService, cfg.GetMaxFileSize(), appLogger)
	pageHandler := handler.NewPageHandler(container.OutlookService, cfg.GetMaxFileSize(), appLogger)
	router := handler.NewRouter(outlookHandler, pageHandler, cfg.GetAllowedOrigins())

	n := negroni.New()
	n.Use(negroni.NewRecovery())
	n.Use(negroni.NewLogger())
	n.UseHandler(router)

	// The completion call blocks the request, so there is no write timeout.
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           n,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	// Run server
	go func() {
		appLogger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	appLogger.Info("Server exited")
}
