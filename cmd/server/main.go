package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/damon-houk/simplifi-csv-converter/internal/app"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/config"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/handler"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/middleware"
)

func main() {
	cfg := config.Load()

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting Simplifi CSV converter", map[string]interface{}{
		"port":          cfg.Port,
		"rate_api":      cfg.RateAPIBaseURL,
		"currencies":    cfg.BaseCurrency + "/" + cfg.QuoteCurrency,
		"rate_store":    cfg.RateStorePath,
		"max_upload":    cfg.MaxUploadSizeBytes,
		"rate_limit":    cfg.RateAPIRequestsPerSecond,
		"fallback_rate": cfg.FallbackRate,
	})

	converter, err := app.New(cfg, log, nil)
	if err != nil {
		log.Fatal("Failed to initialize converter", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := converter.Close(); err != nil {
			log.Error("Error closing rate store", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	router := mux.NewRouter()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.RecoveryMiddleware(log),
	)

	handler.NewBankHandler(converter.Service, log).RegisterRoutes(router)
	handler.NewConversionHandler(converter.Service, cfg.MaxUploadSizeBytes, log).RegisterRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Shutting down", nil)
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
