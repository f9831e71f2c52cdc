// Package main Paycal API
//
// @title           Paycal API
// @version         1.0
// @description     Subscription tracking with spending analytics, premium plans and a social layer.
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/paycal/backend/docs"
	"github.com/paycal/backend/internal/app"
	"github.com/paycal/backend/internal/config"
	"github.com/paycal/backend/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	log.WithFields(map[string]interface{}{
		"environment": cfg.Server.Environment,
		"dialect":     cfg.Database.Dialect(),
	}).Info("Starting Paycal API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.ErrorWithErr(err, "Failed to initialize application")
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		log.ErrorWithErr(err, "Server stopped with error")
		os.Exit(1)
	}
	log.Info("Server stopped gracefully")
}
