package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"moneyhub/internal/auth"
	"moneyhub/internal/config"
	"moneyhub/internal/database"
	"moneyhub/internal/logger"
	"moneyhub/internal/seed"
	"moneyhub/internal/server"
	"moneyhub/internal/validator"
)

// @title           MoneyHub API
// @version         1.0
// @description     MoneyHub is a personal finance API for tracking deposits, withdrawals and savings goals.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	tokens, err := auth.NewTokenIssuer(appConfig.JWTSecret, appConfig.JWTExpirationDur)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	validator.Register()
	deps := server.NewDeps(dbManager.DB(), tokens, nil)

	if appConfig.SeedDemoData {
		if _, err := seed.Run(deps.Users, deps.Goals, deps.Transactions, seed.Options{
			AdminUsername: appConfig.AdminUsername,
			AdminEmail:    appConfig.AdminEmail,
			AdminPassword: appConfig.AdminPassword,
		}); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	router := server.NewRouter(deps)
	srv := server.New(":"+appConfig.Port, server.WithCORS(router, appConfig.CORSOrigins))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting MoneyHub API on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	if err := server.Run(ctx, srv); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
