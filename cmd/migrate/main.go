package main

import (
	"fmt"
	"os"
	"strconv"

	"moneyhub/internal/config"
	"moneyhub/internal/database"
	"moneyhub/internal/logger"
	"moneyhub/internal/seed"
	"moneyhub/internal/services"
)

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: migrate <up|down|version|seed> [N]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	m, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	command := os.Args[1]

	switch command {
	case "up":
		if err := m.Migrate(); err != nil {
			return err
		}

	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", os.Args[2])
			}
		}
		if err := m.Rollback(steps); err != nil {
			return err
		}
		log.Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		log.Infof("Version: %d, Dirty: %v", version, dirty)

	case "seed":
		if err := m.Migrate(); err != nil {
			return err
		}
		db := m.DB()
		goals := services.NewGoalService(db)
		created, err := seed.Run(services.NewUserService(db), goals, services.NewTransactionService(db, goals), seed.Options{
			AdminUsername: cfg.AdminUsername,
			AdminEmail:    cfg.AdminEmail,
			AdminPassword: cfg.AdminPassword,
		})
		if err != nil {
			return err
		}
		if !created {
			log.Info("Nothing to seed")
		}

	default:
		return fmt.Errorf("unknown command: %s (use up, down, version, or seed)", command)
	}

	return nil
}
