package main

import (
	"fmt"
	"os"

	"trackmygoal/internal/config"
	"trackmygoal/internal/database"
	"trackmygoal/internal/logger"
)

const usage = "usage: migrate [up|down]"

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	if err := run(direction); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(direction string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	switch direction {
	case "up":
		return database.RunMigrations(db.DB)
	case "down":
		return database.MigrateDown(db.DB)
	default:
		return fmt.Errorf("unknown direction %q, %s", direction, usage)
	}
}
