package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gameready/internal/config"
	"gameready/internal/logging"
	"gameready/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Fprintf(os.Stderr, "Created default config at %s/config.json\n", configDir)
		defaults := config.DefaultConfig()
		cfg = &defaults
	} else if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv()

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return fmt.Errorf("config validation failed: %w (edit %s/config.json)", err, configDir)
	}

	level, _ := cfg.Log.SlogLevel()
	logger := logging.New(os.Stderr, level, cfg.Log.Format)

	// Open database
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	return newApp(db, logger, cfg, os.Stdout).dispatch(ctx, args)
}
