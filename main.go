package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/hballard/VMIOrderGen/cmd"
	"github.com/hballard/VMIOrderGen/internal/config"
	"github.com/hballard/VMIOrderGen/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		// A missing .env is the common case for this tool
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration and initialize logging
	cfg, err := config.Load()
	if err != nil {
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	cmd.Execute()
}
